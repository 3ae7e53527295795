package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/query"
	"github.com/pageza/cookbook/backend/internal/repository"
	"github.com/pageza/cookbook/backend/internal/service"
)

func setupFailingServices(t *testing.T) (*service.RecipeService, *service.ReviewService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	mock.MatchExpectationsInOrder(false)

	db, err := database.OpenDialector(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)

	limits := config.DefaultLimits()
	recipes := repository.NewRecipeRepository(db)
	reviews := repository.NewReviewRepository(db)
	tags := repository.NewTagRepository(db)

	return service.NewRecipeService(recipes, tags, reviews, limits, logging.Discard()),
		service.NewReviewService(reviews, recipes, limits, logging.Discard()),
		mock
}

func TestStorageFailuresAreClassified(t *testing.T) {
	boom := errors.New("connection refused")
	ctx := context.Background()

	t.Run("list recipes", func(t *testing.T) {
		recipes, _, mock := setupFailingServices(t)
		mock.ExpectQuery(`SELECT`).WillReturnError(boom)
		mock.ExpectQuery(`SELECT`).WillReturnError(boom)

		_, err := recipes.ListRecipes(ctx, service.ListRecipesRequest{
			RequesterID: uuid.New(),
			Scope:       query.Wall(false),
			Page:        pageOf("1", "10"),
		})
		require.ErrorIs(t, err, service.ErrStorage)
		assert.Equal(t, "Something went wrong", service.MessageOf(err))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("get recipe", func(t *testing.T) {
		recipes, _, mock := setupFailingServices(t)
		mock.ExpectQuery(`SELECT \* FROM "recipes"`).WillReturnError(boom)

		_, err := recipes.GetRecipe(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, service.ErrStorage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stars", func(t *testing.T) {
		_, reviews, mock := setupFailingServices(t)
		mock.ExpectQuery(`SELECT \* FROM "recipes"`).WillReturnError(boom)

		_, err := reviews.GetStars(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, service.ErrStorage)
	})

	t.Run("missing recipe is not a storage failure", func(t *testing.T) {
		recipes, _, mock := setupFailingServices(t)
		mock.ExpectQuery(`SELECT \* FROM "recipes"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := recipes.GetRecipe(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, service.ErrNotFound)
		assert.NotErrorIs(t, err, service.ErrStorage)
	})
}
