package service_test

import (
	"testing"

	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/query"
	"github.com/pageza/cookbook/backend/internal/repository"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

type services struct {
	db      *gorm.DB
	recipes *service.RecipeService
	reviews *service.ReviewService
	users   *service.UserService
}

func setupServices(t *testing.T) *services {
	t.Helper()

	db := testhelpers.NewSQLiteDB(t)
	log := logging.Discard()
	limits := config.DefaultLimits()

	recipeRepo := repository.NewRecipeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	tagRepo := repository.NewTagRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &services{
		db:      db,
		recipes: service.NewRecipeService(recipeRepo, tagRepo, reviewRepo, limits, log),
		reviews: service.NewReviewService(reviewRepo, recipeRepo, limits, log),
		users:   service.NewUserService(userRepo, log),
	}
}

func strPtr(s string) *string { return &s }

func pageOf(page, limit string) query.RawPage {
	return query.RawPage{Page: strPtr(page), Limit: strPtr(limit)}
}
