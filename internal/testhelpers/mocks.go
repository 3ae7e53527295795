package testhelpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/query"
)

// MockRecipeRepository is a testify mock of the recipe repository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) FindRecipes(ctx context.Context, pred query.Predicate, skip, take int) ([]model.Recipe, error) {
	args := m.Called(ctx, pred, skip, take)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) CountRecipes(ctx context.Context, pred query.Predicate) (int64, error) {
	args := m.Called(ctx, pred)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) CreateRecipeWithLinks(ctx context.Context, recipe *model.Recipe, ingredients, categories []string) error {
	return m.Called(ctx, recipe, ingredients, categories).Error(0)
}

func (m *MockRecipeRepository) UpdateRecipeWithLinks(ctx context.Context, recipe *model.Recipe, ingredients, categories []string) error {
	return m.Called(ctx, recipe, ingredients, categories).Error(0)
}

func (m *MockRecipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecipeRepository) GetCategoriesForRecipe(ctx context.Context, recipeID uuid.UUID) ([]model.Category, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockRecipeRepository) GetIngredientsForRecipe(ctx context.Context, recipeID uuid.UUID) ([]model.Ingredient, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ingredient), args.Error(1)
}

// MockStarSource is a testify mock of the star aggregate lookup.
type MockStarSource struct {
	mock.Mock
}

func (m *MockStarSource) GetStarAggregate(ctx context.Context, recipeID uuid.UUID) (model.StarAggregate, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(model.StarAggregate), args.Error(1)
}

// MockTokenValidator is a testify mock of the access token validator.
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockUserLookup is a testify mock of the user lookup used by the auth middleware.
type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
