// Package repository is the GORM-backed storage layer for users, recipes,
// reviews and the shared ingredient and category tags.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/query"
)

// RecipeRepository stores recipes and their ingredient and category links.
type RecipeRepository interface {
	FindRecipes(ctx context.Context, pred query.Predicate, skip, take int) ([]model.Recipe, error)
	CountRecipes(ctx context.Context, pred query.Predicate) (int64, error)
	GetRecipeByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	CreateRecipeWithLinks(ctx context.Context, recipe *model.Recipe, ingredients, categories []string) error
	UpdateRecipeWithLinks(ctx context.Context, recipe *model.Recipe, ingredients, categories []string) error
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	GetCategoriesForRecipe(ctx context.Context, recipeID uuid.UUID) ([]model.Category, error)
	GetIngredientsForRecipe(ctx context.Context, recipeID uuid.UUID) ([]model.Ingredient, error)
}

// ReviewRepository stores reviews and computes star aggregates.
type ReviewRepository interface {
	FindReviews(ctx context.Context, pred query.ReviewPredicate, skip, take int) ([]model.Review, error)
	CountReviews(ctx context.Context, pred query.ReviewPredicate) (int64, error)
	GetStarAggregate(ctx context.Context, recipeID uuid.UUID) (model.StarAggregate, error)
	GetReviewByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindUserReview(ctx context.Context, recipeID, userID uuid.UUID) (*model.Review, error)
	CreateReview(ctx context.Context, review *model.Review) error
	UpdateReview(ctx context.Context, review *model.Review) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

// TagRepository resolves ingredient and category names to ids. Names are
// matched in their normalized form.
type TagRepository interface {
	FindCategoryIDByName(ctx context.Context, name string) (uuid.UUID, error)
	FindIngredientIDByName(ctx context.Context, name string) (uuid.UUID, error)
}

// UserRepository stores users.
type UserRepository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}
