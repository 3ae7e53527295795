package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/query"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(ctx context.Context, email, name, picture string) (*model.User, string, error)
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(token string) (uuid.UUID, error)
}

// IUserService defines the interface for user operations
type IUserService interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetPublicProfile(ctx context.Context, id uuid.UUID) (*model.Author, error)
	FindOrCreateByEmail(ctx context.Context, email, name, picture string) (*model.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, req ListRecipesRequest) (*RecipePage, error)
	GetRecipe(ctx context.Context, requester, id uuid.UUID) (*RecipeView, error)
	CreateRecipe(ctx context.Context, owner uuid.UUID, in RecipeInput) (*RecipeView, error)
	UpdateRecipe(ctx context.Context, requester, id uuid.UUID, in RecipeInput) (*RecipeView, error)
	DeleteRecipe(ctx context.Context, requester, id uuid.UUID) error
}

// IReviewService defines the interface for review operations
type IReviewService interface {
	ListReviews(ctx context.Context, requester, recipeID uuid.UUID, page query.RawPage) (*ReviewPage, error)
	GetStars(ctx context.Context, requester, recipeID uuid.UUID) (model.StarAggregate, error)
	CreateReview(ctx context.Context, requester, recipeID uuid.UUID, in ReviewInput) (*ReviewView, error)
	UpdateReview(ctx context.Context, requester, reviewID uuid.UUID, in ReviewInput) (*ReviewView, error)
	DeleteReview(ctx context.Context, requester, reviewID uuid.UUID) error
}
