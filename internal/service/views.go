package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/model"
)

// RecipeView is a recipe as returned to clients, with its aggregates.
type RecipeView struct {
	Author             *model.Author       `json:"author"`
	ID                 uuid.UUID           `json:"id"`
	Title              string              `json:"title"`
	CookingTimeMinutes int                 `json:"cookingTimeMinutes"`
	Description        string              `json:"description"`
	IsPublic           bool                `json:"isPublic"`
	CreatedAt          time.Time           `json:"createdAt"`
	Location           *string             `json:"location"`
	Latitude           *float64            `json:"latitude,omitempty"`
	Longitude          *float64            `json:"longitude,omitempty"`
	UserID             uuid.UUID           `json:"userId"`
	Categories         []model.Category    `json:"categories"`
	Ingredients        []model.Ingredient  `json:"ingredients"`
	Stars              model.StarAggregate `json:"stars"`
}

func newRecipeView(r model.Recipe) RecipeView {
	return RecipeView{
		Author:             model.AuthorOf(r.Author),
		ID:                 r.ID,
		Title:              r.Title,
		CookingTimeMinutes: r.CookingTimeMinutes,
		Description:        r.Description,
		IsPublic:           r.IsPublic,
		CreatedAt:          r.CreatedAt,
		Location:           r.Location,
		Latitude:           r.Latitude,
		Longitude:          r.Longitude,
		UserID:             r.UserID,
		Categories:         []model.Category{},
		Ingredients:        []model.Ingredient{},
	}
}

// ReviewView is a review as returned to clients.
type ReviewView struct {
	Author    *model.Author `json:"author"`
	ID        uuid.UUID     `json:"id"`
	Stars     int           `json:"stars"`
	Comment   string        `json:"comment"`
	RecipeID  uuid.UUID     `json:"recipeId"`
	UserID    uuid.UUID     `json:"userId"`
	CreatedAt time.Time     `json:"createdAt"`
}

func newReviewView(r model.Review) ReviewView {
	return ReviewView{
		Author:    model.AuthorOf(r.Author),
		ID:        r.ID,
		Stars:     r.Stars,
		Comment:   r.Comment,
		RecipeID:  r.RecipeID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
}

// RecipePage is the paginated recipe envelope. It is also returned with
// ErrNoMorePages, with Recipes empty.
type RecipePage struct {
	Page         int          `json:"page"`
	Limit        int          `json:"limit"`
	TotalRecipes int64        `json:"totalRecipes"`
	TotalPages   int          `json:"totalPages"`
	Recipes      []RecipeView `json:"recipes"`
}

// ReviewPage is the paginated review envelope. The requester's own review
// is reported in CurrentUserReview and never counted in the page.
type ReviewPage struct {
	Page              int          `json:"page"`
	Limit             int          `json:"limit"`
	TotalReviews      int64        `json:"totalReviews"`
	TotalPages        int          `json:"totalPages"`
	CurrentUserReview *ReviewView  `json:"currentUserReview"`
	Reviews           []ReviewView `json:"reviews"`
}
