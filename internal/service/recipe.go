package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/metrics"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/query"
	"github.com/pageza/cookbook/backend/internal/repository"
)

// RecipeInput is the writable part of a recipe.
type RecipeInput struct {
	Title              string
	CookingTimeMinutes int
	Description        string
	IsPublic           bool
	Location           *string
	Latitude           *float64
	Longitude          *float64
	Ingredients        []string
	Categories         []string
}

// RecipeService handles recipe operations
type RecipeService struct {
	recipes  repository.RecipeRepository
	tags     repository.TagRepository
	enricher *Enricher
	limits   config.Limits
	log      *slog.Logger
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(
	recipes repository.RecipeRepository,
	tags repository.TagRepository,
	reviews repository.ReviewRepository,
	limits config.Limits,
	log *slog.Logger,
) *RecipeService {
	return &RecipeService{
		recipes:  recipes,
		tags:     tags,
		enricher: NewEnricher(reviews, recipes),
		limits:   limits,
		log:      log,
	}
}

func recipeNotFound(id uuid.UUID) error {
	return notFound(fmt.Sprintf("Recipe with ID of %s not found.", id))
}

// GetRecipe returns a recipe visible to requester. Private recipes of other
// users are reported as not found.
func (s *RecipeService) GetRecipe(ctx context.Context, requester, id uuid.UUID) (*RecipeView, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, classify(s.log, "get_recipe", err, fmt.Sprintf("Recipe with ID of %s not found.", id))
	}
	if !query.CanView(recipe.IsPublic, recipe.UserID, requester) {
		return nil, recipeNotFound(id)
	}
	return s.view(ctx, *recipe)
}

// CreateRecipe stores a recipe owned by owner together with its links.
func (s *RecipeService) CreateRecipe(ctx context.Context, owner uuid.UUID, in RecipeInput) (*RecipeView, error) {
	ingredients, categories, err := s.check(in)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{UserID: owner}
	apply(recipe, in)

	if err := s.recipes.CreateRecipeWithLinks(ctx, recipe, ingredients, categories); err != nil {
		return nil, storageFailure(s.log, "create_recipe", err)
	}
	metrics.RecipesCreatedTotal.Inc()
	s.log.Info("recipe created", slog.String("recipe_id", recipe.ID.String()), slog.String("user_id", owner.String()))

	return s.GetRecipe(ctx, owner, recipe.ID)
}

// UpdateRecipe replaces the fields and links of a recipe owned by requester.
func (s *RecipeService) UpdateRecipe(ctx context.Context, requester, id uuid.UUID, in RecipeInput) (*RecipeView, error) {
	ingredients, categories, err := s.check(in)
	if err != nil {
		return nil, err
	}

	recipe, err := s.ownedRecipe(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	apply(recipe, in)
	if err := s.recipes.UpdateRecipeWithLinks(ctx, recipe, ingredients, categories); err != nil {
		return nil, classify(s.log, "update_recipe", err, fmt.Sprintf("Recipe with ID of %s not found.", id))
	}

	return s.GetRecipe(ctx, requester, id)
}

// DeleteRecipe removes a recipe owned by requester.
func (s *RecipeService) DeleteRecipe(ctx context.Context, requester, id uuid.UUID) error {
	if _, err := s.ownedRecipe(ctx, requester, id); err != nil {
		return err
	}
	if err := s.recipes.DeleteRecipe(ctx, id); err != nil {
		return classify(s.log, "delete_recipe", err, fmt.Sprintf("Recipe with ID of %s not found.", id))
	}
	s.log.Info("recipe deleted", slog.String("recipe_id", id.String()))
	return nil
}

// ownedRecipe loads a recipe and checks requester owns it. Recipes of other
// users are reported as not found.
func (s *RecipeService) ownedRecipe(ctx context.Context, requester, id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, classify(s.log, "get_recipe", err, fmt.Sprintf("Recipe with ID of %s not found.", id))
	}
	if recipe.UserID != requester {
		return nil, recipeNotFound(id)
	}
	return recipe, nil
}

func (s *RecipeService) view(ctx context.Context, recipe model.Recipe) (*RecipeView, error) {
	views, err := s.enricher.Enrich(ctx, []model.Recipe{recipe})
	if err != nil {
		return nil, storageFailure(s.log, "enrich_recipes", err)
	}
	return &views[0], nil
}

// check enforces the field bounds and returns the normalized tag lists.
func (s *RecipeService) check(in RecipeInput) ([]string, []string, error) {
	l := s.limits.Recipe

	title := strings.TrimSpace(in.Title)
	if title == "" || utf8.RuneCountInString(title) > l.TitleMaxLength {
		return nil, nil, invalidInput(fmt.Sprintf("title is required and must be at most %d characters", l.TitleMaxLength))
	}
	if in.CookingTimeMinutes < 1 {
		return nil, nil, invalidInput("cookingTimeMinutes must be a positive number")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Description)) < l.DescriptionMinLength {
		return nil, nil, invalidInput(fmt.Sprintf("description must be at least %d characters", l.DescriptionMinLength))
	}
	if in.Location != nil && utf8.RuneCountInString(*in.Location) > l.LocationMaxLength {
		return nil, nil, invalidInput(fmt.Sprintf("location must be at most %d characters", l.LocationMaxLength))
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		return nil, nil, invalidInput("latitude must be within [-90, 90]")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		return nil, nil, invalidInput("longitude must be within [-180, 180]")
	}

	ingredients := model.NormalizeNames(in.Ingredients)
	if len(ingredients) < l.MinIngredients || len(ingredients) > l.MaxIngredients {
		return nil, nil, invalidInput(fmt.Sprintf("a recipe needs between %d and %d ingredients", l.MinIngredients, l.MaxIngredients))
	}
	if hasDuplicates(ingredients) {
		return nil, nil, invalidInput("ingredient names must be unique")
	}
	if !namesWithin(ingredients, l.NameMinLength, l.NameMaxLength) {
		return nil, nil, invalidInput(fmt.Sprintf("ingredient names must be between %d and %d characters", l.NameMinLength, l.NameMaxLength))
	}

	categories := model.NormalizeNames(in.Categories)
	if len(categories) < l.MinCategories || len(categories) > l.MaxCategories {
		return nil, nil, invalidInput(fmt.Sprintf("a recipe needs between %d and %d categories", l.MinCategories, l.MaxCategories))
	}
	if hasDuplicates(categories) {
		return nil, nil, invalidInput("category names must be unique")
	}
	if !namesWithin(categories, l.NameMinLength, l.NameMaxLength) {
		return nil, nil, invalidInput(fmt.Sprintf("category names must be between %d and %d characters", l.NameMinLength, l.NameMaxLength))
	}

	return ingredients, categories, nil
}

func apply(r *model.Recipe, in RecipeInput) {
	r.Title = strings.TrimSpace(in.Title)
	r.CookingTimeMinutes = in.CookingTimeMinutes
	r.Description = in.Description
	r.IsPublic = in.IsPublic
	r.Location = in.Location
	r.Latitude = in.Latitude
	r.Longitude = in.Longitude
}

func hasDuplicates(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return true
		}
		seen[n] = struct{}{}
	}
	return false
}

func namesWithin(names []string, lo, hi int) bool {
	for _, n := range names {
		if l := utf8.RuneCountInString(n); l < lo || l > hi {
			return false
		}
	}
	return true
}
