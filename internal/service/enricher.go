package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/cookbook/backend/internal/metrics"
	"github.com/pageza/cookbook/backend/internal/model"
)

// StarSource provides the star aggregate of a recipe.
type StarSource interface {
	GetStarAggregate(ctx context.Context, recipeID uuid.UUID) (model.StarAggregate, error)
}

// TagSource provides the categories and ingredients of a recipe.
type TagSource interface {
	GetCategoriesForRecipe(ctx context.Context, recipeID uuid.UUID) ([]model.Category, error)
	GetIngredientsForRecipe(ctx context.Context, recipeID uuid.UUID) ([]model.Ingredient, error)
}

// enrichConcurrency bounds the aggregate lookups in flight for one page.
const enrichConcurrency = 16

// Enricher attaches stars, categories and ingredients to recipes.
type Enricher struct {
	stars StarSource
	tags  TagSource
}

func NewEnricher(stars StarSource, tags TagSource) *Enricher {
	return &Enricher{stars: stars, tags: tags}
}

// Enrich returns one view per recipe in input order. The first failing
// lookup fails the whole call.
func (e *Enricher) Enrich(ctx context.Context, recipes []model.Recipe) ([]RecipeView, error) {
	start := time.Now()
	defer func() { metrics.EnrichmentDuration.Observe(time.Since(start).Seconds()) }()

	n := len(recipes)
	stars := make([]model.StarAggregate, n)
	categories := make([][]model.Category, n)
	ingredients := make([][]model.Ingredient, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for i := range recipes {
		i, id := i, recipes[i].ID
		g.Go(func() error {
			agg, err := e.stars.GetStarAggregate(gctx, id)
			if err != nil {
				return err
			}
			stars[i] = agg
			return nil
		})
		g.Go(func() error {
			cats, err := e.tags.GetCategoriesForRecipe(gctx, id)
			if err != nil {
				return err
			}
			categories[i] = cats
			return nil
		})
		g.Go(func() error {
			ings, err := e.tags.GetIngredientsForRecipe(gctx, id)
			if err != nil {
				return err
			}
			ingredients[i] = ings
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := make([]RecipeView, n)
	for i, r := range recipes {
		v := newRecipeView(r)
		v.Stars = stars[i]
		if categories[i] != nil {
			v.Categories = categories[i]
		}
		if ingredients[i] != nil {
			v.Ingredients = ingredients[i]
		}
		views[i] = v
	}
	return views, nil
}
