package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/metrics"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/query"
)

// ListRecipesRequest selects a page of recipes for a requester.
type ListRecipesRequest struct {
	RequesterID uuid.UUID
	Scope       query.Scope
	Page        query.RawPage
}

// ListRecipes returns a page of the recipes the scope grants the requester,
// newest first. A page past the end fails with ErrNoMorePages and the
// returned envelope still carries the totals.
func (s *RecipeService) ListRecipes(ctx context.Context, req ListRecipesRequest) (*RecipePage, error) {
	page, err := query.Normalize(req.Page, s.limits.Pagination)
	if err != nil {
		return nil, invalidInput(err.Error())
	}

	tagIDs, err := s.resolveTags(ctx, req.Scope)
	if err != nil {
		return nil, err
	}

	pred, err := query.Build(req.Scope, req.RequesterID, tagIDs)
	if err != nil {
		if errors.Is(err, query.ErrNothingVisible) {
			return nil, notFound("No recipes found")
		}
		return nil, invalidInput(err.Error())
	}

	var (
		recipes []model.Recipe
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = s.recipes.FindRecipes(gctx, pred, page.StartIndex, page.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.recipes.CountRecipes(gctx, pred)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storageFailure(s.log, "find_recipes", err)
	}

	window, ok := query.Arbitrate(page, total)
	result := &RecipePage{
		Page:         window.Page,
		Limit:        window.Limit,
		TotalRecipes: window.Total,
		TotalPages:   window.TotalPages,
		Recipes:      []RecipeView{},
	}
	if !ok {
		metrics.PaginationOverrunsTotal.WithLabelValues("recipes").Inc()
		return result, noMorePages()
	}

	views, err := s.enricher.Enrich(ctx, recipes)
	if err != nil {
		return nil, storageFailure(s.log, "enrich_recipes", err)
	}
	result.Recipes = views

	s.log.Debug("recipes page served",
		slog.String("scope", req.Scope.Kind.String()),
		slog.Int("page", page.Number),
		slog.Int("count", len(views)))
	return result, nil
}

// resolveTags maps the scope's names to ids. An unknown name is not found;
// a known name without matching recipes is left to the overrun check.
func (s *RecipeService) resolveTags(ctx context.Context, scope query.Scope) (query.TagIDs, error) {
	if !scope.NeedsTagLookup() {
		return nil, nil
	}

	names := model.NormalizeNames(scope.Names)
	if len(names) == 0 {
		return nil, invalidInput("Invalid or missing 'name' param")
	}

	kind := "ingredient"
	lookup := s.tags.FindIngredientIDByName
	if scope.Kind == query.ScopeCategory {
		kind = "category"
		lookup = s.tags.FindCategoryIDByName
	}

	ids := make(query.TagIDs, 0, len(names))
	for _, name := range names {
		id, err := lookup(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound(fmt.Sprintf("No recipes found with %s '%s'", kind, name))
			}
			return nil, storageFailure(s.log, "find_"+kind, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SplitNames splits a comma separated list of names.
func SplitNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
