package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/query"
	"github.com/pageza/cookbook/backend/internal/repository"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

func boolPtr(b bool) *bool { return &b }

func idPtr(id uuid.UUID) *uuid.UUID { return &id }

func TestFindRecipesMatchesCount(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	for i := 0; i < 7; i++ {
		testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{
			Owner:     alice,
			Public:    i%2 == 0,
			CreatedAt: testhelpers.Minutes(i),
		})
		testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{
			Owner:     bob,
			Public:    true,
			CreatedAt: testhelpers.Minutes(10 + i),
		})
	}

	preds := map[string]query.Predicate{
		"all":            {},
		"public":         {Public: boolPtr(true)},
		"alice private":  {OwnerID: idPtr(alice.ID), Public: boolPtr(false)},
		"not bob public": {ExcludeOwnerID: idPtr(bob.ID), Public: boolPtr(true)},
	}
	for name, pred := range preds {
		t.Run(name, func(t *testing.T) {
			total, err := repo.CountRecipes(ctx, pred)
			require.NoError(t, err)

			var seen int64
			for skip := 0; ; skip += 3 {
				page, err := repo.FindRecipes(ctx, pred, skip, 3)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(page), 3)
				if len(page) == 0 {
					break
				}
				for _, r := range page {
					if pred.Public != nil {
						assert.Equal(t, *pred.Public, r.IsPublic)
					}
					if pred.OwnerID != nil {
						assert.Equal(t, *pred.OwnerID, r.UserID)
					}
					if pred.ExcludeOwnerID != nil {
						assert.NotEqual(t, *pred.ExcludeOwnerID, r.UserID)
					}
					require.NotNil(t, r.Author)
				}
				seen += int64(len(page))
			}
			assert.Equal(t, total, seen)
		})
	}
}

func TestFindRecipesOrdersNewestFirst(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	alice := testhelpers.CreateUser(t, db, "alice")

	old := testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{Title: "old", Owner: alice, Public: true, CreatedAt: testhelpers.Minutes(1)})
	mid := testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{Title: "mid", Owner: alice, Public: true, CreatedAt: testhelpers.Minutes(2)})
	recent := testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{Title: "new", Owner: alice, Public: true, CreatedAt: testhelpers.Minutes(3)})

	got, err := repo.FindRecipes(context.Background(), query.Predicate{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []uuid.UUID{recent.ID, mid.ID, old.ID}, []uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
}

func TestPrivateRecipesStayHidden(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	tags := repository.NewTagRepository(db)
	ctx := context.Background()

	owner := testhelpers.CreateUser(t, db, "owner")
	viewer := testhelpers.CreateUser(t, db, "viewer")
	hidden := testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{
		Owner:       owner,
		Ingredients: []string{"saffron"},
		Categories:  []string{"secret"},
	})
	testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{
		Owner:       owner,
		Public:      true,
		Ingredients: []string{"saffron"},
		Categories:  []string{"secret"},
	})

	saffron, err := tags.FindIngredientIDByName(ctx, "Saffron")
	require.NoError(t, err)
	secret, err := tags.FindCategoryIDByName(ctx, " SECRET ")
	require.NoError(t, err)

	scopes := []struct {
		scope query.Scope
		tags  query.TagIDs
	}{
		{query.Wall(false), nil},
		{query.Owner(owner.ID, true, true), nil},
		{query.Category("secret", false), query.TagIDs{secret}},
		{query.Ingredient("saffron", false), query.TagIDs{saffron}},
	}
	for _, s := range scopes {
		pred, err := query.Build(s.scope, viewer.ID, s.tags)
		require.NoError(t, err)
		got, err := repo.FindRecipes(ctx, pred, 0, 25)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		for _, r := range got {
			assert.NotEqual(t, hidden.ID, r.ID, "private recipe leaked for scope %v", s.scope.Kind)
		}
	}
}

func TestCreateRecipeWithLinks(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	alice := testhelpers.CreateUser(t, db, "alice")

	first := &model.Recipe{Title: "Soup", CookingTimeMinutes: 30, Description: "A warm soup", UserID: alice.ID}
	require.NoError(t, repo.CreateRecipeWithLinks(ctx, first, []string{"Leek", "potato"}, []string{"dinner"}))
	second := &model.Recipe{Title: "Gratin", CookingTimeMinutes: 60, Description: "Baked potatoes", UserID: alice.ID}
	require.NoError(t, repo.CreateRecipeWithLinks(ctx, second, []string{" POTATO ", "cream"}, []string{"Dinner", "side"}))

	ings, err := repo.GetIngredientsForRecipe(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, ings, 2)
	assert.Equal(t, "cream", ings[0].Name)
	assert.Equal(t, "potato", ings[1].Name)

	var potatoes int64
	require.NoError(t, db.Model(&model.Ingredient{}).Where("name = ?", "potato").Count(&potatoes).Error)
	assert.Equal(t, int64(1), potatoes)

	cats, err := repo.GetCategoriesForRecipe(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "dinner", cats[0].Name)
}

func TestCreateRecipeWithLinksRollsBack(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	alice := testhelpers.CreateUser(t, db, "alice")

	// The second "salt" resolves to the same ingredient and violates the link key.
	recipe := &model.Recipe{Title: "Brine", CookingTimeMinutes: 5, Description: "Salt and water", UserID: alice.ID}
	err := repo.CreateRecipeWithLinks(ctx, recipe, []string{"salt", "Salt"}, []string{"basics"})
	require.Error(t, err)

	var recipes, links, categories int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&model.RecipeIngredient{}).Count(&links).Error)
	require.NoError(t, db.Model(&model.Category{}).Count(&categories).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, links)
	assert.Zero(t, categories)
}

func TestUpdateRecipeWithLinks(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	alice := testhelpers.CreateUser(t, db, "alice")
	recipe := testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{
		Owner:       alice,
		Ingredients: []string{"flour", "water"},
		Categories:  []string{"bread"},
	})

	recipe.Title = "Focaccia"
	recipe.IsPublic = true
	require.NoError(t, repo.UpdateRecipeWithLinks(ctx, recipe, []string{"flour", "olive oil"}, []string{"bread", "italian"}))

	got, err := repo.GetRecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Focaccia", got.Title)
	assert.True(t, got.IsPublic)

	ings, err := repo.GetIngredientsForRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, ings, 2)
	assert.Equal(t, "olive oil", ings[1].Name)

	missing := &model.Recipe{ID: uuid.New(), Title: "x", CookingTimeMinutes: 1, Description: "nothing here"}
	err = repo.UpdateRecipeWithLinks(ctx, missing, []string{"a"}, []string{"b"})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteRecipeRemovesReviewsAndLinks(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	doomed := testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{Owner: alice, Public: true, Ingredients: []string{"garlic"}})
	kept := testhelpers.CreateRecipe(t, db, testhelpers.RecipeFixture{Owner: alice, Public: true, Ingredients: []string{"garlic"}})
	testhelpers.CreateReview(t, db, doomed, bob, 4)
	testhelpers.CreateReview(t, db, kept, bob, 2)

	require.NoError(t, repo.DeleteRecipe(ctx, doomed.ID))

	_, err := repo.GetRecipeByID(ctx, doomed.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var reviews, links, garlic int64
	require.NoError(t, db.Model(&model.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", doomed.ID).Count(&links).Error)
	require.NoError(t, db.Model(&model.Ingredient{}).Where("name = ?", "garlic").Count(&garlic).Error)
	assert.Equal(t, int64(1), reviews)
	assert.Zero(t, links)
	assert.Equal(t, int64(1), garlic)

	err = repo.DeleteRecipe(ctx, doomed.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
