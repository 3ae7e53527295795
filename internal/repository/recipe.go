package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/query"
)

type recipeRepository struct {
	db *gorm.DB
}

var _ RecipeRepository = (*recipeRepository)(nil)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// scopeRecipes applies pred to a query on the recipes table.
func (r *recipeRepository) scopeRecipes(tx *gorm.DB, pred query.Predicate) *gorm.DB {
	if pred.Public != nil {
		tx = tx.Where("recipes.is_public = ?", *pred.Public)
	}
	if pred.OwnerID != nil {
		tx = tx.Where("recipes.user_id = ?", *pred.OwnerID)
	}
	if pred.ExcludeOwnerID != nil {
		tx = tx.Where("recipes.user_id <> ?", *pred.ExcludeOwnerID)
	}
	if pred.CategoryID != nil {
		sub := r.db.Model(&model.RecipeCategory{}).Select("recipe_id").Where("category_id = ?", *pred.CategoryID)
		tx = tx.Where("recipes.id IN (?)", sub)
	}
	for _, id := range pred.IngredientIDs {
		sub := r.db.Model(&model.RecipeIngredient{}).Select("recipe_id").Where("ingredient_id = ?", id)
		tx = tx.Where("recipes.id IN (?)", sub)
	}
	return tx
}

func (r *recipeRepository) FindRecipes(ctx context.Context, pred query.Predicate, skip, take int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	tx := r.scopeRecipes(r.db.WithContext(ctx).Model(&model.Recipe{}), pred)
	if err := tx.
		Preload("Author").
		Order("recipes.created_at DESC").
		Order("recipes.id DESC").
		Offset(skip).
		Limit(take).
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}
	return recipes, nil
}

func (r *recipeRepository) CountRecipes(ctx context.Context, pred query.Predicate) (int64, error) {
	var count int64
	tx := r.scopeRecipes(r.db.WithContext(ctx).Model(&model.Recipe{}), pred)
	if err := tx.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Preload("Author").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return &recipe, nil
}

func (r *recipeRepository) CreateRecipeWithLinks(ctx context.Context, recipe *model.Recipe, ingredients, categories []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author").Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return linkTags(tx, recipe.ID, ingredients, categories)
	})
}

// UpdateRecipeWithLinks overwrites the recipe's fields and replaces its
// ingredient and category links.
func (r *recipeRepository) UpdateRecipeWithLinks(ctx context.Context, recipe *model.Recipe, ingredients, categories []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe.UpdatedAt = time.Now()
		res := tx.Model(&model.Recipe{}).
			Where("id = ?", recipe.ID).
			Select("title", "cooking_time_minutes", "description", "is_public", "location", "latitude", "longitude", "updated_at").
			Updates(recipe)
		if res.Error != nil {
			return fmt.Errorf("failed to update recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("failed to update recipe %s: %w", recipe.ID, gorm.ErrRecordNotFound)
		}
		if err := unlinkTags(tx, recipe.ID); err != nil {
			return err
		}
		return linkTags(tx, recipe.ID, ingredients, categories)
	})
}

// DeleteRecipe removes the recipe with its links and reviews. Shared
// ingredient and category rows are kept.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}
		if err := unlinkTags(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&model.Recipe{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("failed to delete recipe %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

func (r *recipeRepository) GetCategoriesForRecipe(ctx context.Context, recipeID uuid.UUID) ([]model.Category, error) {
	categories := []model.Category{}
	if err := r.db.WithContext(ctx).
		Joins("JOIN recipe_categories ON recipe_categories.category_id = categories.id").
		Where("recipe_categories.recipe_id = ?", recipeID).
		Order("categories.name").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (r *recipeRepository) GetIngredientsForRecipe(ctx context.Context, recipeID uuid.UUID) ([]model.Ingredient, error) {
	ingredients := []model.Ingredient{}
	if err := r.db.WithContext(ctx).
		Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
		Where("recipe_ingredients.recipe_id = ?", recipeID).
		Order("ingredients.name").
		Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	return ingredients, nil
}

// linkTags find-or-creates every named tag and links it to the recipe.
func linkTags(tx *gorm.DB, recipeID uuid.UUID, ingredients, categories []string) error {
	for _, name := range model.NormalizeNames(ingredients) {
		ing, err := ensureTag(tx, &model.Ingredient{Name: name}, name)
		if err != nil {
			return fmt.Errorf("failed to resolve ingredient %q: %w", name, err)
		}
		if err := tx.Create(&model.RecipeIngredient{RecipeID: recipeID, IngredientID: ing.ID}).Error; err != nil {
			return fmt.Errorf("failed to link ingredient %q: %w", name, err)
		}
	}
	for _, name := range model.NormalizeNames(categories) {
		cat, err := ensureTag(tx, &model.Category{Name: name}, name)
		if err != nil {
			return fmt.Errorf("failed to resolve category %q: %w", name, err)
		}
		if err := tx.Create(&model.RecipeCategory{RecipeID: recipeID, CategoryID: cat.ID}).Error; err != nil {
			return fmt.Errorf("failed to link category %q: %w", name, err)
		}
	}
	return nil
}

// ensureTag inserts row unless a tag with the same name exists, then loads
// the stored row. A concurrent insert of the same name is absorbed by the
// conflict clause instead of failing the transaction.
func ensureTag[T any](tx *gorm.DB, row *T, name string) (*T, error) {
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(row).Error; err != nil {
		return nil, err
	}
	stored := new(T)
	if err := tx.Where("name = ?", name).First(stored).Error; err != nil {
		return nil, err
	}
	return stored, nil
}

func unlinkTags(tx *gorm.DB, recipeID uuid.UUID) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
		return fmt.Errorf("failed to unlink ingredients: %w", err)
	}
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeCategory{}).Error; err != nil {
		return fmt.Errorf("failed to unlink categories: %w", err)
	}
	return nil
}
