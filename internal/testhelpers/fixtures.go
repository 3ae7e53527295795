package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
)

// CreateUser inserts a user whose email is derived from name.
func CreateUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:    name,
		Email:   fmt.Sprintf("%s@example.com", name),
		Picture: "https://example.com/" + name + ".png",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

// RecipeFixture describes a recipe to insert with CreateRecipe.
type RecipeFixture struct {
	Title       string
	Owner       *model.User
	Public      bool
	CreatedAt   time.Time
	Ingredients []string
	Categories  []string
}

// CreateRecipe inserts a recipe and its tag links, creating missing tags.
func CreateRecipe(t *testing.T, db *gorm.DB, f RecipeFixture) *model.Recipe {
	t.Helper()

	if f.Title == "" {
		f.Title = "Recipe " + uuid.NewString()[:8]
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	if len(f.Ingredients) == 0 {
		f.Ingredients = []string{"salt"}
	}
	if len(f.Categories) == 0 {
		f.Categories = []string{"misc"}
	}

	recipe := &model.Recipe{
		Title:              f.Title,
		CookingTimeMinutes: 30,
		Description:        "A fixture recipe description",
		IsPublic:           f.Public,
		CreatedAt:          f.CreatedAt,
		UserID:             f.Owner.ID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author").Create(recipe).Error; err != nil {
			return err
		}
		for _, name := range model.NormalizeNames(f.Ingredients) {
			var ing model.Ingredient
			if err := tx.Where(model.Ingredient{Name: name}).FirstOrCreate(&ing).Error; err != nil {
				return err
			}
			if err := tx.Create(&model.RecipeIngredient{RecipeID: recipe.ID, IngredientID: ing.ID}).Error; err != nil {
				return err
			}
		}
		for _, name := range model.NormalizeNames(f.Categories) {
			var cat model.Category
			if err := tx.Where(model.Category{Name: name}).FirstOrCreate(&cat).Error; err != nil {
				return err
			}
			if err := tx.Create(&model.RecipeCategory{RecipeID: recipe.ID, CategoryID: cat.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to create recipe %s: %v", f.Title, err)
	}
	return recipe
}

// CreateReview inserts a review by author on recipe.
func CreateReview(t *testing.T, db *gorm.DB, recipe *model.Recipe, author *model.User, stars int) *model.Review {
	t.Helper()

	review := &model.Review{
		Stars:    stars,
		Comment:  fmt.Sprintf("%d stars from %s", stars, author.Name),
		RecipeID: recipe.ID,
		UserID:   author.ID,
	}
	if err := db.Omit("Author").Create(review).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}

// Minutes returns a time offset from a fixed base, for deterministic ordering.
func Minutes(n int) time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute)
}
