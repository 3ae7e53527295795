package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
)

type tagRepository struct {
	db *gorm.DB
}

var _ TagRepository = (*tagRepository)(nil)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindCategoryIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	var cat model.Category
	if err := r.db.WithContext(ctx).Select("id").Where("name = ?", model.NormalizeName(name)).First(&cat).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to find category %q: %w", name, err)
	}
	return cat.ID, nil
}

func (r *tagRepository) FindIngredientIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	var ing model.Ingredient
	if err := r.db.WithContext(ctx).Select("id").Where("name = ?", model.NormalizeName(name)).First(&ing).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to find ingredient %q: %w", name, err)
	}
	return ing.ID, nil
}
