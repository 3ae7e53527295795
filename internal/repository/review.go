package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/query"
)

type reviewRepository struct {
	db *gorm.DB
}

var _ ReviewRepository = (*reviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func scopeReviews(tx *gorm.DB, pred query.ReviewPredicate) *gorm.DB {
	tx = tx.Where("reviews.recipe_id = ?", pred.RecipeID)
	if pred.ExcludeUserID != nil {
		tx = tx.Where("reviews.user_id <> ?", *pred.ExcludeUserID)
	}
	return tx
}

func (r *reviewRepository) FindReviews(ctx context.Context, pred query.ReviewPredicate, skip, take int) ([]model.Review, error) {
	var reviews []model.Review
	if err := scopeReviews(r.db.WithContext(ctx).Model(&model.Review{}), pred).
		Preload("Author").
		Order("reviews.created_at DESC").
		Order("reviews.id DESC").
		Offset(skip).
		Limit(take).
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) CountReviews(ctx context.Context, pred query.ReviewPredicate) (int64, error) {
	var count int64
	if err := scopeReviews(r.db.WithContext(ctx).Model(&model.Review{}), pred).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// GetStarAggregate returns the average stars rounded to one decimal and the
// review count. A recipe without reviews yields {0, 0}.
func (r *reviewRepository) GetStarAggregate(ctx context.Context, recipeID uuid.UUID) (model.StarAggregate, error) {
	var row struct {
		Count   int64
		Average float64
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COUNT(*) AS count, CAST(COALESCE(AVG(stars), 0) AS FLOAT) AS average").
		Where("recipe_id = ?", recipeID).
		Scan(&row).Error; err != nil {
		return model.StarAggregate{}, fmt.Errorf("failed to aggregate stars: %w", err)
	}
	return model.StarAggregate{
		Average: math.Round(row.Average*10) / 10,
		Count:   row.Count,
	}, nil
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Preload("Author").First(&review, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get review %s: %w", id, err)
	}
	return &review, nil
}

// FindUserReview returns gorm.ErrRecordNotFound (wrapped) when the user has
// not reviewed the recipe.
func (r *reviewRepository) FindUserReview(ctx context.Context, recipeID, userID uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *model.Review) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) UpdateReview(ctx context.Context, review *model.Review) error {
	review.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", review.ID).
		Select("stars", "comment", "updated_at").
		Updates(review)
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update review %s: %w", review.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to delete review %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
