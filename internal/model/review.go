package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is unique per (UserID, RecipeID).
type Review struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Stars     int       `gorm:"not null" json:"stars"`
	Comment   string    `gorm:"type:text" json:"comment"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_user_recipe,priority:2;index" json:"recipeId"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_user_recipe,priority:1" json:"userId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	Author    *User     `gorm:"foreignKey:UserID" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// StarAggregate is the review summary of a recipe. Average is rounded to one decimal.
type StarAggregate struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
