package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Title              string    `gorm:"size:80;not null" json:"title"`
	CookingTimeMinutes int       `gorm:"not null" json:"cookingTimeMinutes"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	IsPublic           bool      `gorm:"not null;default:false;index" json:"isPublic"`
	Location           *string   `gorm:"size:100" json:"location"`
	Latitude           *float64  `json:"latitude"`
	Longitude          *float64  `json:"longitude"`
	CreatedAt          time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt          time.Time `json:"-"`
	UserID             uuid.UUID `gorm:"type:varchar(36);not null;index" json:"userId"`
	Author             *User     `gorm:"foreignKey:UserID" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ingredient names are unique and stored trimmed and lower-cased.
type Ingredient struct {
	ID   uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name string    `gorm:"size:40;uniqueIndex;not null" json:"name"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Category names are unique and stored trimmed and lower-cased.
type Category struct {
	ID   uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name string    `gorm:"size:40;uniqueIndex;not null" json:"name"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type RecipeIngredient struct {
	RecipeID     uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);primaryKey;index"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

type RecipeCategory struct {
	RecipeID   uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	CategoryID uuid.UUID `gorm:"type:varchar(36);primaryKey;index"`
}

func (RecipeCategory) TableName() string {
	return "recipe_categories"
}
