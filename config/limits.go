package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits groups the application bounds. Defaults live in DefaultLimits and
// can be overridden field by field from a YAML file.
type Limits struct {
	Pagination PaginationLimits `yaml:"pagination"`
	Recipe     RecipeLimits     `yaml:"recipe"`
	Review     ReviewLimits     `yaml:"review"`
	RateLimit  RateLimits       `yaml:"rate_limit"`
}

type PaginationLimits struct {
	DefaultPage  int `yaml:"default_page"`
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

type RecipeLimits struct {
	TitleMaxLength       int `yaml:"title_max_length"`
	DescriptionMinLength int `yaml:"description_min_length"`
	LocationMaxLength    int `yaml:"location_max_length"`
	NameMinLength        int `yaml:"name_min_length"`
	NameMaxLength        int `yaml:"name_max_length"`
	MinIngredients       int `yaml:"min_ingredients"`
	MaxIngredients       int `yaml:"max_ingredients"`
	MinCategories        int `yaml:"min_categories"`
	MaxCategories        int `yaml:"max_categories"`
}

type ReviewLimits struct {
	MinStars         int `yaml:"min_stars"`
	MaxStars         int `yaml:"max_stars"`
	CommentMaxLength int `yaml:"comment_max_length"`
}

// RateLimits caps creations per user per hour.
type RateLimits struct {
	RecipesPerHour int `yaml:"recipes_per_hour"`
	ReviewsPerHour int `yaml:"reviews_per_hour"`
}

// DefaultLimits returns the built-in application bounds
func DefaultLimits() Limits {
	return Limits{
		Pagination: PaginationLimits{
			DefaultPage:  1,
			DefaultLimit: 10,
			MaxLimit:     25,
		},
		Recipe: RecipeLimits{
			TitleMaxLength:       80,
			DescriptionMinLength: 10,
			LocationMaxLength:    100,
			NameMinLength:        2,
			NameMaxLength:        40,
			MinIngredients:       1,
			MaxIngredients:       25,
			MinCategories:        1,
			MaxCategories:        5,
		},
		Review: ReviewLimits{
			MinStars:         1,
			MaxStars:         5,
			CommentMaxLength: 500,
		},
		RateLimit: RateLimits{
			RecipesPerHour: 20,
			ReviewsPerHour: 30,
		},
	}
}

// LoadLimits returns DefaultLimits overlaid with the YAML file at path.
// An empty path returns the defaults.
func LoadLimits(path string) (Limits, error) {
	limits := DefaultLimits()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("failed to read limits file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return Limits{}, fmt.Errorf("failed to parse limits file %s: %w", path, err)
	}
	return limits, nil
}

// Validate checks the bounds are internally consistent
func (l Limits) Validate() error {
	p := l.Pagination
	if p.DefaultPage < 1 {
		return ValidationError{"pagination.default_page", "must be at least 1"}
	}
	if p.MaxLimit < 1 {
		return ValidationError{"pagination.max_limit", "must be at least 1"}
	}
	if p.DefaultLimit < 1 || p.DefaultLimit > p.MaxLimit {
		return ValidationError{"pagination.default_limit", fmt.Sprintf("must be within [1, %d]", p.MaxLimit)}
	}
	if l.Review.MinStars < 1 || l.Review.MaxStars < l.Review.MinStars {
		return ValidationError{"review.stars", "invalid star range"}
	}
	if l.Recipe.MinIngredients < 1 || l.Recipe.MaxIngredients < l.Recipe.MinIngredients {
		return ValidationError{"recipe.ingredients", "invalid quantity range"}
	}
	if l.Recipe.MinCategories < 1 || l.Recipe.MaxCategories < l.Recipe.MinCategories {
		return ValidationError{"recipe.categories", "invalid quantity range"}
	}
	if l.RateLimit.RecipesPerHour < 1 || l.RateLimit.ReviewsPerHour < 1 {
		return ValidationError{"rate_limit", "must allow at least one request per hour"}
	}
	return nil
}
