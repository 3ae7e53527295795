package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/repository"
	"github.com/pageza/cookbook/backend/internal/service"
)

type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	Email   string       `yaml:"email"`
	Name    string       `yaml:"name"`
	Picture string       `yaml:"picture"`
	Recipes []seedRecipe `yaml:"recipes"`
}

type seedRecipe struct {
	Title              string       `yaml:"title"`
	CookingTimeMinutes int          `yaml:"cooking_time_minutes"`
	Description        string       `yaml:"description"`
	Public             bool         `yaml:"public"`
	Location           *string      `yaml:"location"`
	Ingredients        []string     `yaml:"ingredients"`
	Categories         []string     `yaml:"categories"`
	Reviews            []seedReview `yaml:"reviews"`
}

type seedReview struct {
	By      string  `yaml:"by"`
	Stars   float64 `yaml:"stars"`
	Comment string  `yaml:"comment"`
}

type seedStats struct {
	Users   int
	Recipes int
	Reviews int
}

func parseSeed(data []byte) (*seedFile, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &f, nil
}

// run creates the seed users, their recipes and the reviews of those
// recipes through the service layer, so every record passes the same
// checks as API traffic. Users are matched by email and reused.
func run(ctx context.Context, db *gorm.DB, limits config.Limits, seed *seedFile, log *slog.Logger) (seedStats, error) {
	var stats seedStats

	recipeRepo := repository.NewRecipeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	users := service.NewUserService(repository.NewUserRepository(db), log)
	recipes := service.NewRecipeService(recipeRepo, repository.NewTagRepository(db), reviewRepo, limits, log)
	reviews := service.NewReviewService(reviewRepo, recipeRepo, limits, log)

	byEmail := make(map[string]*model.User, len(seed.Users))
	for _, u := range seed.Users {
		user, err := users.FindOrCreateByEmail(ctx, u.Email, u.Name, u.Picture)
		if err != nil {
			return stats, fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		byEmail[u.Email] = user
		stats.Users++
	}

	for _, u := range seed.Users {
		owner := byEmail[u.Email]
		for _, r := range u.Recipes {
			created, err := recipes.CreateRecipe(ctx, owner.ID, service.RecipeInput{
				Title:              r.Title,
				CookingTimeMinutes: r.CookingTimeMinutes,
				Description:        r.Description,
				IsPublic:           r.Public,
				Location:           r.Location,
				Ingredients:        r.Ingredients,
				Categories:         r.Categories,
			})
			if err != nil {
				return stats, fmt.Errorf("failed to create recipe %q: %s: %w", r.Title, service.MessageOf(err), err)
			}
			stats.Recipes++

			for _, rv := range r.Reviews {
				author, ok := byEmail[rv.By]
				if !ok {
					return stats, fmt.Errorf("review of %q by unknown user %s", r.Title, rv.By)
				}
				_, err := reviews.CreateReview(ctx, author.ID, created.ID, service.ReviewInput{Stars: rv.Stars, Comment: rv.Comment})
				if errors.Is(err, service.ErrConflict) {
					log.Warn("skipping review", slog.String("recipe", r.Title), slog.String("by", rv.By), slog.String("reason", service.MessageOf(err)))
					continue
				}
				if err != nil {
					return stats, fmt.Errorf("failed to review %q: %w", r.Title, err)
				}
				stats.Reviews++
			}
		}
	}

	return stats, nil
}
