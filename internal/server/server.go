package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/repository"
	"github.com/pageza/cookbook/backend/internal/router"
	"github.com/pageza/cookbook/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *slog.Logger
}

// New wires repositories, services and handlers into a server. rdb may be
// nil, which disables rate limiting.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, log *slog.Logger) (*Server, error) {
	if err := api.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register request validators: %w", err)
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	recipeRepo := repository.NewRecipeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	tagRepo := repository.NewTagRepository(db)
	userRepo := repository.NewUserRepository(db)

	userService := service.NewUserService(userRepo, log)
	authService := service.NewAuthService(userService, cfg.JWTSecret, cfg.AccessTokenTTL)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, reviewRepo, cfg.Limits, log)
	reviewService := service.NewReviewService(reviewRepo, recipeRepo, cfg.Limits, log)

	var recipeLimiter, reviewLimiter *middleware.RateLimiter
	if rdb != nil {
		recipeLimiter = middleware.NewRecipeCreationRateLimiter(rdb, cfg.Limits.RateLimit.RecipesPerHour, log)
		reviewLimiter = middleware.NewReviewCreationRateLimiter(rdb, cfg.Limits.RateLimit.ReviewsPerHour, log)
	} else {
		log.Warn("redis unavailable, rate limiting disabled")
	}

	handlers := router.Handlers{
		Health: api.NewHealthHandler(db),
		User:   api.NewUserHandler(userService),
		Recipe: api.NewRecipeHandler(recipeService, recipeLimiter),
		Review: api.NewReviewHandler(reviewService, reviewLimiter),
	}
	if !config.IsProduction() {
		handlers.Auth = api.NewAuthHandler(authService)
	}

	engine := router.SetupRouter(cfg, log, handlers, authService, userService)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. It returns nil after a graceful
// shutdown.
func (s *Server) Start() error {
	s.log.Info("starting server", slog.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
