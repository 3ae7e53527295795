package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/middleware"
)

// Handlers are the route handlers mounted by SetupRouter. Auth may be nil.
type Handlers struct {
	Health *api.HealthHandler
	Auth   *api.AuthHandler
	User   *api.UserHandler
	Recipe *api.RecipeHandler
	Review *api.ReviewHandler
}

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	log *slog.Logger,
	h Handlers,
	validator middleware.TokenValidator,
	users middleware.UserLookup,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.NoRoute(middleware.NoRoute())

	router.GET("/health", h.Health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")

	if h.Auth != nil {
		h.Auth.RegisterRoutes(v1)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator, users))
	{
		h.User.RegisterRoutes(protected)
		h.Recipe.RegisterRoutes(protected)
		h.Review.RegisterRoutes(protected)
	}

	return router
}
