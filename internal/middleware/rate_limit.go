package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/cookbook/backend/internal/metrics"
)

// RateLimitConfig describes one fixed-window limiter.
type RateLimitConfig struct {
	Window time.Duration
	Limit  int
	// KeyPrefix namespaces the Redis counters.
	KeyPrefix string
	// Name labels the limiter in logs and metrics.
	Name string
}

// Decision is the outcome of counting one request.
type Decision struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// RateLimiter is a fixed-window per-user limiter backed by Redis.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	log    *slog.Logger
}

func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, log *slog.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		log:    log,
	}
}

// NewRecipeCreationRateLimiter allows perHour new recipes per user.
func NewRecipeCreationRateLimiter(redisClient *redis.Client, perHour int, log *slog.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     perHour,
		KeyPrefix: "rate_limit:recipe_creation",
		Name:      "recipe_creation",
	}, log)
}

// NewReviewCreationRateLimiter allows perHour new reviews per user.
func NewReviewCreationRateLimiter(redisClient *redis.Client, perHour int, log *slog.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     perHour,
		KeyPrefix: "rate_limit:review_creation",
		Name:      "review_creation",
	}, log)
}

// RateLimitMiddleware must run after AuthMiddleware. When Redis cannot be
// reached the request goes through.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		d, err := rl.Count(c.Request.Context(), userID.String())
		if err != nil {
			rl.log.Warn("rate limit check failed",
				slog.String("limiter", rl.config.Name),
				slog.Any("error", err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

		if !d.Allowed {
			metrics.RateLimitedTotal.WithLabelValues(rl.config.Name).Inc()
			c.Header("Retry-After", strconv.Itoa(int(time.Until(d.Reset).Seconds())))
			abort(c, http.StatusTooManyRequests,
				fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window))
			return
		}

		c.Next()
	}
}

// Count records a request by subject in the current window and reports
// whether it fits under the limit.
func (rl *RateLimiter) Count(ctx context.Context, subject string) (Decision, error) {
	start := time.Now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, subject, start.Unix())

	var incr *redis.IntCmd
	_, err := rl.redis.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, rl.config.Window)
		return nil
	})
	if err != nil {
		return Decision{}, err
	}

	n := int(incr.Val())
	return Decision{
		Allowed:   n <= rl.config.Limit,
		Remaining: max(rl.config.Limit-n, 0),
		Reset:     start.Add(rl.config.Window),
	}, nil
}
