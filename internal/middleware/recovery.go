package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 JSON response and logs it.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered",
					slog.Any("error", err),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path))
				abort(c, http.StatusInternalServerError, "Something went wrong")
			}
		}()
		c.Next()
	}
}

// NoRoute answers unknown paths in the API's JSON shape.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		abort(c, http.StatusNotFound, "Route not found")
	}
}
