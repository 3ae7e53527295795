package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/service"
)

// statusOf maps a service error kind to its HTTP status
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNoMorePages):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respond writes {"success": true, "msg": msg} merged with data
func respond(c *gin.Context, status int, msg string, data gin.H) {
	body := gin.H{"success": true, "msg": msg}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError writes {"success": false, "msg": ...} merged with data. data
// carries the pagination envelope of a page overrun.
func respondError(c *gin.Context, err error, data gin.H) {
	body := gin.H{"success": false, "msg": service.MessageOf(err)}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(statusOf(err), body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": msg})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "User not authenticated"})
}

func recipePageBody(p *service.RecipePage) gin.H {
	if p == nil {
		return nil
	}
	return gin.H{
		"page":         p.Page,
		"limit":        p.Limit,
		"totalRecipes": p.TotalRecipes,
		"totalPages":   p.TotalPages,
		"recipes":      p.Recipes,
	}
}

func reviewPageBody(p *service.ReviewPage) gin.H {
	if p == nil {
		return nil
	}
	return gin.H{
		"page":              p.Page,
		"limit":             p.Limit,
		"totalReviews":      p.TotalReviews,
		"totalPages":        p.TotalPages,
		"currentUserReview": p.CurrentUserReview,
		"reviews":           p.Reviews,
	}
}
