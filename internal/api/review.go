package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
)

type ReviewHandler struct {
	reviews       service.IReviewService
	createLimiter *middleware.RateLimiter
}

// NewReviewHandler creates a review handler. createLimiter may be nil.
func NewReviewHandler(reviews service.IReviewService, createLimiter *middleware.RateLimiter) *ReviewHandler {
	return &ReviewHandler{
		reviews:       reviews,
		createLimiter: createLimiter,
	}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/recipe/review")
	{
		reviews.GET("/:recipeId", h.ListReviews)
		reviews.GET("/stars/:recipeId", h.GetStars)
		if h.createLimiter != nil {
			reviews.POST("/:recipeId", h.createLimiter.RateLimitMiddleware(), h.CreateReview)
		} else {
			reviews.POST("/:recipeId", h.CreateReview)
		}
		reviews.PUT("/:reviewId", h.UpdateReview)
		reviews.DELETE("/:reviewId", h.DeleteReview)
	}
}

type reviewRequest struct {
	Stars   *float64 `json:"stars" binding:"required"`
	Comment string   `json:"comment"`
}

func (r reviewRequest) input() service.ReviewInput {
	return service.ReviewInput{Stars: *r.Stars, Comment: r.Comment}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	recipeID, ok := pathID(c, "recipeId")
	if !ok {
		return
	}

	page, err := h.reviews.ListReviews(c.Request.Context(), userID, recipeID, rawPage(c))
	if err != nil {
		respondError(c, err, reviewPageBody(page))
		return
	}
	respond(c, http.StatusOK, "Reviews found", reviewPageBody(page))
}

func (h *ReviewHandler) GetStars(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	recipeID, ok := pathID(c, "recipeId")
	if !ok {
		return
	}

	stars, err := h.reviews.GetStars(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "Stars found", gin.H{"stars": stars})
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	recipeID, ok := pathID(c, "recipeId")
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}

	review, err := h.reviews.CreateReview(c.Request.Context(), userID, recipeID, req.input())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, "Review created", gin.H{"review": review})
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	reviewID, ok := pathID(c, "reviewId")
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}

	review, err := h.reviews.UpdateReview(c.Request.Context(), userID, reviewID, req.input())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "Review updated", gin.H{"review": review})
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	reviewID, ok := pathID(c, "reviewId")
	if !ok {
		return
	}

	if err := h.reviews.DeleteReview(c.Request.Context(), userID, reviewID); err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "Review deleted", nil)
}
