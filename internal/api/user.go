package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
)

type UserHandler struct {
	users service.IUserService
}

func NewUserHandler(users service.IUserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/user")
	{
		users.GET("", h.GetCurrentUser)
		users.GET("/:id", h.GetUser)
	}
}

// GetCurrentUser returns the authenticated user including email and flags.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		unauthorized(c)
		return
	}
	respond(c, http.StatusOK, "User found", gin.H{"user": user})
}

// GetUser returns the public profile of any user.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	author, err := h.users.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "User found", gin.H{"user": author})
}
