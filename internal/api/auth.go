package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/service"
)

// AuthHandler exposes a login that trusts the posted identity. It stands in
// for the identity provider outside production and is never mounted there.
type AuthHandler struct {
	auth service.IAuthService
}

func NewAuthHandler(auth service.IAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/dev-login", h.DevLogin)
	}
}

type devLoginRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name" binding:"required"`
	Picture string `json:"picture"`
}

func (h *AuthHandler) DevLogin(c *gin.Context) {
	var req devLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Name, req.Picture)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "Logged in", gin.H{"user": user, "token": token})
}
