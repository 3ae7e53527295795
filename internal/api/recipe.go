package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/query"
	"github.com/pageza/cookbook/backend/internal/service"
)

type RecipeHandler struct {
	recipes       service.IRecipeService
	createLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates a recipe handler. createLimiter may be nil, in
// which case recipe creation is not rate limited.
func NewRecipeHandler(recipes service.IRecipeService, createLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:       recipes,
		createLimiter: createLimiter,
	}
}

// RegisterRoutes mounts the recipe routes. router must already require
// authentication.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipe")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/category/:name", h.ListByCategory)
		recipes.GET("/ingredient/:name", h.ListByIngredient)
		recipes.GET("/ingredients", h.ListByIngredients)
		recipes.GET("/:id", h.GetRecipe)
		if h.createLimiter != nil {
			recipes.POST("", h.createLimiter.RateLimitMiddleware(), h.CreateRecipe)
		} else {
			recipes.POST("", h.CreateRecipe)
		}
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

type recipeRequest struct {
	Title              string   `json:"title" binding:"required"`
	CookingTimeMinutes int      `json:"cookingTimeMinutes" binding:"required,gte=1"`
	Description        string   `json:"description" binding:"required"`
	IsPublic           *bool    `json:"isPublic"`
	Location           *string  `json:"location"`
	Latitude           *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude          *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Ingredients        []string `json:"ingredients" binding:"required,uniquenames"`
	Categories         []string `json:"categories" binding:"required,uniquenames"`
}

func (r recipeRequest) input() service.RecipeInput {
	in := service.RecipeInput{
		Title:              r.Title,
		CookingTimeMinutes: r.CookingTimeMinutes,
		Description:        r.Description,
		Location:           r.Location,
		Latitude:           r.Latitude,
		Longitude:          r.Longitude,
		Ingredients:        r.Ingredients,
		Categories:         r.Categories,
	}
	if r.IsPublic != nil {
		in.IsPublic = *r.IsPublic
	}
	return in
}

// ListRecipes serves the recipe wall, or the recipes of one user when
// userId is given.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var scope query.Scope
	if raw, ok := c.GetQuery("userId"); ok {
		target, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, query.ErrInvalidParams.Error())
			return
		}
		includePublic, err1 := flag(c, "includePublic")
		includePrivate, err2 := flag(c, "includePrivate")
		if err1 != nil || err2 != nil {
			badRequest(c, query.ErrInvalidParams.Error())
			return
		}
		scope = query.Owner(target, includePublic, includePrivate)
	} else {
		excludeMine, ok := h.excludeMine(c)
		if !ok {
			return
		}
		scope = query.Wall(excludeMine)
	}
	h.list(c, scope)
}

func (h *RecipeHandler) ListByCategory(c *gin.Context) {
	excludeMine, ok := h.excludeMine(c)
	if !ok {
		return
	}
	h.list(c, query.Category(c.Param("name"), excludeMine))
}

func (h *RecipeHandler) ListByIngredient(c *gin.Context) {
	excludeMine, ok := h.excludeMine(c)
	if !ok {
		return
	}
	h.list(c, query.Ingredient(c.Param("name"), excludeMine))
}

// ListByIngredients serves recipes containing every ingredient of the
// comma separated names parameter.
func (h *RecipeHandler) ListByIngredients(c *gin.Context) {
	excludeMine, ok := h.excludeMine(c)
	if !ok {
		return
	}
	h.list(c, query.Ingredients(service.SplitNames(c.Query("names")), excludeMine))
}

func (h *RecipeHandler) excludeMine(c *gin.Context) (bool, bool) {
	v, err := flag(c, "excludeMyRecipes")
	if err != nil {
		badRequest(c, query.ErrInvalidParams.Error())
		return false, false
	}
	return v, true
}

func (h *RecipeHandler) list(c *gin.Context, scope query.Scope) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	page, err := h.recipes.ListRecipes(c.Request.Context(), service.ListRecipesRequest{
		RequesterID: userID,
		Scope:       scope,
		Page:        rawPage(c),
	})
	if err != nil {
		respondError(c, err, recipePageBody(page))
		return
	}
	respond(c, http.StatusOK, "Recipes found", recipePageBody(page))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "Recipe found", gin.H{"recipe": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, req.input())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, "Recipe created", gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), userID, id, req.input())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "Recipe updated", gin.H{"recipe": recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "Recipe deleted", nil)
}
