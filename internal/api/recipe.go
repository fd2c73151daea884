package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avsytem/receitas-backend/internal/service"
	"github.com/avsytem/receitas-backend/internal/store"
	"github.com/avsytem/receitas-backend/internal/types"
)

// RecipeHandler exposes the recipe CRUD endpoints. Reads are public; writes
// require authentication and are scoped to the recipe's owner.
type RecipeHandler struct {
	recipeService *service.RecipeService
}

// NewRecipeHandler creates a recipe handler.
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// ListRecipes returns all recipes, optionally filtered by name substring
// (?q=), difficulty (?dificuldade=) or owner (?minhas=true), and sorted by
// name when ?ordenar=nome.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := store.ListFilter{
		Nome:        c.Query("q"),
		Dificuldade: c.Query("dificuldade"),
		OrderByNome: c.Query("ordenar") == "nome",
	}

	if c.Query("minhas") == "true" {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required for minhas=true"})
			return
		}
		uid := userID.(int)
		filter.UsuarioID = &uid
	}

	receitas, err := h.recipeService.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"receitas": receitas})
}

// GetRecipe returns one recipe with all of its details.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	receita, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, receita)
}

// CreateRecipe stores a new recipe owned by the authenticated user.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.ReceitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receita, err := h.recipeService.Create(c.Request.Context(), req, userIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receita)
}

// UpdateRecipe replaces the recipe's fields and child collections.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.ReceitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receita, err := h.recipeService.Update(c.Request.Context(), id, req, userIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, receita)
}

// DeleteRecipe removes a recipe and, through the cascade, all its children.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), id, userIDFromContext(c)); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted", "id": id})
}

// userIDFromContext returns the authenticated user's id, or nil when the
// route was reached without auth (the standalone deployment).
func userIDFromContext(c *gin.Context) *int {
	v, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id := v.(int)
	return &id
}
