package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avsytem/receitas-backend/internal/service"
	"github.com/avsytem/receitas-backend/internal/types"
)

// AuthHandler exposes registration, login, logout and profile endpoints.
type AuthHandler struct {
	authService   *service.AuthService
	recipeService *service.RecipeService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(authService *service.AuthService, recipeService *service.RecipeService) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		recipeService: recipeService,
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.AuthResponse{Token: token, Usuario: user})
}

// Login authenticates a user and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, Usuario: user})
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing bearer token"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), parts[1]); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GetProfile returns the authenticated user's recipe count alongside their
// identity claims.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	count, err := h.recipeService.CountByOwner(c.Request.Context(), userID.(int))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":        userID,
		"username":       c.GetString("username"),
		"total_receitas": count,
	})
}
