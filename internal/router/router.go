package router

import (
	"github.com/gin-gonic/gin"

	"github.com/avsytem/receitas-backend/internal/api"
	"github.com/avsytem/receitas-backend/internal/middleware"
	"github.com/avsytem/receitas-backend/internal/service"
)

// Setup configures the application routes
func Setup(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	authService *service.AuthService,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/logout", authHandler.Logout)
	}

	// Public recipe reads; token is honored when present so listings can be
	// scoped to the caller.
	v1.GET("/receitas", middleware.OptionalAuth(authService), recipeHandler.ListRecipes)
	v1.GET("/receitas/:id", recipeHandler.GetRecipe)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.GET("/profile", authHandler.GetProfile)

		protected.POST("/receitas", recipeHandler.CreateRecipe)
		protected.PUT("/receitas/:id", recipeHandler.UpdateRecipe)
		protected.DELETE("/receitas/:id", recipeHandler.DeleteRecipe)
	}

	return router
}
