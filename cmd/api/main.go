package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avsytem/receitas-backend/config"
	"github.com/avsytem/receitas-backend/internal/api"
	"github.com/avsytem/receitas-backend/internal/database"
	"github.com/avsytem/receitas-backend/internal/router"
	"github.com/avsytem/receitas-backend/internal/service"
	"github.com/avsytem/receitas-backend/internal/store"
)

func main() {
	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to PostgreSQL
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to create database schema: %v", err)
	}

	// Redis is optional; without it the token revocation list is in-process.
	var revoker service.TokenRevoker
	if cfg.RedisAddr != "" {
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		revoker = service.NewRedisRevoker(client)
	}

	// Wire stores, services and handlers
	authService := service.NewAuthService(store.NewUserStore(db), cfg.JWTSecret, revoker)
	recipeService := service.NewRecipeService(store.NewReceitaStore(db))

	authHandler := api.NewAuthHandler(authService, recipeService)
	recipeHandler := api.NewRecipeHandler(recipeService)

	engine := router.Setup(authHandler, recipeHandler, authService)

	srv := &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: engine,
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	// Gracefully shutdown the server
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
