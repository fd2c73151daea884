// The standalone deployment hosts the database engine inside the process:
// no external PostgreSQL, no Redis. Data lives in a local directory and the
// bundled dataset is loaded on first start.
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
	"github.com/avsytem/receitas-backend/internal/embedded"
	"github.com/avsytem/receitas-backend/internal/router"
	"github.com/avsytem/receitas-backend/internal/service"
	"github.com/avsytem/receitas-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	manager := embedded.NewManager()
	if err := manager.Start(context.Background(), cfg.DataDir); err != nil {
		log.Fatalf("Failed to start embedded store: %v", err)
	}
	// Shutdown hook: the engine must never outlive the process.
	defer func() {
		if err := manager.Stop(); err != nil {
			log.Printf("Error stopping embedded store: %v", err)
		}
	}()

	db, err := manager.DB()
	if err != nil {
		log.Fatalf("Embedded store unavailable: %v", err)
	}

	authService := service.NewAuthService(store.NewUserStore(db), cfg.JWTSecret, nil)
	recipeService := service.NewRecipeService(store.NewReceitaStore(db))

	authHandler := api.NewAuthHandler(authService, recipeService)
	recipeHandler := api.NewRecipeHandler(recipeService)

	engine := router.Setup(authHandler, recipeHandler, authService)

	srv := &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting standalone server on %s", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			return
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
