// Command migrate creates the relational schema and exits. It is safe to run
// repeatedly; existing tables are left untouched.
package main

import (
	"context"
	"log"

	"github.com/avsytem/receitas-backend/config"
	"github.com/avsytem/receitas-backend/internal/database"
	"github.com/avsytem/receitas-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("Failed to create database schema: %v", err)
	}

	log.Println("Schema is up to date")
}
