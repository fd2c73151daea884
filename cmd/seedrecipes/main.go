// Command seedrecipes loads the bundled recipe dataset into the database.
// The load is skipped when recipes already exist, so it can run on every
// deploy. Pass -file to seed from a custom JSON dataset instead.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/avsytem/receitas-backend/config"
	"github.com/avsytem/receitas-backend/internal/database"
	"github.com/avsytem/receitas-backend/internal/seed"
	"github.com/avsytem/receitas-backend/internal/store"
)

func main() {
	file := flag.String("file", "", "path to a JSON recipe dataset (defaults to the bundled one)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to create database schema: %v", err)
	}

	receitas := store.NewReceitaStore(db)

	if *file == "" {
		if err := seed.Populate(ctx, receitas); err != nil {
			log.Fatalf("Failed to seed recipes: %v", err)
		}
		return
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read dataset %s: %v", *file, err)
	}
	loaded, err := seed.Parse(data)
	if err != nil {
		log.Fatalf("Failed to parse dataset %s: %v", *file, err)
	}
	if err := seed.PopulateWith(ctx, receitas, loaded); err != nil {
		log.Fatalf("Failed to seed recipes: %v", err)
	}
}
