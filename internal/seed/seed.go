// Package seed loads the bundled recipe dataset into an empty store. The
// dataset ships inside the binary, the Go counterpart of a classpath
// resource.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/avsytem/receitas-backend/internal/model"
	"github.com/avsytem/receitas-backend/internal/store"
)

//go:embed receitas.json
var receitasJSON []byte

// Load parses the bundled dataset.
func Load() ([]model.Receita, error) {
	return Parse(receitasJSON)
}

// Parse decodes a recipe dataset from raw JSON.
func Parse(data []byte) ([]model.Receita, error) {
	var receitas []model.Receita
	if err := json.Unmarshal(data, &receitas); err != nil {
		return nil, fmt.Errorf("failed to parse seed dataset: %w", err)
	}
	return receitas, nil
}

// Populate writes the bundled dataset through the aggregate writer, but only
// when the recipe table is empty. A missing or unreadable dataset is logged
// and skipped; write failures propagate because a half-seeded store should
// abort startup.
func Populate(ctx context.Context, receitas *store.ReceitaStore) error {
	n, err := receitas.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to check for existing recipes: %w", err)
	}
	if n > 0 {
		log.Printf("Database already contains %d recipes, skipping seed", n)
		return nil
	}

	dataset, err := Load()
	if err != nil {
		log.Printf("Warning: seed dataset unavailable: %v", err)
		return nil
	}

	return PopulateWith(ctx, receitas, dataset)
}

// PopulateWith writes an already parsed dataset through the aggregate writer.
func PopulateWith(ctx context.Context, receitas *store.ReceitaStore, dataset []model.Receita) error {
	log.Printf("Seeding database with %d recipes", len(dataset))
	for i := range dataset {
		if _, err := receitas.Create(ctx, &dataset[i]); err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", dataset[i].Nome, err)
		}
	}

	return nil
}
