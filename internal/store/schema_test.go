package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avsytem/receitas-backend/internal/model"
)

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := NewReceitaStore(db)
	id, err := s.Create(ctx, &model.Receita{Nome: "Bolo"})
	require.NoError(t, err)

	// Re-running against an initialized store must not fail or drop data.
	require.NoError(t, EnsureSchema(ctx, db))
	require.NoError(t, EnsureSchema(ctx, db))

	got, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bolo", got.Nome)
}

func TestSchemaEnforcesParentForeignKey(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		db.Rebind("INSERT INTO ingredientes (receita_id, nome, quantidade, unidade) VALUES (?, ?, ?, ?)"),
		9999, "cenoura", 1.0, "unidade")
	require.Error(t, err)
	assert.ErrorIs(t, classify("insert", err), ErrConstraint)
}
