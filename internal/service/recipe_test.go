package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avsytem/receitas-backend/internal/model"
	"github.com/avsytem/receitas-backend/internal/store"
	"github.com/avsytem/receitas-backend/internal/testhelpers"
	"github.com/avsytem/receitas-backend/internal/types"
)

func setupRecipeService(t *testing.T) (*RecipeService, *store.UserStore) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return NewRecipeService(store.NewReceitaStore(db)), store.NewUserStore(db)
}

func createUser(t *testing.T, users *store.UserStore, username string) int {
	t.Helper()
	u := &model.Usuario{Nome: username, Username: username, PasswordHash: "x"}
	id, err := users.Create(context.Background(), u)
	require.NoError(t, err)
	return id
}

func boloRequest() types.ReceitaRequest {
	return types.ReceitaRequest{
		Nome:        "Bolo de Cenoura",
		Dificuldade: "facil",
		Ingredientes: []model.Ingrediente{
			{Nome: "cenoura", Quantidade: 3, Unidade: "unidades"},
		},
		Passos: []model.Passo{
			{Ordem: 1, Descricao: "misturar"},
			{Ordem: 2, Descricao: "assar"},
		},
		Categorias: []string{"sobremesa"},
	}
}

func TestCreateAndGetRecipe(t *testing.T) {
	s, users := setupRecipeService(t)
	ctx := context.Background()
	uid := createUser(t, users, "ana")

	created, err := s.Create(ctx, boloRequest(), &uid)
	require.NoError(t, err)
	require.NotNil(t, created.UsuarioID)
	assert.Equal(t, uid, *created.UsuarioID)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bolo de Cenoura", got.Nome)
	assert.Len(t, got.Passos, 2)
}

func TestCreateValidation(t *testing.T) {
	s, _ := setupRecipeService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  types.ReceitaRequest
	}{
		{"empty nome", types.ReceitaRequest{Nome: "   "}},
		{"nome too long", types.ReceitaRequest{Nome: strings.Repeat("a", 256)}},
		{"dificuldade too long", types.ReceitaRequest{Nome: "Bolo", Dificuldade: strings.Repeat("a", 51)}},
		{"blank ingrediente", types.ReceitaRequest{Nome: "Bolo", Ingredientes: []model.Ingrediente{{Nome: " "}}}},
		{"blank passo", types.ReceitaRequest{Nome: "Bolo", Passos: []model.Passo{{Ordem: 1, Descricao: ""}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, tt.req, nil)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateReplacesAggregate(t *testing.T) {
	s, users := setupRecipeService(t)
	ctx := context.Background()
	uid := createUser(t, users, "ana")

	created, err := s.Create(ctx, boloRequest(), &uid)
	require.NoError(t, err)

	req := boloRequest()
	req.Nome = "Bolo de Cenoura Integral"
	req.Passos = []model.Passo{{Ordem: 1, Descricao: "misturar tudo"}}

	updated, err := s.Update(ctx, created.ID, req, &uid)
	require.NoError(t, err)
	assert.Equal(t, "Bolo de Cenoura Integral", updated.Nome)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Passos, 1)
	// Ownership survives the rewrite.
	require.NotNil(t, got.UsuarioID)
	assert.Equal(t, uid, *got.UsuarioID)
}

func TestUpdateByNonOwner(t *testing.T) {
	s, users := setupRecipeService(t)
	ctx := context.Background()
	ana := createUser(t, users, "ana")
	bia := createUser(t, users, "bia")

	created, err := s.Create(ctx, boloRequest(), &ana)
	require.NoError(t, err)

	_, err = s.Update(ctx, created.ID, boloRequest(), &bia)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestOwnerlessRecipeIsEditableByAnyone(t *testing.T) {
	s, users := setupRecipeService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, boloRequest(), nil)
	require.NoError(t, err)

	bia := createUser(t, users, "bia")
	_, err = s.Update(ctx, created.ID, boloRequest(), &bia)
	assert.NoError(t, err)
}

func TestDeleteByNonOwner(t *testing.T) {
	s, users := setupRecipeService(t)
	ctx := context.Background()
	ana := createUser(t, users, "ana")
	bia := createUser(t, users, "bia")

	created, err := s.Create(ctx, boloRequest(), &ana)
	require.NoError(t, err)

	err = s.Delete(ctx, created.ID, &bia)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = s.Delete(ctx, created.ID, &ana)
	assert.NoError(t, err)

	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteMissingRecipe(t *testing.T) {
	s, _ := setupRecipeService(t)

	err := s.Delete(context.Background(), 9999, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCountByOwner(t *testing.T) {
	s, users := setupRecipeService(t)
	ctx := context.Background()
	ana := createUser(t, users, "ana")

	_, err := s.Create(ctx, boloRequest(), &ana)
	require.NoError(t, err)
	_, err = s.Create(ctx, boloRequest(), nil)
	require.NoError(t, err)

	n, err := s.CountByOwner(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
