package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avsytem/receitas-backend/internal/api"
	"github.com/avsytem/receitas-backend/internal/embedded"
	"github.com/avsytem/receitas-backend/internal/router"
	"github.com/avsytem/receitas-backend/internal/seed"
	"github.com/avsytem/receitas-backend/internal/service"
	"github.com/avsytem/receitas-backend/internal/store"
)

// TestStandaloneDeployment boots the whole standalone stack: embedded engine,
// schema, bundled dataset and HTTP surface, and reads the seeded recipes back
// through the API.
func TestStandaloneDeployment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	manager := embedded.NewManager()
	require.NoError(t, manager.Start(context.Background(), t.TempDir()))
	t.Cleanup(func() {
		require.NoError(t, manager.Stop())
	})

	db, err := manager.DB()
	require.NoError(t, err)

	authService := service.NewAuthService(store.NewUserStore(db), "test-jwt-secret", nil)
	recipeService := service.NewRecipeService(store.NewReceitaStore(db))

	engine := router.Setup(
		api.NewAuthHandler(authService, recipeService),
		api.NewRecipeHandler(recipeService),
		authService,
	)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/receitas", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Receitas []struct {
			Nome         string `json:"nome"`
			Ingredientes []struct {
				Nome string `json:"nome"`
			} `json:"ingredientes"`
			Passos []struct {
				Ordem int `json:"ordem"`
			} `json:"passos"`
		} `json:"receitas"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	dataset, err := seed.Load()
	require.NoError(t, err)
	require.Len(t, resp.Receitas, len(dataset))

	for _, r := range resp.Receitas {
		assert.NotEmpty(t, r.Nome)
		assert.NotEmpty(t, r.Ingredientes)
		for i, p := range r.Passos {
			assert.Equal(t, i+1, p.Ordem, "steps of %q out of order", r.Nome)
		}
	}
}
