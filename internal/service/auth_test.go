package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avsytem/receitas-backend/internal/store"
	"github.com/avsytem/receitas-backend/internal/testhelpers"
	"github.com/avsytem/receitas-backend/internal/types"
)

const testSecret = "test-jwt-secret"

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return NewAuthService(store.NewUserStore(db), testSecret, nil)
}

func registerAna(t *testing.T, s *AuthService) string {
	t.Helper()
	_, token, err := s.Register(context.Background(), types.RegisterRequest{
		Nome:     "Ana Silva",
		Username: "ana",
		Email:    "ana@example.com",
		Password: "segredo123",
	})
	require.NoError(t, err)
	return token
}

func TestRegisterReturnsValidToken(t *testing.T) {
	s := setupAuthService(t)
	token := registerAna(t, s)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.Greater(t, claims.UserID, 0)
	assert.NotEmpty(t, claims.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := setupAuthService(t)
	registerAna(t, s)

	_, _, err := s.Register(context.Background(), types.RegisterRequest{
		Nome:     "Outra Ana",
		Username: "ana",
		Password: "outrasenha",
	})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	s := setupAuthService(t)
	registerAna(t, s)

	user, token, err := s.Login(context.Background(), "ana", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)

	_, err = s.ValidateToken(token)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	s := setupAuthService(t)
	registerAna(t, s)

	_, _, err := s.Login(context.Background(), "ana", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	s := setupAuthService(t)

	_, _, err := s.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := setupAuthService(t)

	_, err := s.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	users := store.NewUserStore(db)

	issuer := NewAuthService(users, "secret-a", nil)
	verifier := NewAuthService(users, "secret-b", nil)

	token := registerAna(t, issuer)

	_, err := verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := setupAuthService(t)
	token := registerAna(t, s)

	require.NoError(t, s.Logout(context.Background(), token))

	_, err := s.ValidateToken(token)
	assert.EqualError(t, err, "token has been revoked")
}
