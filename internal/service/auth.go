package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avsytem/receitas-backend/internal/model"
	"github.com/avsytem/receitas-backend/internal/store"
	"github.com/avsytem/receitas-backend/internal/types"
)

// ErrInvalidCredentials is returned when the username/password pair does not
// match an active account. Login never reveals which half was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenLifetime = 24 * time.Hour

// AuthService handles registration, login and token validation.
type AuthService struct {
	users     *store.UserStore
	jwtSecret string
	revoker   TokenRevoker
}

// NewAuthService creates an auth service. revoker may be nil, in which case
// an in-process revocation list is used.
func NewAuthService(users *store.UserStore, jwtSecret string, revoker TokenRevoker) *AuthService {
	if revoker == nil {
		revoker = NewMemoryRevoker()
	}
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		revoker:   revoker,
	}
}

// Register creates a new account and returns it with a fresh token. A taken
// username or email surfaces as store.ErrDuplicate.
func (s *AuthService) Register(ctx context.Context, req types.RegisterRequest) (*model.Usuario, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.Usuario{
		Nome:         req.Nome,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Usuario, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ValidateToken parses and verifies a token, rejecting revoked ones.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	revoked, err := s.revoker.IsRevoked(context.Background(), claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, errors.New("token has been revoked")
	}

	return claims, nil
}

// Logout places the token on the revocation list for the remainder of its
// lifetime.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return s.revoker.Revoke(ctx, claims.ID, ttl)
}

func (s *AuthService) generateToken(user *model.Usuario) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
