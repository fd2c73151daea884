package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avsytem/receitas-backend/internal/database"
	"github.com/avsytem/receitas-backend/internal/model"
)

// UserStore persists user accounts. Uniqueness of username and email is
// enforced by the schema; violations surface as ErrDuplicate.
type UserStore struct {
	db *database.DB
}

// NewUserStore creates a store on top of the given connection pool.
func NewUserStore(db *database.DB) *UserStore {
	return &UserStore{db: db}
}

const (
	insertUsuarioSQL = `INSERT INTO usuarios (nome, username, email, password_hash) VALUES (?, ?, ?, ?) RETURNING id`

	selectUsuarioSQL = `SELECT id, nome, username, COALESCE(email, ''), password_hash, ativo FROM usuarios`
)

// Create inserts a new user and sets the generated id on success.
func (s *UserStore) Create(ctx context.Context, u *model.Usuario) (int, error) {
	// An empty email is stored as NULL so the unique index does not collide
	// on registrations that omit it.
	email := sql.NullString{String: u.Email, Valid: u.Email != ""}

	var id int
	err := s.db.QueryRowContext(ctx, s.db.Rebind(insertUsuarioSQL),
		u.Nome, u.Username, email, u.PasswordHash).Scan(&id)
	if err != nil {
		return 0, classify("create usuario", err)
	}

	u.ID = id
	u.Ativo = true
	return id, nil
}

// GetByUsername returns the active user with the given username, or
// ErrNotFound. Inactive accounts are treated as absent.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	return s.get(ctx, selectUsuarioSQL+" WHERE username = ? AND ativo = TRUE", username)
}

// GetByID returns the user with the given id, or ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id int) (*model.Usuario, error) {
	return s.get(ctx, selectUsuarioSQL+" WHERE id = ?", id)
}

func (s *UserStore) get(ctx context.Context, query string, args ...interface{}) (*model.Usuario, error) {
	var u model.Usuario
	err := s.db.QueryRowContext(ctx, s.db.Rebind(query), args...).
		Scan(&u.ID, &u.Nome, &u.Username, &u.Email, &u.PasswordHash, &u.Ativo)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("usuario: %w", ErrNotFound)
	}
	if err != nil {
		return nil, classify("get usuario", err)
	}
	return &u, nil
}
