package types

import "github.com/avsytem/receitas-backend/internal/model"

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and its owner.
type AuthResponse struct {
	Token   string         `json:"token"`
	Usuario *model.Usuario `json:"usuario"`
}

// ReceitaRequest is the payload for creating or updating a recipe. The id and
// owner are never taken from the payload.
type ReceitaRequest struct {
	Nome            string              `json:"nome" binding:"required,max=255"`
	Descricao       string              `json:"descricao"`
	TempoPreparoMin int                 `json:"tempo_preparo_min" binding:"omitempty,min=0"`
	Porcoes         int                 `json:"porcoes" binding:"omitempty,min=0"`
	Dificuldade     string              `json:"dificuldade" binding:"omitempty,max=50"`
	Ingredientes    []model.Ingrediente `json:"ingredientes"`
	Passos          []model.Passo       `json:"passos"`
	Categorias      []string            `json:"categorias"`
}
