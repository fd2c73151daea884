package model

// Usuario is an account that owns recipes. PasswordHash is never serialized.
type Usuario struct {
	ID           int    `json:"id"`
	Nome         string `json:"nome"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
	Ativo        bool   `json:"ativo"`
}
