package store

import (
	"context"
	"fmt"
	"log"

	"github.com/avsytem/receitas-backend/internal/database"
)

// schemaStatements returns the CREATE TABLE statements for the normalized
// schema. All child tables reference receitas with ON DELETE CASCADE, which
// is what lets the writer delete a parent row without touching children. The
// generated-id column is the only dialect-specific piece.
func schemaStatements(d database.Dialect) []string {
	id := "SERIAL PRIMARY KEY"
	if d == database.DialectSQLite {
		id = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS usuarios (
			id %s,
			nome VARCHAR(255) NOT NULL,
			username VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(255) UNIQUE,
			password_hash TEXT NOT NULL,
			ativo BOOLEAN NOT NULL DEFAULT TRUE
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS receitas (
			id %s,
			nome VARCHAR(255) NOT NULL,
			descricao TEXT,
			tempo_preparo_min INT,
			porcoes INT,
			dificuldade VARCHAR(50),
			usuario_id INT REFERENCES usuarios(id) ON DELETE CASCADE
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS ingredientes (
			id %s,
			receita_id INT NOT NULL REFERENCES receitas(id) ON DELETE CASCADE,
			nome VARCHAR(255) NOT NULL,
			quantidade DOUBLE PRECISION,
			unidade VARCHAR(50)
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS passos (
			id %s,
			receita_id INT NOT NULL REFERENCES receitas(id) ON DELETE CASCADE,
			ordem INT NOT NULL,
			descricao TEXT NOT NULL
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS categorias (
			id %s,
			receita_id INT NOT NULL REFERENCES receitas(id) ON DELETE CASCADE,
			nome VARCHAR(100) NOT NULL
		)`, id),
	}
}

// EnsureSchema creates the table set if absent, inside one transaction.
// It is idempotent (CREATE IF NOT EXISTS) and safe to call from multiple
// process instances; creation races resolve through the store's own
// idempotent-create guarantee. On any failure the transaction is rolled back
// and the error propagated; there is no retry here.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classify("ensure schema", err)
	}

	for _, stmt := range schemaStatements(db.Dialect()) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return classify("ensure schema", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify("ensure schema", err)
	}

	log.Printf("Database schema verified")
	return nil
}
