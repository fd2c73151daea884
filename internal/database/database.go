package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/avsytem/receitas-backend/config"
)

// Dialect identifies the SQL flavor behind a connection. The store layer uses
// it to adjust DDL and placeholder syntax; everything else is shared.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DB wraps a pooled *sql.DB together with its dialect. Callers acquire
// connections implicitly per operation through the pool; nothing holds a
// connection across calls.
type DB struct {
	*sql.DB
	dialect Dialect
}

// New opens a pooled PostgreSQL connection from the configuration.
func New(cfg *config.Config) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	log.Printf("Connecting to database at %s:%s as user %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Printf("Successfully connected to database")
	return &DB{DB: db, dialect: DialectPostgres}, nil
}

// OpenSQLite opens the embedded SQLite store at path. Foreign keys must be
// enabled per connection or the cascade deletes declared by the schema are
// silently ignored.
func OpenSQLite(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded database: %w", err)
	}

	// The embedded engine allows a single writer at a time; funneling every
	// operation through one pooled connection avoids SQLITE_BUSY storms.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to the embedded database: %w", err)
	}

	return &DB{DB: db, dialect: DialectSQLite}, nil
}

// Dialect returns the SQL flavor of this connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Rebind converts '?' placeholders to the dialect's positional form. Queries
// are written with '?' and rebound to $1, $2, ... for PostgreSQL.
func (db *DB) Rebind(query string) string {
	if db.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}
