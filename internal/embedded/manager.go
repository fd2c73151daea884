// Package embedded owns the lifecycle of the locally-hosted database engine
// used by the standalone deployment: start, schema creation, one-time seeding
// and shutdown.
package embedded

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/avsytem/receitas-backend/internal/database"
	"github.com/avsytem/receitas-backend/internal/seed"
	"github.com/avsytem/receitas-backend/internal/store"
)

// State of the embedded engine.
type State int

const (
	NotStarted State = iota
	Starting
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrNotRunning is returned when the engine handle is requested before a
// successful Start.
var ErrNotRunning = errors.New("embedded store is not running")

const dbFileName = "receitas.db"

// Manager guards the single embedded engine handle for the process. Start is
// mutex-protected so exactly one initialization sequence runs even when first
// access is concurrent; later callers either block until Running or observe
// the Running state and return immediately.
type Manager struct {
	mu      sync.Mutex
	state   State
	db      *database.DB
	dataDir string
}

// NewManager returns a manager in the NotStarted state. Nothing happens until
// Start is called; the caller owns the handle and is responsible for wiring
// Stop into process shutdown.
func NewManager() *Manager {
	return &Manager{state: NotStarted}
}

// Start launches the embedded engine bound to dataDir, creating the directory
// if absent, then ensures the schema and seeds the bundled dataset when the
// store is empty. It is a no-op when already Running. On any failure the
// state reverts to NotStarted; no half-running state is ever observable.
func (m *Manager) Start(ctx context.Context, dataDir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Running {
		return nil
	}

	m.state = Starting

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		m.state = NotStarted
		return fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	db, err := database.OpenSQLite(filepath.Join(dataDir, dbFileName))
	if err != nil {
		m.state = NotStarted
		return fmt.Errorf("failed to start embedded store: %w", err)
	}

	if err := store.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		m.state = NotStarted
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := seed.Populate(ctx, store.NewReceitaStore(db)); err != nil {
		_ = db.Close()
		m.state = NotStarted
		return fmt.Errorf("failed to seed embedded store: %w", err)
	}

	m.db = db
	m.dataDir = dataDir
	m.state = Running
	log.Printf("Embedded store running at %s", filepath.Join(dataDir, dbFileName))
	return nil
}

// DB returns the engine handle, or ErrNotRunning. The handle is read-only
// shared state once Running; callers must not close it themselves.
func (m *Manager) DB() (*database.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Running {
		return nil, ErrNotRunning
	}
	return m.db, nil
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Stop closes the engine handle and shuts the embedded engine down. Safe to
// call when never started or already stopped; callers register it to run on
// process termination so the engine is never orphaned.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Running {
		return nil
	}

	m.state = Stopping
	err := m.db.Close()
	m.db = nil
	m.state = Stopped

	if err != nil {
		return fmt.Errorf("failed to stop embedded store: %w", err)
	}
	log.Printf("Embedded store stopped")
	return nil
}
