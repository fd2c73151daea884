package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
)

// Error kinds surfaced by the store. Callers match them with errors.Is to map
// persistence failures onto user-facing responses without importing driver
// packages.
var (
	// ErrNotFound indicates the requested id has no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a uniqueness violation (e.g. username taken).
	ErrDuplicate = errors.New("duplicate value")

	// ErrConstraint indicates any other integrity violation.
	ErrConstraint = errors.New("constraint violation")

	// ErrUnavailable indicates a connectivity or contention failure that is
	// safe to retry at a higher layer.
	ErrUnavailable = errors.New("database unavailable")
)

// SQLite primary result codes; extended constraint codes keep the base code
// in the low byte.
const (
	sqliteBusy             = 5
	sqliteLocked           = 6
	sqliteConstraint       = 19
	sqliteConstraintPK     = 1555
	sqliteConstraintUnique = 2067
)

// classify maps a driver-level failure onto one of the store's error kinds.
// Unrecognized errors pass through wrapped with the operation name only.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "23505":
			return fmt.Errorf("%s: %s: %w", op, pqErr.Message, ErrDuplicate)
		case pqErr.Code.Class() == "23":
			return fmt.Errorf("%s: %s: %w", op, pqErr.Message, ErrConstraint)
		case pqErr.Code.Class() == "08" || pqErr.Code.Class() == "53" || pqErr.Code.Class() == "57":
			return fmt.Errorf("%s: %s: %w", op, pqErr.Message, ErrUnavailable)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		switch {
		case code == sqliteConstraintUnique || code == sqliteConstraintPK:
			return fmt.Errorf("%s: %v: %w", op, err, ErrDuplicate)
		case code&0xff == sqliteConstraint:
			return fmt.Errorf("%s: %v: %w", op, err, ErrConstraint)
		case code == sqliteBusy || code == sqliteLocked:
			return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
	}

	return fmt.Errorf("%s: %w", op, err)
}
