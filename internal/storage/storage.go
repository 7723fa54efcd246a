package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/timetable/internal/storage/postgres"
	"github.com/julianstephens/timetable/internal/storage/sqlite"
)

var (
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// IsPostgres reports whether target names a PostgreSQL database.
func IsPostgres(target string) bool {
	return strings.HasPrefix(target, "postgres://") ||
		strings.HasPrefix(target, "postgresql://") ||
		strings.Contains(target, "host=")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := postgres.ValidateConnString(connStr)
	return errors.Is(err, postgres.ErrEmbeddedCredentials)
}

// New picks a provider for target: a PostgreSQL URL or DSN, a .json file,
// or otherwise a SQLite database path. Passwords inside a connection string
// are refused unless trusted is set, which callers do only for values read
// from the OS keyring or the environment.
func New(target string, trusted bool) (Provider, error) {
	switch {
	case IsPostgres(target):
		if _, err := postgres.ValidateConnString(target); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) || !trusted {
				return nil, err
			}
		}
		return postgres.New(target), nil
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		return NewJSONStore(target), nil
	case strings.TrimSpace(target) == "":
		return nil, fmt.Errorf("storage location is empty")
	default:
		return sqlite.NewStore(target), nil
	}
}
