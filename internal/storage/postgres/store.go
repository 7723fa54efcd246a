package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/migration"
	"github.com/julianstephens/timetable/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath pins every session to the application's own schema.
func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else if !hasSearchPathParam(s.connStr) {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// hasSearchPathParam reports whether a DSN-style connection string sets
// search_path (case-insensitive).
func hasSearchPathParam(connStr string) bool {
	return hasDSNKey(connStr, "search_path")
}

// hasSSLMode reports whether a URL or DSN connection string sets sslmode.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasDSNKey(connStr, "sslmode")
}

func hasDSNKey(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that connStr is a PostgreSQL URI or DSN
// without an embedded password.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else if hasDSNKey(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}

	return true, nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return nil, fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunnerWithDialect(s.db, subFS, migration.Postgres), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "backend", "postgres")
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *Store) GetConfigPath() string {
	// Never expose the connection string
	return "postgresql"
}

// SchemaVersion returns the applied and the latest known schema versions.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, fmt.Errorf("database not open")
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	return schemaVersion(runner)
}

func schemaVersion(runner *migration.Runner) (int, int, error) {
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}
