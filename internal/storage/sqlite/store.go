package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/migration"
	"github.com/julianstephens/timetable/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
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

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'timetable init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
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

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "backend", "sqlite")
	})
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
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
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init/Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
