package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/timetable/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source names where a connection string came from.
type Source string

const (
	SourceNone    Source = ""
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// GetConnectionString retrieves the database connection string from the OS keyring.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// ResolveConnectionString looks for a stored PostgreSQL connection string,
// first in the environment and then in the OS keyring. An unavailable
// keyring counts as empty.
func ResolveConnectionString() (string, Source) {
	if v := os.Getenv(constants.EnvDBConnection); v != "" {
		return v, SourceEnv
	}
	if v, err := GetConnectionString(); err == nil && v != "" {
		return v, SourceKeyring
	}
	return "", SourceNone
}

// IsAvailable is a best-effort check that the OS keyring answers.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
