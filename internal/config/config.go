package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/models"
	storagepkg "github.com/julianstephens/timetable/internal/storage"
	"github.com/julianstephens/timetable/internal/utils"
)

// DefaultSettings returns the settings written on first run.
func DefaultSettings() *models.Settings {
	return &models.Settings{
		StrictOverlap: false,
		Storage:       constants.DefaultConfigPath,
		Listen:        constants.DefaultListenAddr,
		Timezone:      "Local",
		BreakMinutes:  constants.DefaultBreakMinutes,
		Debug:         false,
	}
}

// Normalize fills missing values with defaults so that partially filled
// files still behave.
func Normalize(s *models.Settings) {
	if s.Storage == "" {
		s.Storage = constants.DefaultConfigPath
	}
	if s.Listen == "" {
		s.Listen = constants.DefaultListenAddr
	}
	if s.Timezone == "" {
		s.Timezone = "Local"
	}
	if s.BreakMinutes <= 0 {
		s.BreakMinutes = constants.DefaultBreakMinutes
	}
}

// Validate rejects settings that would fail later at a less helpful point.
func Validate(s *models.Settings) error {
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone %q", s.Timezone)
	}
	if s.BreakMinutes >= constants.MinutesPerDay {
		return fmt.Errorf("break_minutes must be less than %d", constants.MinutesPerDay)
	}
	return nil
}

// Load reads settings from a YAML file. A missing file is created with the
// defaults (0600) and the defaults are returned.
func Load(path string) (*models.Settings, error) {
	if path == "" {
		return nil, errors.New("settings path is empty")
	}
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s := DefaultSettings()
			// The defaults are still usable when the file cannot be written.
			return s, Save(path, s)
		}
		return nil, err
	}

	var s models.Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	Normalize(&s)
	if err := Validate(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Save writes settings atomically via a temp file and rename, leaving the
// final file at 0600 inside a 0700 directory.
func Save(path string, s *models.Settings) error {
	if path == "" {
		return errors.New("settings path is empty")
	}
	if s == nil {
		return errors.New("settings are nil")
	}
	path = ExpandPath(path)
	Normalize(s)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+constants.AppName+"-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// ConfigDir returns the directory holding a storage path. PostgreSQL URLs
// have no directory of their own, so the default settings directory is used.
func ConfigDir(storage string) string {
	if storagepkg.IsPostgres(storage) {
		return filepath.Dir(ExpandPath(constants.DefaultSettingsPath))
	}
	return filepath.Dir(ExpandPath(storage))
}
