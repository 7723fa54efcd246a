package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/logger"
)

const (
	minuteFormat = "20060102-1504"
	secondFormat = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backups of a SQLite timetable database
type Manager struct {
	dbPath    string
	backupDir string
	now       func() time.Time
}

// NewManager creates a backup manager that keeps backups next to dbPath
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the database and prunes backups beyond constants.MaxBackups
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation for the safety copy taken during a restore
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	backupPath, err := m.uniqueBackupPath()
	if err != nil {
		return "", err
	}

	if err := m.backupDatabase(backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Info("Backup created", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// A stale extra backup is not worth failing over
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// uniqueBackupPath names a backup by minute, falling back to seconds and
// then a counter when backups are taken in quick succession.
func (m *Manager) uniqueBackupPath() (string, error) {
	now := m.now()
	candidates := []string{now.Format(minuteFormat), now.Format(secondFormat)}
	for i := 1; i <= 100; i++ {
		candidates = append(candidates, fmt.Sprintf("%s-%d", now.Format(secondFormat), i))
	}

	for _, stamp := range candidates {
		path := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// backupDatabase copies the database with VACUUM INTO, falling back to a
// plain file copy on engines without it.
func (m *Manager) backupDatabase(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		srcDB.Close()
		return copyFile(m.dbPath, destPath)
	}

	return nil
}

// parseBackupName extracts the timestamp from a backup file name.
func parseBackupName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// Drop a trailing "-N" counter; time parts are always 4 or 6 digits
	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{minuteFormat, secondFormat} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ListBackups returns all backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	// Name order breaks timestamp ties so counters stay in sequence
	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// RestoreBackup replaces the database with backupPath. The current database,
// if any, is first saved as a backup whose path is returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := verifyBackup(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safetyCopy string
	if _, err := os.Stat(m.dbPath); err == nil {
		safetyCopy, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return safetyCopy, fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return safetyCopy, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Backup restored", "from", backupPath, "safety_copy", safetyCopy)
	return safetyCopy, nil
}

// verifyBackup checks that path is a SQLite database holding a timetable
func verifyBackup(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='blocks'").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s is not a timetable database", filepath.Base(path))
	}
	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
