package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live server holds the lock.
var ErrLocked = errors.New("another timetable server is already running")

// Lock is a pid file in the config directory. While it is held no other
// server will open the same database.
type Lock struct {
	path string
}

// LockPath returns the lock file location for a config directory.
func LockPath(configDir string) string {
	return filepath.Join(configDir, constants.ServerLockfileName)
}

// AcquireLock takes the server lock in configDir. A lock left behind by a
// process that no longer exists, or that is not a timetable process, is
// treated as stale and replaced.
func AcquireLock(configDir string) (*Lock, error) {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := LockPath(configDir)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", getpidFunc())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Server lock acquired", "path", path)
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		pid, live := holder(path)
		if live {
			return nil, fmt.Errorf("%w (pid %d, lock %s)", ErrLocked, pid, path)
		}
		logger.Warn("Removing stale server lock", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}
	}
	return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
}

// holder reads the pid in the lock file and reports whether that process is
// a running timetable server other than this one.
func holder(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	if pid == getpidFunc() {
		return pid, false
	}

	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return pid, false
	}
	return pid, isTimetable(proc.Executable())
}

func isTimetable(executable string) bool {
	name := strings.TrimSuffix(filepath.Base(executable), ".exe")
	return strings.HasPrefix(name, constants.AppName)
}

// Release removes the lock file.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	logger.Debug("Server lock released", "path", l.path)
	return nil
}
