package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/timetable/internal/backup"
	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/planner"
	"github.com/julianstephens/timetable/internal/storage"
	"github.com/julianstephens/timetable/internal/storage/sqlite"
)

// Context is handed to every command's Run method.
type Context struct {
	Store        storage.Provider
	Settings     *models.Settings
	SettingsPath string
	// ConfigDir holds logs and the server lock for this store.
	ConfigDir string
	Location  *time.Location
	// Strict forces overlap rejection without touching the saved settings.
	Strict bool
	// Out receives command output. Defaults to stdout.
	Out io.Writer
	// Now replaces the wall clock, mainly in tests.
	Now func() time.Time

	session *planner.Session
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Session loads the store and restores the session on first use.
func (c *Context) Session() (*planner.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}

	opts := planner.Options{
		StrictOverlap: c.Settings.StrictOverlap || c.Strict,
		Location:      c.Location,
		Now:           c.Now,
		BreakMinutes:  c.Settings.BreakMinutes,
	}
	session, err := planner.Open(c.Store, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to restore timetable: %w", err)
	}
	c.session = session
	return session, nil
}

// Close releases the store.
func (c *Context) Close() error {
	return c.Store.Close()
}

// sqliteStore returns the store when it is a SQLite database, which is the
// only backend with file backups.
func (c *Context) sqliteStore() (*sqlite.Store, error) {
	s, ok := c.Store.(*sqlite.Store)
	if !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return s, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.sqliteStore(); err != nil {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
