package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/timetable/internal/backup"
	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/keyring"
	"github.com/julianstephens/timetable/internal/storage"
	"github.com/julianstephens/timetable/internal/storage/postgres"
	"github.com/julianstephens/timetable/internal/validation"
)

type DoctorCmd struct{}

// versioned is implemented by the SQL stores.
type versioned interface {
	SchemaVersion() (current, latest int, err error)
}

type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
	checkSkip
)

func (ctx *Context) report(name string, status checkStatus, detail error) {
	switch status {
	case checkOK:
		ctx.printf("✓ %s: OK\n", name)
	case checkWarn:
		ctx.printf("⚠ %s: WARNING\n", name)
		ctx.printf("   %v\n", detail)
	case checkFail:
		ctx.printf("❌ %s: FAIL\n", name)
		ctx.printf("   Error: %v\n", detail)
	case checkSkip:
		ctx.printf("⊘ %s: SKIPPED (%v)\n", name, detail)
	}
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	fail := func(name string, err error) {
		ctx.report(name, checkFail, err)
		hasError = true
	}
	skipped := fmt.Errorf("storage not reachable")

	// Check 1: storage reachable
	dbReachable := false
	if err := ctx.Store.Load(); err != nil {
		fail("Storage reachable", fmt.Errorf("failed to load storage: %w", err))
	} else {
		ctx.report("Storage reachable", checkOK, nil)
		dbReachable = true
	}

	// Check 2: schema version
	if !dbReachable {
		ctx.report("Schema version", checkSkip, skipped)
	} else if err := checkSchemaVersion(ctx.Store); err != nil {
		fail("Schema version", err)
	} else {
		ctx.report("Schema version", checkOK, nil)
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.report("Backups present", checkWarn, err)
	} else {
		ctx.report("Backups present", checkOK, nil)
	}

	// Check 4: stored data is consistent
	if !dbReachable {
		ctx.report("Data validation", checkSkip, skipped)
	} else {
		status, err := checkValidation(ctx)
		if status == checkFail {
			fail("Data validation", err)
		} else {
			ctx.report("Data validation", status, err)
		}
	}

	// Check 5: clock and timezone
	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		ctx.report("Clock/timezone", checkOK, nil)
	}

	// Check 6: keyring, which only matters for PostgreSQL
	if _, ok := ctx.Store.(*postgres.Store); ok {
		if !keyring.IsAvailable() {
			ctx.report("OS keyring", checkWarn, fmt.Errorf("keyring unavailable, set %s instead", constants.EnvDBConnection))
		} else {
			ctx.report("OS keyring", checkOK, nil)
		}
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(store storage.Provider) error {
	v, ok := store.(versioned)
	if !ok {
		// JSON store has no schema
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	if _, err := ctx.sqliteStore(); err != nil {
		return err
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'timetable backup create'")
	}
	return nil
}

// checkValidation fails on corrupt records. Overlaps and repeated activity
// names are legal in lenient mode and only warn.
func checkValidation(ctx *Context) (checkStatus, error) {
	session, err := ctx.Session()
	if err != nil {
		return checkFail, err
	}
	result := session.Validate()
	if !result.HasConflicts() {
		return checkOK, nil
	}

	soft := result.Count(validation.ConflictOverlappingBlocks) + result.Count(validation.ConflictDuplicateActivity)
	if hard := len(result.Conflicts) - soft; hard > 0 {
		return checkFail, fmt.Errorf("%d invalid record(s), run 'timetable validate' for details", hard)
	}
	return checkWarn, fmt.Errorf("%d overlap or duplicate warning(s), run 'timetable validate' for details", soft)
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if ctx.Now != nil {
		now = ctx.Now()
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == nil {
		return fmt.Errorf("no timezone loaded")
	}
	return nil
}
