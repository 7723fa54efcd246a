package cli

import (
	"os"

	"github.com/julianstephens/timetable/internal/storage"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	path := ctx.Store.GetConfigPath()
	// Re-running init migrates an existing database; keep a copy first.
	if !storage.IsPostgres(path) {
		if _, err := os.Stat(path); err == nil {
			ctx.PerformAutomaticBackup()
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized timetable storage at: %s\n", path)
	ctx.printf("Settings: %s\n", ctx.SettingsPath)
	return nil
}
