package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/timetable/internal/backup"
	"github.com/julianstephens/timetable/internal/constants"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	store, err := ctx.sqliteStore()
	if err != nil {
		return err
	}
	mgr := backup.NewManager(store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	store, err := ctx.sqliteStore()
	if err != nil {
		return err
	}
	mgr := backup.NewManager(store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.println("No backups found.")
		ctx.printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		ctx.printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	ctx.printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

// resolve finds the backup as given, then inside the backup directory.
func (c *BackupRestoreCmd) resolve(mgr *backup.Manager) (string, error) {
	if filepath.IsAbs(c.BackupFile) {
		if _, err := os.Stat(c.BackupFile); err != nil {
			return "", fmt.Errorf("backup file not found: %s", c.BackupFile)
		}
		return c.BackupFile, nil
	}
	if _, err := os.Stat(c.BackupFile); err == nil {
		return filepath.Abs(c.BackupFile)
	}
	candidate := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	store, err := ctx.sqliteStore()
	if err != nil {
		return err
	}
	mgr := backup.NewManager(store.GetConfigPath())

	backupPath, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.println("⚠️  WARNING: This will replace your current database with the backup.")
		ctx.println("⚠️  IMPORTANT: Stop any running 'timetable serve' or TUI before restoring.")
		ctx.println("A backup of your current database will be created before restoring.")
		ctx.printf("\nRestore from: %s\n", backupPath)
		ctx.printf("Continue? [y/N]: ")

		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			ctx.println("Restore cancelled.")
			return nil
		}
	}

	if err := store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	safetyCopy, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.printf("✓ Restored from %s\n", filepath.Base(backupPath))
	if safetyCopy != "" {
		ctx.printf("  Previous database saved as %s\n", filepath.Base(safetyCopy))
	}
	return nil
}
