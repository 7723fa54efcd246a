package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/timetable/internal/config"
	"github.com/julianstephens/timetable/internal/keyring"
	"github.com/julianstephens/timetable/internal/storage"
	"github.com/julianstephens/timetable/internal/storage/postgres"
)

type ConfigCmd struct {
	Show            ConfigShowCmd            `cmd:"" help:"Show current settings." default:"1"`
	Set             ConfigSetCmd             `cmd:"" help:"Update settings."`
	SetConnection   ConfigSetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	ClearConnection ConfigClearConnectionCmd `cmd:"" help:"Remove the stored PostgreSQL connection string."`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	s := ctx.Settings
	ctx.printf("Settings file: %s\n\n", ctx.SettingsPath)
	ctx.printf("  Storage:        %s\n", maskPassword(s.Storage))
	ctx.printf("  Strict overlap: %v\n", s.StrictOverlap)
	ctx.printf("  Listen:         %s\n", s.Listen)
	ctx.printf("  Timezone:       %s\n", s.Timezone)
	ctx.printf("  Break minutes:  %d\n", s.BreakMinutes)
	ctx.printf("  Debug:          %v\n", s.Debug)

	if connStr, source := keyring.ResolveConnectionString(); source != keyring.SourceNone {
		ctx.printf("\nPostgreSQL connection from %s: %s\n", source, maskPassword(connStr))
	}
	return nil
}

type ConfigSetCmd struct {
	StrictOverlap *bool   `help:"Reject blocks that overlap existing ones."`
	Storage       *string `help:"SQLite path, .json file or PostgreSQL URL without password."`
	Listen        *string `help:"HTTP listen address for serve."`
	Timezone      *string `help:"IANA timezone or 'Local'."`
	BreakMinutes  *int    `help:"Default break length in minutes."`
	Debug         *bool   `help:"Enable debug logging."`
}

func (c *ConfigSetCmd) Run(ctx *Context) error {
	s := *ctx.Settings
	updated := false
	if c.StrictOverlap != nil {
		s.StrictOverlap = *c.StrictOverlap
		updated = true
	}
	if c.Storage != nil {
		if storage.IsPostgres(*c.Storage) && storage.HasEmbeddedCredentials(*c.Storage) {
			return errors.New("settings must not hold a password, use 'timetable config set-connection' instead")
		}
		s.Storage = *c.Storage
		updated = true
	}
	if c.Listen != nil {
		s.Listen = *c.Listen
		updated = true
	}
	if c.Timezone != nil {
		s.Timezone = *c.Timezone
		updated = true
	}
	if c.BreakMinutes != nil {
		s.BreakMinutes = *c.BreakMinutes
		updated = true
	}
	if c.Debug != nil {
		s.Debug = *c.Debug
		updated = true
	}

	if !updated {
		ctx.println("No changes specified. Use 'timetable config show' to view settings or flags to update them.")
		return nil
	}

	if err := config.Validate(&s); err != nil {
		return err
	}
	if err := config.Save(ctx.SettingsPath, &s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	*ctx.Settings = s
	ctx.println("Settings updated successfully.")
	return nil
}

type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if !storage.IsPostgres(c.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(c.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so a password is acceptable here
		ctx.println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	ctx.println("✓ Connection string stored in the OS keyring")
	ctx.println("  It is used whenever --config is not given")
	return nil
}

type ConfigClearConnectionCmd struct{}

func (c *ConfigClearConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.println("✓ Connection string deleted from the OS keyring")
	return nil
}

// maskPassword hides the password of a PostgreSQL URL or DSN.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
