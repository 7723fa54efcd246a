package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/server"
)

type ServeCmd struct {
	Listen string `help:"Address to listen on. Defaults to the 'listen' setting."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	lock, err := server.AcquireLock(ctx.ConfigDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release server lock", "error", err)
		}
	}()

	ctx.PerformAutomaticBackup()

	session, err := ctx.Session()
	if err != nil {
		return err
	}

	addr := c.Listen
	if addr == "" {
		addr = ctx.Settings.Listen
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.printf("Serving timetable on http://%s (Ctrl+C to stop)\n", addr)
	return server.New(session).Run(runCtx, addr)
}
