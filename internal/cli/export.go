package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/timetable/internal/export"
	"github.com/julianstephens/timetable/internal/utils"
)

type ExportCmd struct {
	ICS ExportICSCmd `cmd:"" name:"ics" help:"Export the week as an iCalendar file with weekly events."`
}

type ExportICSCmd struct {
	File   string `arg:"" help:"Output file ('-' for stdout)." type:"path"`
	WeekOf string `help:"Any date in the first week (YYYY-MM-DD). Defaults to this week."`
	Weeks  int    `help:"Number of weeks the events repeat; 0 repeats forever." default:"0"`
}

func (c *ExportICSCmd) Validate() error {
	if c.Weeks < 0 {
		return fmt.Errorf("weeks cannot be negative")
	}
	return nil
}

func (c *ExportICSCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	opts := export.Options{
		Location: session.Location(),
		Weeks:    c.Weeks,
		Now:      ctx.Now,
		WeekOf:   session.Today(),
	}
	if c.WeekOf != "" {
		if opts.WeekOf, err = utils.ParseDate(c.WeekOf); err != nil {
			return fmt.Errorf("invalid --week-of %q, use YYYY-MM-DD", c.WeekOf)
		}
	}

	week := session.Timetable().Week()
	if c.File == "-" {
		return export.Write(ctx.out(), week, opts)
	}

	if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(c.File)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.File, err)
	}
	if err := export.Write(f, week, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	ctx.printf("✓ Exported %d block(s) to %s\n", session.Timetable().Len(), c.File)
	return nil
}
