package cli

import "github.com/julianstephens/timetable/internal/models"

type SlotCmd struct {
	Check SlotCheckCmd `cmd:"" help:"Check whether a time range is free."`
}

type SlotCheckCmd struct {
	Day   string `short:"d" help:"Weekday (monday-friday or mon-fri)." required:""`
	Start string `short:"s" help:"Start time (HH:MM)." required:""`
	End   string `short:"e" help:"End time (HH:MM)." required:""`
}

func (c *SlotCheckCmd) Run(ctx *Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	free, err := session.IsSlotFree(day, c.Start, c.End)
	if err != nil {
		return err
	}
	if free {
		ctx.printf("✓ %s %s-%s is free\n", day, c.Start, c.End)
	} else {
		ctx.printf("✗ %s %s-%s overlaps an existing block\n", day, c.Start, c.End)
	}
	return nil
}
