package cli

import "github.com/julianstephens/timetable/internal/models"

type EventCmd struct {
	Add  EventAddCmd  `cmd:"" help:"Add a compulsory event to the timetable."`
	List EventListCmd `cmd:"" help:"List recorded compulsory events."`
}

type EventAddCmd struct {
	Name  string `arg:"" help:"Event name."`
	Day   string `short:"d" help:"Weekday (monday-friday or mon-fri)." required:""`
	Start string `short:"s" help:"Start time (HH:MM)." required:""`
	End   string `short:"e" help:"End time (HH:MM)." required:""`
}

func (c *EventAddCmd) Run(ctx *Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}

	session, err := ctx.Session()
	if err != nil {
		return err
	}
	req, err := session.AddCompulsoryEvent(c.Name, day, c.Start, c.End)
	if err != nil {
		return err
	}

	ctx.printf("Added compulsory event: %s on %s %s-%s (ID: %s)\n",
		req.Event, req.Day, req.StartTime, req.EndTime, req.ID)
	return nil
}

type EventListCmd struct{}

func (c *EventListCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	events := session.Requests().CompulsoryEvents()
	if len(events) == 0 {
		ctx.println("No compulsory events recorded")
		return nil
	}

	ctx.println("Compulsory events:")
	for _, e := range events {
		ctx.printf("  %-30s %-9s %s-%s\n", e.Event, e.Day, e.StartTime, e.EndTime)
	}
	return nil
}
