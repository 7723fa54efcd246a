package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/tui/components/week"
)

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	ctx.printf("%s", week.Render(session.Timetable().Week()))
	return nil
}

type DayCmd struct {
	Day string `arg:"" help:"Weekday to show (monday-friday, mon-fri or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	var day models.Day
	if strings.EqualFold(c.Day, "today") {
		today := session.Today()
		d, ok := models.DayFromWeekday(today.Weekday())
		if !ok {
			return fmt.Errorf("the timetable has no entries on %s", today.Weekday())
		}
		day = d
	} else {
		day, err = models.ParseDay(c.Day)
		if err != nil {
			return err
		}
	}

	ctx.printf("%s", week.RenderDay(day, session.Timetable().Day(day)))
	return nil
}

type StatsCmd struct {
	JSON bool `help:"Print the metrics as JSON."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	metrics := session.Metrics()
	if c.JSON {
		return ctx.printJSON(metrics)
	}

	ctx.printf("Activities:        %d\n", metrics.Activities)
	ctx.printf("Compulsory events: %d\n", metrics.CompulsoryEvents)
	ctx.printf("Days scheduled:    %d\n", metrics.DaysScheduled)
	ctx.printf("Blocks:            %d\n", metrics.Blocks)
	return nil
}
