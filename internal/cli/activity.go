package cli

import (
	"fmt"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/utils"
)

type ActivityCmd struct {
	Add  ActivityAddCmd  `cmd:"" help:"Record an activity that needs time."`
	List ActivityListCmd `cmd:"" help:"List recorded activities."`
}

type ActivityAddCmd struct {
	Name     string `arg:"" help:"Activity name."`
	Priority int    `short:"p" help:"Priority (1-5)." default:"3"`
	Deadline string `short:"d" help:"Deadline date (YYYY-MM-DD)." required:""`
	Hours    int    `short:"H" help:"Hours required (1-24)." default:"1"`
}

func (c *ActivityAddCmd) Validate() error {
	if c.Priority < constants.MinPriority || c.Priority > constants.MaxPriority {
		return fmt.Errorf("priority must be between %d and %d", constants.MinPriority, constants.MaxPriority)
	}
	if c.Hours < constants.MinHours || c.Hours > constants.MaxHours {
		return fmt.Errorf("hours must be between %d and %d", constants.MinHours, constants.MaxHours)
	}
	return nil
}

func (c *ActivityAddCmd) Run(ctx *Context) error {
	deadline, err := utils.ParseDate(c.Deadline)
	if err != nil {
		return fmt.Errorf("invalid deadline %q, use YYYY-MM-DD", c.Deadline)
	}

	session, err := ctx.Session()
	if err != nil {
		return err
	}
	req, err := session.AddActivity(c.Name, c.Priority, deadline, c.Hours)
	if err != nil {
		return err
	}

	ctx.printf("Recorded activity: %s (ID: %s)\n", req.Activity, req.ID)
	ctx.printf("  priority %d, %dh, due %s (%d day(s))\n", req.Priority, req.Timing, req.DeadlineDate, req.Deadline)
	return nil
}

type ActivityListCmd struct{}

func (c *ActivityListCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	activities := session.Requests().Activities()
	if len(activities) == 0 {
		ctx.println("No activities recorded")
		return nil
	}

	ctx.println("Activities:")
	for _, a := range activities {
		ctx.printf("  %-30s priority %d  %2dh  due %s (%d day(s) at submission)\n",
			a.Activity, a.Priority, a.Timing, a.DeadlineDate, a.Deadline)
	}
	return nil
}
