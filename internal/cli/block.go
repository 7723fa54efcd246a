package cli

import "github.com/julianstephens/timetable/internal/models"

type BlockCmd struct {
	Add BlockAddCmd `cmd:"" help:"Place a block directly on the timetable."`
}

type BlockAddCmd struct {
	Name  string `arg:"" help:"Block name."`
	Day   string `short:"d" help:"Weekday (monday-friday or mon-fri)." required:""`
	Start string `short:"s" help:"Start time (HH:MM)." required:""`
	End   string `short:"e" help:"End time (HH:MM). Breaks default to the configured break length."`
	Type  string `short:"t" help:"Block type." enum:"activity,compulsory,break" default:"break"`
}

func (c *BlockAddCmd) Run(ctx *Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	blockType, err := models.ParseBlockType(c.Type)
	if err != nil {
		return err
	}

	session, err := ctx.Session()
	if err != nil {
		return err
	}

	if blockType == models.BlockBreak && c.End == "" {
		err = session.AddBreak(day, c.Start, c.Name)
	} else {
		err = session.AddEvent(day, c.Start, c.End, c.Name, blockType)
	}
	if err != nil {
		return err
	}

	ctx.printf("Added %s block %q on %s\n", blockType, c.Name, day)
	return nil
}
