package cli

import "github.com/julianstephens/timetable/internal/tui"

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	return tui.Run(session)
}
