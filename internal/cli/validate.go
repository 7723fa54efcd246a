package cli

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	ctx.println("Validating timetable and requests...")
	result := session.Validate()

	ctx.println()
	ctx.println(result.FormatReport())
	// Conflicts are reported, not treated as a failure
	return nil
}
