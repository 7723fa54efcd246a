package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/timetable/internal/models"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" help:"Show storage location."`
	DumpBlocks   DebugDumpBlocksCmd   `cmd:"" help:"Dump stored blocks as JSON, in insertion order."`
	DumpRequests DebugDumpRequestsCmd `cmd:"" help:"Dump activity and compulsory event requests as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func (ctx *Context) printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{
		"path": maskPassword(ctx.Store.GetConfigPath()),
	})
}

type DebugDumpBlocksCmd struct {
	Day string `help:"Only dump blocks of this weekday."`
}

func (cmd *DebugDumpBlocksCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	blocks, err := ctx.Store.GetAllBlocks()
	if err != nil {
		return fmt.Errorf("failed to get blocks: %w", err)
	}

	if cmd.Day != "" {
		day, err := models.ParseDay(cmd.Day)
		if err != nil {
			return err
		}
		filtered := make([]models.ScheduledBlock, 0, len(blocks))
		for _, b := range blocks {
			if b.Day == day {
				filtered = append(filtered, b)
			}
		}
		blocks = filtered
	}
	if blocks == nil {
		blocks = []models.ScheduledBlock{}
	}
	return ctx.printJSON(blocks)
}

type DebugDumpRequestsCmd struct{}

func (cmd *DebugDumpRequestsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	events, err := ctx.Store.GetAllCompulsoryEvents()
	if err != nil {
		return fmt.Errorf("failed to get compulsory events: %w", err)
	}
	if activities == nil {
		activities = []models.ActivityRequest{}
	}
	if events == nil {
		events = []models.CompulsoryEventRequest{}
	}

	return ctx.printJSON(struct {
		Activities       []models.ActivityRequest        `json:"activities"`
		CompulsoryEvents []models.CompulsoryEventRequest `json:"compulsory_events"`
	}{activities, events})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *Context) error {
	s := *ctx.Settings
	s.Storage = maskPassword(s.Storage)
	return ctx.printJSON(s)
}
