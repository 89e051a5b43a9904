package windows

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
)

type WindowListCmd struct {
	Context string `short:"c" help:"Only list windows of this context."`
	ShowIDs bool   `help:"Show window IDs." name:"show-ids"`
}

func (c *WindowListCmd) Run(ctx *cli.Context) error {
	var windows []models.ScheduleWindow
	var err error
	if c.Context != "" {
		windows, err = ctx.Store.GetScheduleWindows(c.Context)
	} else {
		windows, err = ctx.Store.GetAllScheduleWindows()
	}
	if err != nil {
		return fmt.Errorf("failed to get windows: %w", err)
	}
	if len(windows) == 0 {
		fmt.Println("No schedule windows found")
		return nil
	}

	current := ""
	for i, w := range windows {
		if i == 0 || w.Context != current {
			current = w.Context
			fmt.Printf("%s:\n", current)
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", w.ID)
		}
		fmt.Printf("  %s - %s  %s%s\n", w.Start, w.End, w.Label, idStr)
	}
	return nil
}
