package windows

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
)

type WindowDeleteCmd struct {
	ID string `arg:"" help:"Window ID to delete."`
}

func (c *WindowDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteScheduleWindow(c.ID); err != nil {
		return fmt.Errorf("failed to delete window %s: %w", c.ID, err)
	}

	fmt.Printf("Deleted window: %s\n", c.ID)
	return nil
}
