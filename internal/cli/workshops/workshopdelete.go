package workshops

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
)

type WorkshopDeleteCmd struct {
	Workshop string `arg:"" help:"Workshop ID or name."`
}

func (c *WorkshopDeleteCmd) Run(ctx *cli.Context) error {
	w, err := ctx.FindWorkshop(c.Workshop)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteWorkshop(w.ID); err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}

	fmt.Printf("Deleted workshop: %s (ID: %s) with its sessions\n", w.Name, w.ID)
	return nil
}
