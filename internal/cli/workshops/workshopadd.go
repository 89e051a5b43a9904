package workshops

import (
	"fmt"
	"time"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
)

type WorkshopAddCmd struct {
	Name        string `arg:"" help:"Workshop name, e.g. a course or a class."`
	Description string `short:"d" help:"Optional description."`
}

func (c *WorkshopAddCmd) Run(ctx *cli.Context) error {
	w := models.Workshop{
		ID:          cli.NewID(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   time.Now(),
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddWorkshop(w); err != nil {
		return fmt.Errorf("failed to add workshop: %w", err)
	}

	fmt.Printf("Added workshop: %s (ID: %s)\n", w.Name, w.ID)
	return nil
}
