package sessions

import (
	"fmt"
	"time"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
)

type SessionAddCmd struct {
	Workshop    string `arg:"" help:"Workshop ID or name the session belongs to."`
	Name        string `arg:"" help:"Session name."`
	Description string `short:"d" help:"Optional description."`
}

func (c *SessionAddCmd) Run(ctx *cli.Context) error {
	w, err := ctx.FindWorkshop(c.Workshop)
	if err != nil {
		return err
	}

	sess := models.Session{
		ID:          cli.NewID(),
		WorkshopID:  w.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   time.Now(),
	}
	if err := sess.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddSession(sess); err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}

	fmt.Printf("Added session: %s to %s (ID: %s)\n", sess.Name, w.Name, sess.ID)
	fmt.Printf("  Add segments with: classtimer segment add %s <title> -d <minutes>\n", sess.ID)
	return nil
}
