package windows

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
)

type WindowAddCmd struct {
	Label   string `arg:"" help:"Window label, e.g. P1 or 'Tuesday lab'."`
	Start   string `short:"s" help:"Start time (HH:MM or HH:MM:SS)." required:""`
	End     string `short:"e" help:"End time (HH:MM or HH:MM:SS)." required:""`
	Context string `short:"c" help:"Timetable the window belongs to, e.g. lycee." required:""`
}

func (c *WindowAddCmd) Validate() error {
	return c.window().Validate()
}

func (c *WindowAddCmd) window() models.ScheduleWindow {
	return models.ScheduleWindow{
		Context: c.Context,
		Label:   c.Label,
		Start:   c.Start,
		End:     c.End,
	}
}

func (c *WindowAddCmd) Run(ctx *cli.Context) error {
	w := c.window()
	w.ID = cli.NewID()
	if err := w.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddScheduleWindow(w); err != nil {
		return fmt.Errorf("failed to add window: %w", err)
	}

	fmt.Printf("Added window: %s %s-%s in %q (ID: %s)\n", w.Label, w.Start, w.End, w.Context, w.ID)
	return nil
}
