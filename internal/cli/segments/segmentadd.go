package segments

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/utils"
)

type SegmentAddCmd struct {
	Session  string `arg:"" help:"Session ID or name."`
	Title    string `arg:"" help:"Segment title."`
	Duration string `short:"d" help:"Planned length: minutes, or a duration such as 90s or 4m30s." required:""`
	Work     string `short:"w" help:"What the class does during the segment."`
}

func (c *SegmentAddCmd) Validate() error {
	_, err := cli.ParseDurationSec(c.Duration)
	return err
}

func (c *SegmentAddCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.FindSession(c.Session)
	if err != nil {
		return err
	}
	seconds, err := cli.ParseDurationSec(c.Duration)
	if err != nil {
		return err
	}

	seg := models.Segment{
		ID:                 cli.NewID(),
		SessionID:          sess.ID,
		Title:              c.Title,
		PlannedDurationSec: seconds,
		Work:               c.Work,
	}
	if err := seg.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddSegment(seg); err != nil {
		return fmt.Errorf("failed to add segment: %w", err)
	}

	fmt.Printf("Added segment: %s (%s) to %s (ID: %s)\n", seg.Title, utils.FormatClock(seconds), sess.Name, seg.ID)
	return nil
}
