package segments

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
)

type SegmentDeleteCmd struct {
	ID string `arg:"" help:"Segment ID to delete."`
}

func (c *SegmentDeleteCmd) Run(ctx *cli.Context) error {
	seg, err := ctx.Store.GetSegment(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find segment with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeleteSegment(c.ID); err != nil {
		return fmt.Errorf("failed to delete segment: %w", err)
	}

	fmt.Printf("Deleted segment: %s (ID: %s)\n", seg.Title, c.ID)
	return nil
}
