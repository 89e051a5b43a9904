package segments

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/utils"
)

type SegmentListCmd struct {
	Session string `arg:"" help:"Session ID or name."`
	ShowIDs bool   `help:"Show segment IDs." name:"show-ids"`
}

func (c *SegmentListCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.FindSession(c.Session)
	if err != nil {
		return err
	}
	segments, err := ctx.Store.GetSegmentsForSession(sess.ID)
	if err != nil {
		return fmt.Errorf("failed to get segments: %w", err)
	}
	if len(segments) == 0 {
		fmt.Printf("No segments in %s\n", sess.Name)
		return nil
	}

	fmt.Printf("Segments of %s:\n", sess.Name)
	for i, seg := range segments {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", seg.ID)
		}
		fmt.Printf("  %2d. %s%s - %s\n", i+1, seg.Title, idStr, utils.FormatClock(seg.PlannedDurationSec))
		if seg.Work != "" {
			fmt.Printf("      %s\n", utils.Truncate(seg.Work, constants.TimelineWorkPreviewLen))
		}
	}
	return nil
}
