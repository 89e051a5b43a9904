package sessions

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/utils"
)

type SessionShowCmd struct {
	Session string `arg:"" help:"Session ID or name."`
}

func (c *SessionShowCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.FindSession(c.Session)
	if err != nil {
		return err
	}
	segments, err := ctx.Store.GetSegmentsForSession(sess.ID)
	if err != nil {
		return fmt.Errorf("failed to get segments: %w", err)
	}

	fmt.Printf("Session: %s (ID: %s)\n", sess.Name, sess.ID)
	if sess.Description != "" {
		fmt.Printf("  %s\n", sess.Description)
	}
	if len(segments) == 0 {
		fmt.Println("  No segments yet")
		return nil
	}

	total := 0
	for i, seg := range segments {
		total += seg.PlannedDurationSec
		fmt.Printf("  %2d. %-30s %6s  (ID: %s)\n", i+1, seg.Title, utils.FormatClock(seg.PlannedDurationSec), seg.ID)
		if seg.Work != "" {
			fmt.Printf("      %s\n", seg.Work)
		}
	}
	fmt.Printf("  Total: %s\n", utils.FormatClock(total))
	return nil
}
