package sessions

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
)

type SessionListCmd struct {
	Workshop string `short:"w" help:"Only list sessions of this workshop (ID or name)."`
	ShowIDs  bool   `help:"Show session IDs." name:"show-ids"`
}

func (c *SessionListCmd) Run(ctx *cli.Context) error {
	var sessions []models.Session
	var err error
	if c.Workshop != "" {
		w, ferr := ctx.FindWorkshop(c.Workshop)
		if ferr != nil {
			return ferr
		}
		sessions, err = ctx.Store.GetSessionsForWorkshop(w.ID)
	} else {
		sessions, err = ctx.Store.GetAllSessions()
	}
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	names := map[string]string{}
	fmt.Println("Sessions:")
	for _, sess := range sessions {
		if _, ok := names[sess.WorkshopID]; !ok {
			if w, err := ctx.Store.GetWorkshop(sess.WorkshopID); err == nil {
				names[sess.WorkshopID] = w.Name
			}
		}
		segments, err := ctx.Store.GetSegmentsForSession(sess.ID)
		if err != nil {
			return fmt.Errorf("failed to get segments for %s: %w", sess.Name, err)
		}
		total := 0
		for _, seg := range segments {
			total += seg.PlannedDurationSec
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", sess.ID)
		}
		fmt.Printf("  [%s] %s%s - %d segment(s), %s\n",
			names[sess.WorkshopID], sess.Name, idStr, len(segments), cli.FormatDuration(total))
	}
	return nil
}
