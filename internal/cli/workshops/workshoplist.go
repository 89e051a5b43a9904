package workshops

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
)

type WorkshopListCmd struct {
	ShowIDs bool `help:"Show workshop IDs." name:"show-ids"`
}

func (c *WorkshopListCmd) Run(ctx *cli.Context) error {
	workshops, err := ctx.Store.GetAllWorkshops()
	if err != nil {
		return fmt.Errorf("failed to get workshops: %w", err)
	}
	if len(workshops) == 0 {
		fmt.Println("No workshops found")
		return nil
	}

	fmt.Println("Workshops:")
	for _, w := range workshops {
		sessions, err := ctx.Store.GetSessionsForWorkshop(w.ID)
		if err != nil {
			return fmt.Errorf("failed to get sessions for %s: %w", w.Name, err)
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", w.ID)
		}
		fmt.Printf("  %s%s - %d session(s)\n", w.Name, idStr, len(sessions))
		if w.Description != "" {
			fmt.Printf("      %s\n", w.Description)
		}
	}
	return nil
}
