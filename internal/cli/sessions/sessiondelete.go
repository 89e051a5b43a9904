package sessions

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
)

type SessionDeleteCmd struct {
	Session string `arg:"" help:"Session ID or name."`
}

func (c *SessionDeleteCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.FindSession(c.Session)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteSession(sess.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Printf("Deleted session: %s (ID: %s)\n", sess.Name, sess.ID)
	return nil
}
