package system

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
)

// NotifyCmd sends one notification through the tray app. It is how the
// tray integration is checked by hand.
type NotifyCmd struct {
	Text   string `arg:"" optional:"" help:"Notification text." default:"classtimer test notification"`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !ctx.NotificationsOn(settings) {
		fmt.Println("Notifications are disabled (settings, CLASSTIMER_NOTIFY or no notifier).")
		return nil
	}
	if c.DryRun {
		fmt.Println("[DryRun] " + c.Text)
		return nil
	}
	if err := ctx.Notifier.Notify(c.Text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	fmt.Println("✓ Notification sent")
	return nil
}
