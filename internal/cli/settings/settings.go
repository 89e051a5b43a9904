package settings

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	ResetPolicy          *string `help:"What reset restores: 'plan' (durations as started) or 'current' (keep extensions)."`
	AutoAdvance          *bool   `help:"Start the next segment automatically when one ends."`
	AlignFallback        *bool   `help:"Play with planned durations when a session cannot be aligned, instead of refusing to start."`
	DefaultContext       *string `help:"Schedule window context used when --context is not given (empty for none)."`
	Timezone             *string `help:"IANA timezone used to read schedule windows, or Local."`
	NotificationsEnabled *bool   `help:"Enable or disable desktop notifications."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		printSettings(settings)
		return nil
	}

	updated := false
	if c.ResetPolicy != nil {
		settings.ResetPolicy = *c.ResetPolicy
		updated = true
	}
	if c.AutoAdvance != nil {
		settings.AutoAdvance = *c.AutoAdvance
		updated = true
	}
	if c.AlignFallback != nil {
		settings.AlignFallback = *c.AlignFallback
		updated = true
	}
	if c.DefaultContext != nil {
		settings.DefaultContext = *c.DefaultContext
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func printSettings(s models.Settings) {
	context := s.DefaultContext
	if context == "" {
		context = "(none, sessions play unaligned)"
	}
	fmt.Println("Playback Settings:")
	fmt.Printf("  Reset Policy:          %s\n", s.ResetPolicy)
	fmt.Printf("  Auto Advance:          %v\n", s.AutoAdvance)
	fmt.Printf("  Align Fallback:        %v\n", s.AlignFallback)
	fmt.Printf("  Default Context:       %s\n", context)
	fmt.Printf("  Timezone:              %s\n", s.Timezone)
	fmt.Println("\nNotification Settings:")
	fmt.Printf("  Notifications Enabled: %v\n", s.NotificationsEnabled)
}
