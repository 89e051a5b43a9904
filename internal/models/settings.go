package models

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/utils"
)

// Settings represents user playback preferences persisted in the store
type Settings struct {
	ResetPolicy          string `json:"reset_policy"`          // "plan" restores the aligned plan on reset, "current" keeps in-memory durations
	AutoAdvance          bool   `json:"auto_advance"`          // start the next segment automatically after the grace second
	AlignFallback        bool   `json:"align_fallback"`        // play unaligned instead of refusing to start when alignment fails
	DefaultContext       string `json:"default_context"`       // schedule window context used when none is given, e.g. "lycee"
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local"
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether desktop notifications are sent
}

// DefaultSettings returns the settings a fresh store is initialized with.
func DefaultSettings() Settings {
	return Settings{
		ResetPolicy:          constants.DefaultResetPolicy,
		AutoAdvance:          constants.DefaultAutoAdvance,
		AlignFallback:        constants.DefaultAlignFallback,
		DefaultContext:       constants.DefaultContext,
		Timezone:             constants.DefaultTimezone,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
	}
}

func (s Settings) Validate() error {
	switch s.ResetPolicy {
	case constants.ResetPolicyPlan, constants.ResetPolicyCurrent:
	default:
		return fmt.Errorf("reset policy must be %q or %q, got %q", constants.ResetPolicyPlan, constants.ResetPolicyCurrent, s.ResetPolicy)
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone: %s", s.Timezone)
	}
	return nil
}
