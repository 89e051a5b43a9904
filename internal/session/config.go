package session

import (
	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/sequencer"
)

// ConfigFromSettings maps stored preferences to sequencer policies.
func ConfigFromSettings(s models.Settings) sequencer.Config {
	cfg := sequencer.Config{
		ResetPolicy:    sequencer.ResetToPlan,
		AutoAdvance:    s.AutoAdvance,
		OnAlignFailure: sequencer.AlignFallback,
	}
	if s.ResetPolicy == constants.ResetPolicyCurrent {
		cfg.ResetPolicy = sequencer.ResetToCurrent
	}
	if !s.AlignFallback {
		cfg.OnAlignFailure = sequencer.AlignAbort
	}
	return cfg
}

// ResolveContext picks the schedule window context for a run: an explicit
// value wins, then the stored default. "none" forces an unaligned run.
func ResolveContext(explicit string, s models.Settings) string {
	switch explicit {
	case "none":
		return ""
	case "":
		return s.DefaultContext
	}
	return explicit
}
