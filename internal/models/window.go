package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/classtimer/internal/utils"
)

// ScheduleWindow is a fixed time-of-day interval, such as a class period,
// that a session can be stretched or squeezed into. Windows are grouped by
// Context (a timetable name) and ordered by Start.
type ScheduleWindow struct {
	ID      string `json:"id"`
	Context string `json:"context"`
	Label   string `json:"label"`
	Start   string `json:"start"` // HH:MM or HH:MM:SS
	End     string `json:"end"`   // HH:MM or HH:MM:SS
}

func (w ScheduleWindow) Validate() error {
	if strings.TrimSpace(w.Label) == "" {
		return errors.New("window label cannot be empty")
	}
	start, err := utils.ParseTimeOfDay(w.Start)
	if err != nil {
		return fmt.Errorf("invalid window start: %w", err)
	}
	end, err := utils.ParseTimeOfDay(w.End)
	if err != nil {
		return fmt.Errorf("invalid window end: %w", err)
	}
	if end <= start {
		return fmt.Errorf("window start (%s) must be before end (%s)", w.Start, w.End)
	}
	return nil
}
