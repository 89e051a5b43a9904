package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Session is an ordered list of segments played back in one run.
type Session struct {
	ID          string    `json:"id"`
	WorkshopID  string    `json:"workshop_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("session name cannot be empty")
	}
	if s.WorkshopID == "" {
		return errors.New("session must belong to a workshop")
	}
	return nil
}

// Segment is a named, timed activity inside a session. It is a template:
// playback works on copies and never writes back.
type Segment struct {
	ID                 string `json:"id"`
	SessionID          string `json:"session_id"`
	Position           int    `json:"position"` // display order within the session, assigned by the store
	Title              string `json:"title"`
	PlannedDurationSec int    `json:"planned_duration_sec"`
	Work               string `json:"work,omitempty"` // what the class does during the segment
}

func (s Segment) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("segment title cannot be empty")
	}
	if s.SessionID == "" {
		return errors.New("segment must belong to a session")
	}
	if s.PlannedDurationSec <= 0 {
		return fmt.Errorf("segment duration must be positive, got %d", s.PlannedDurationSec)
	}
	return nil
}
