package models

import (
	"errors"
	"strings"
	"time"
)

// Workshop groups related teaching sessions (a course or a class).
type Workshop struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (w Workshop) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return errors.New("workshop name cannot be empty")
	}
	return nil
}
