// Package validation checks the stored catalog for problems that would make
// playback or alignment misbehave: unplayable sessions, broken windows and
// windows that overlap within a context.
package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/storage"
	"github.com/julianstephens/classtimer/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidSegment       ConflictType = "invalid_segment"
	ConflictInvalidWindow        ConflictType = "invalid_window"
	ConflictMissingWorkshop      ConflictType = "missing_workshop"
	ConflictEmptySession         ConflictType = "empty_session"
	ConflictDuplicateSessionName ConflictType = "duplicate_session_name"
	ConflictOverlappingWindows   ConflictType = "overlapping_windows"
)

// Blocking reports whether the conflict breaks playback or alignment, as
// opposed to being merely surprising.
func (t ConflictType) Blocking() bool {
	switch t {
	case ConflictInvalidSegment, ConflictInvalidWindow, ConflictMissingWorkshop:
		return true
	}
	return false
}

// Conflict represents one detected problem
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // names involved
	IDs         []string // IDs of the rows involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Filter returns the conflicts for which keep is true.
func (vr *ValidationResult) Filter(keep func(Conflict) bool) []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of conflicts
func FormatReport(conflicts []Conflict) string {
	if len(conflicts) == 0 {
		return "No conflicts detected."
	}
	lines := make([]string, len(conflicts))
	for i, c := range conflicts {
		lines[i] = "- " + c.Description
	}
	return strings.Join(lines, "\n")
}

// Catalog is a snapshot of everything validation looks at.
type Catalog struct {
	Workshops []models.Workshop
	Sessions  []models.Session
	Segments  map[string][]models.Segment // by session ID
	Windows   []models.ScheduleWindow
}

// Source is the part of storage.Provider that LoadCatalog reads.
type Source interface {
	GetAllWorkshops() ([]models.Workshop, error)
	GetAllSessions() ([]models.Session, error)
	GetSegmentsForSession(sessionID string) ([]models.Segment, error)
	GetAllScheduleWindows() ([]models.ScheduleWindow, error)
}

func LoadCatalog(src Source) (Catalog, error) {
	var c Catalog
	var err error
	if c.Workshops, err = src.GetAllWorkshops(); err != nil {
		return Catalog{}, fmt.Errorf("failed to get workshops: %w", err)
	}
	if c.Sessions, err = src.GetAllSessions(); err != nil {
		return Catalog{}, fmt.Errorf("failed to get sessions: %w", err)
	}
	c.Segments = make(map[string][]models.Segment, len(c.Sessions))
	for _, s := range c.Sessions {
		segments, err := src.GetSegmentsForSession(s.ID)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to get segments of %s: %w", s.Name, err)
		}
		c.Segments[s.ID] = segments
	}
	if c.Windows, err = src.GetAllScheduleWindows(); err != nil {
		return Catalog{}, fmt.Errorf("failed to get schedule windows: %w", err)
	}
	return c, nil
}

// Validator validates the catalog for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(c Catalog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, v.validateSessions(c)...)
	result.Conflicts = append(result.Conflicts, v.validateWindows(c.Windows)...)
	return result
}

func (v *Validator) validateSessions(c Catalog) []Conflict {
	var conflicts []Conflict

	workshops := make(map[string]bool, len(c.Workshops))
	for _, w := range c.Workshops {
		workshops[w.ID] = true
	}

	// Session names are looked up case-insensitively, so "TP" and "tp"
	// cannot be told apart on the command line.
	byName := make(map[string][]models.Session)
	for _, s := range c.Sessions {
		if !workshops[s.WorkshopID] {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMissingWorkshop,
				Description: fmt.Sprintf("Session \"%s\" belongs to unknown workshop %s", s.Name, s.WorkshopID),
				Items:       []string{s.Name},
				IDs:         []string{s.ID},
			})
		}

		segments := c.Segments[s.ID]
		if len(segments) == 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictEmptySession,
				Description: fmt.Sprintf("Session \"%s\" has no segments and cannot be played", s.Name),
				Items:       []string{s.Name},
				IDs:         []string{s.ID},
			})
		}
		for _, seg := range segments {
			if err := seg.Validate(); err != nil {
				conflicts = append(conflicts, Conflict{
					Type:        ConflictInvalidSegment,
					Description: fmt.Sprintf("Session \"%s\", segment \"%s\": %v", s.Name, seg.Title, err),
					Items:       []string{s.Name, seg.Title},
					IDs:         []string{seg.ID},
				})
			}
		}

		if s.Name != "" {
			key := strings.ToLower(s.Name)
			byName[key] = append(byName[key], s)
		}
	}

	for _, s := range c.Sessions {
		key := strings.ToLower(s.Name)
		same := byName[key]
		if len(same) < 2 {
			continue
		}
		delete(byName, key)
		ids := make([]string, len(same))
		for i, d := range same {
			ids[i] = d.ID
		}
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateSessionName,
			Description: fmt.Sprintf("%d sessions are named \"%s\"; refer to them by ID (IDs: %v)", len(same), s.Name, ids),
			Items:       []string{s.Name},
			IDs:         ids,
		})
	}
	return conflicts
}

func (v *Validator) validateWindows(windows []models.ScheduleWindow) []Conflict {
	var conflicts []Conflict
	var valid []models.ScheduleWindow
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidWindow,
				Description: fmt.Sprintf("Window \"%s\" (%s): %v", w.Label, w.Context, err),
				Items:       []string{w.Label},
				IDs:         []string{w.ID},
			})
			continue
		}
		valid = append(valid, w)
	}

	storage.SortWindows(valid)
	for i := 1; i < len(valid); i++ {
		prev, cur := valid[i-1], valid[i]
		if prev.Context != cur.Context {
			continue
		}
		prevEnd, err1 := utils.ParseTimeOfDay(prev.End)
		curStart, err2 := utils.ParseTimeOfDay(cur.Start)
		if err1 != nil || err2 != nil || curStart >= prevEnd {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Type: ConflictOverlappingWindows,
			Description: fmt.Sprintf("Windows %s (%s-%s) and %s (%s-%s) overlap in \"%s\"; alignment picks the earlier one",
				prev.Label, prev.Start, prev.End, cur.Label, cur.Start, cur.End, cur.Context),
			Items: []string{prev.Label, cur.Label},
			IDs:   []string{prev.ID, cur.ID},
		})
	}
	return conflicts
}
