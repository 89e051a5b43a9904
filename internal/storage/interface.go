package storage

import (
	"errors"

	"github.com/julianstephens/classtimer/internal/models"
)

// ErrNotFound is returned by the Get and Delete methods when no row has the
// requested id.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Workshops
	AddWorkshop(models.Workshop) error
	GetWorkshop(id string) (models.Workshop, error)
	GetAllWorkshops() ([]models.Workshop, error)
	// DeleteWorkshop removes the workshop with its sessions and their segments.
	DeleteWorkshop(id string) error

	// Sessions
	AddSession(models.Session) error
	GetSession(id string) (models.Session, error)
	GetAllSessions() ([]models.Session, error)
	GetSessionsForWorkshop(workshopID string) ([]models.Session, error)
	// DeleteSession removes the session and its segments.
	DeleteSession(id string) error

	// Segments
	// AddSegment appends the segment after the session's last one; the
	// Position field of the argument is ignored.
	AddSegment(models.Segment) error
	GetSegment(id string) (models.Segment, error)
	// GetSegmentsForSession returns the session's segments in display order.
	GetSegmentsForSession(sessionID string) ([]models.Segment, error)
	DeleteSegment(id string) error

	// Schedule windows
	AddScheduleWindow(models.ScheduleWindow) error
	// GetScheduleWindows returns the windows of one context sorted by start time.
	GetScheduleWindows(context string) ([]models.ScheduleWindow, error)
	GetAllScheduleWindows() ([]models.ScheduleWindow, error)
	DeleteScheduleWindow(id string) error

	// Utils
	GetConfigPath() string
}
