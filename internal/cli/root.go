package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/classtimer/internal/config"
	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/notifier"
	"github.com/julianstephens/classtimer/internal/sequencer"
	"github.com/julianstephens/classtimer/internal/session"
	"github.com/julianstephens/classtimer/internal/storage"
	"github.com/julianstephens/classtimer/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Env      config.Env
	Notifier notifier.Sender // nil disables desktop notifications
}

// NewID returns a fresh entity ID.
func NewID() string {
	return uuid.NewString()
}

// Location returns the timezone playback and alignment run in.
func (c *Context) Location(settings models.Settings) (*time.Location, error) {
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return loc, nil
}

// NotificationsOn reports whether playback should send desktop notifications.
func (c *Context) NotificationsOn(settings models.Settings) bool {
	return c.Notifier != nil && c.Env.Notify && settings.NotificationsEnabled
}

// Listeners returns the listeners every playback surface attaches: the log
// listener and, when enabled, the notifier. wait blocks until notifications
// in flight have been attempted.
func (c *Context) Listeners(sessionID string, settings models.Settings) (listeners []sequencer.Listener, wait func()) {
	listeners = []sequencer.Listener{session.LogListener{SessionID: sessionID}}
	wait = func() {}
	if c.NotificationsOn(settings) {
		nl := notifier.NewListener(c.Notifier)
		listeners = append(listeners, nl)
		wait = nl.Wait
	}
	return listeners, wait
}

// FindSession resolves ref as a session ID, then as a case-insensitive
// session name.
func (c *Context) FindSession(ref string) (models.Session, error) {
	if sess, err := c.Store.GetSession(ref); err == nil {
		return sess, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Session{}, err
	}
	all, err := c.Store.GetAllSessions()
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to get sessions: %w", err)
	}
	return matchName(all, ref, "session", func(s models.Session) (string, string) { return s.ID, s.Name })
}

// FindWorkshop resolves ref as a workshop ID, then as a case-insensitive
// workshop name.
func (c *Context) FindWorkshop(ref string) (models.Workshop, error) {
	if w, err := c.Store.GetWorkshop(ref); err == nil {
		return w, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Workshop{}, err
	}
	all, err := c.Store.GetAllWorkshops()
	if err != nil {
		return models.Workshop{}, fmt.Errorf("failed to get workshops: %w", err)
	}
	return matchName(all, ref, "workshop", func(w models.Workshop) (string, string) { return w.ID, w.Name })
}

func matchName[T any](items []T, ref, kind string, key func(T) (id, name string)) (T, error) {
	var found []T
	for _, item := range items {
		if _, name := key(item); strings.EqualFold(name, ref) {
			found = append(found, item)
		}
	}
	var zero T
	switch len(found) {
	case 0:
		return zero, fmt.Errorf("no %s with ID or name %q: %w", kind, ref, storage.ErrNotFound)
	case 1:
		return found[0], nil
	}
	ids := make([]string, len(found))
	for i, item := range found {
		ids[i], _ = key(item)
	}
	return zero, fmt.Errorf("%d %ss are named %q, use an ID: %s", len(found), kind, ref, strings.Join(ids, ", "))
}

// ParseDurationSec reads a segment length. A bare number is minutes;
// anything else goes through time.ParseDuration ("90s", "1m30s").
func ParseDurationSec(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be greater than zero, got %q", s)
		}
		return n * 60, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (minutes, or e.g. 90s, 4m30s)", s)
	}
	if d < time.Second {
		return 0, fmt.Errorf("duration must be at least one second, got %q", s)
	}
	if d%time.Second != 0 {
		return 0, fmt.Errorf("duration must be whole seconds, got %q", s)
	}
	return int(d / time.Second), nil
}

// FormatDuration renders seconds as "5m" or "4m30s" for listings.
func FormatDuration(seconds int) string {
	m, s := seconds/60, seconds%60
	switch {
	case s == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm%ds", m, s)
}
