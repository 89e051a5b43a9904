package tui

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/classtimer/internal/clock"
	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/sequencer"
	"github.com/julianstephens/classtimer/internal/session"
	"github.com/julianstephens/classtimer/internal/storage"
	"github.com/julianstephens/classtimer/internal/tui/components/countdown"
	"github.com/julianstephens/classtimer/internal/tui/components/timeline"
	"github.com/julianstephens/classtimer/internal/utils"
	"github.com/julianstephens/classtimer/internal/validation"
)

const noContext = "none"

var errNoSessions = errors.New("no sessions yet, add one with: classtimer session add")

type Options struct {
	SessionID string // skip the picker and play this session
	Context   string // as given on the command line, see session.ResolveContext
	Settings  models.Settings
	Location  *time.Location
	// Listeners returns the listeners attached to each new run.
	Listeners func(sessionID string) []sequencer.Listener
}

type PickerFormModel struct {
	SessionID string
	Context   string
}

type Model struct {
	store     storage.Provider
	opts      Options
	clock     *clock.Tea
	seq       *sequencer.Sequencer
	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	form      *huh.Form
	pickForm  *PickerFormModel
	session   models.Session
	countdown countdown.Model
	timeline  timeline.Model
	notice    string // how the run was aligned
	warning   string // catalog validation summary shown in the picker
	err       error
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider, opts Options) Model {
	m := Model{
		store:     store,
		opts:      opts,
		clock:     clock.NewTea(),
		state:     constants.StatePicker,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		countdown: countdown.New(),
		timeline:  timeline.New(0, 0),
	}
	if opts.SessionID != "" {
		m.start(opts.SessionID, opts.Context)
		return m
	}
	m.openPicker()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == constants.StatePicker {
		return []key.Binding{m.keys.Quit}
	}
	return []key.Binding{m.keys.Toggle, m.keys.Next, m.keys.Extend, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state == constants.StatePicker {
		return [][]key.Binding{{m.keys.Quit}}
	}
	return [][]key.Binding{
		{m.keys.Toggle, m.keys.Next, m.keys.Extend, m.keys.Reset},
		{m.keys.Up, m.keys.Down},
		{m.keys.Back, m.keys.Quit, m.keys.Help},
	}
}

func (m Model) Init() tea.Cmd {
	if m.state == constants.StatePicker && m.form != nil {
		return m.form.Init()
	}
	return m.clock.Cmd()
}

// Sequencer exposes the active run, nil before a session is picked.
func (m Model) Sequencer() *sequencer.Sequencer {
	return m.seq
}

// openPicker builds the session picker. Without any session there is no
// form, only an error to display.
func (m *Model) openPicker() {
	m.state = constants.StatePicker
	m.form = nil

	sessions, err := m.store.GetAllSessions()
	if err != nil {
		m.err = fmt.Errorf("failed to load sessions: %w", err)
		return
	}
	if len(sessions) == 0 {
		m.err = errNoSessions
		return
	}

	workshops := map[string]string{}
	if all, err := m.store.GetAllWorkshops(); err == nil {
		for _, w := range all {
			workshops[w.ID] = w.Name
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		if wi, wj := workshops[sessions[i].WorkshopID], workshops[sessions[j].WorkshopID]; wi != wj {
			return wi < wj
		}
		return sessions[i].Name < sessions[j].Name
	})

	sessionOpts := make([]huh.Option[string], 0, len(sessions))
	for _, s := range sessions {
		label := s.Name
		if w := workshops[s.WorkshopID]; w != "" {
			label = w + " · " + s.Name
		}
		if segments, err := m.store.GetSegmentsForSession(s.ID); err == nil {
			total := 0
			for _, seg := range segments {
				total += seg.PlannedDurationSec
			}
			label = fmt.Sprintf("%s (%d segments, %s)", label, len(segments), utils.FormatClock(total))
		}
		sessionOpts = append(sessionOpts, huh.NewOption(label, s.ID))
	}

	ctx := session.ResolveContext(m.opts.Context, m.opts.Settings)
	if ctx == "" {
		ctx = noContext
	}
	m.pickForm = &PickerFormModel{SessionID: m.session.ID, Context: ctx}
	if m.pickForm.SessionID == "" {
		m.pickForm.SessionID = sessions[0].ID
	}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Session").
			Options(sessionOpts...).
			Value(&m.pickForm.SessionID),
	}
	if contexts := m.contexts(); len(contexts) > 0 {
		ctxOpts := []huh.Option[string]{huh.NewOption("No alignment", noContext)}
		for _, c := range contexts {
			ctxOpts = append(ctxOpts, huh.NewOption("Align to "+c, c))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Schedule").
			Options(ctxOpts...).
			Value(&m.pickForm.Context))
	}

	m.form = huh.NewForm(huh.NewGroup(fields...))
	m.updateValidationStatus()
}

// updateValidationStatus summarises catalog conflicts for the picker.
func (m *Model) updateValidationStatus() {
	catalog, err := validation.LoadCatalog(m.store)
	if err != nil {
		m.warning = "⚠ Validation unavailable"
		return
	}
	result := validation.New().Validate(catalog)
	if result.HasConflicts() {
		m.warning = fmt.Sprintf("⚠ %d validation warning(s), see: %s doctor", len(result.Conflicts), constants.AppName)
	} else {
		m.warning = ""
	}
}

func (m *Model) contexts() []string {
	windows, err := m.store.GetAllScheduleWindows()
	if err != nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, w := range windows {
		if !seen[w.Context] {
			seen[w.Context] = true
			out = append(out, w.Context)
		}
	}
	sort.Strings(out)
	return out
}

// start replaces the current run with sessionID. On failure the picker is
// shown again with the error and the current run, if any, keeps playing.
func (m *Model) start(sessionID, context string) {
	sess, err := m.store.GetSession(sessionID)
	if err != nil {
		m.err = fmt.Errorf("failed to load session: %w", err)
		m.openPicker()
		return
	}

	seq := sequencer.New(session.InLocation(m.clock, m.opts.Location), m.store, session.ConfigFromSettings(m.opts.Settings))
	if m.opts.Listeners != nil {
		for _, l := range m.opts.Listeners(sessionID) {
			seq.AddListener(l)
		}
	}
	// A failed start never subscribes to the clock, so the old run is untouched.
	if err := seq.StartSession(sessionID, session.ResolveContext(context, m.opts.Settings)); err != nil {
		m.err = fmt.Errorf("cannot start %s: %w", sess.Name, err)
		m.openPicker()
		return
	}

	if m.seq != nil {
		m.seq.Stop()
	}
	m.seq = seq
	m.session = sess
	m.state = constants.StatePlayback
	m.err = nil
	m.notice = alignmentNotice(seq.Alignment())
	m.refresh()
}

func alignmentNotice(a sequencer.Alignment) string {
	switch {
	case a.Applied:
		return fmt.Sprintf("Aligned to %s, ends at %s", a.Window.Label, a.Window.End)
	case a.Requested && a.Err != nil:
		return "Playing unaligned: " + a.Err.Error()
	}
	return ""
}

// refresh copies the run's state into the components.
func (m *Model) refresh() {
	if m.seq == nil {
		return
	}
	m.timeline.SetSnapshot(m.seq.Snapshot())
	switch {
	case m.state == constants.StatePlayback && m.seq.State() == sequencer.StateEnded:
		m.state = constants.StateEnded
	case m.state == constants.StateEnded && m.seq.State() != sequencer.StateEnded:
		// reset after the end
		m.state = constants.StatePlayback
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.countdown.SetWidth(width)
	// countdown, notice and help take roughly fourteen lines
	m.timeline.SetSize(width-4, max(height-16, 3))
	m.refresh()
}
