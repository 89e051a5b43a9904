package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/classtimer/internal/clock"
	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/logger"
	"github.com/julianstephens/classtimer/internal/sequencer"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case clock.TickMsg:
		m.clock.Handle(msg)
		m.refresh()
		return m, m.clock.Cmd()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
	}

	switch m.state {
	case constants.StatePicker:
		cmds = append(cmds, m.updatePicker(msg))
	case constants.StatePlayback, constants.StateEnded:
		cmds = append(cmds, m.updatePlayback(msg))
	}
	if m.quitting {
		return m, tea.Quit
	}

	// Every operation that (re)attaches the clock needs its next tick scheduled.
	cmds = append(cmds, m.clock.Cmd())
	return m, tea.Batch(cmds...)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.seq != nil {
		m.seq.Stop()
	}
	m.quitting = true
	return *m, tea.Quit
}

func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.Type == tea.KeyEsc || (m.form == nil && key.Matches(msg, m.keys.Quit)) {
			if m.seq != nil && m.seq.State() != sequencer.StateIdle {
				// back to the run that was playing
				m.state = constants.StatePlayback
				m.refresh()
				return nil
			}
			m.quit()
			return nil
		}
	}
	if m.form == nil {
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.start(m.pickForm.SessionID, m.pickForm.Context)
		if m.state == constants.StatePicker && m.form != nil {
			return m.form.Init()
		}
		return nil
	case huh.StateAborted:
		m.quit()
		return nil
	}
	return cmd
}

func (m *Model) updatePlayback(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		return cmd
	}

	var err error
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quit()
		return nil
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(keyMsg, m.keys.Back):
		m.err = nil
		m.openPicker()
		if m.form != nil {
			return m.form.Init()
		}
		return nil
	case key.Matches(keyMsg, m.keys.Toggle):
		err = m.seq.Toggle()
	case key.Matches(keyMsg, m.keys.Next):
		err = m.seq.Advance(m.seq.State() != sequencer.StatePaused)
	case key.Matches(keyMsg, m.keys.Extend):
		err = m.seq.ExtendToNext()
	case key.Matches(keyMsg, m.keys.Reset):
		err = m.seq.Reset()
	default:
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		return cmd
	}

	if err != nil {
		if !sequencer.IsStateError(err) {
			m.err = err
		}
		logger.Debug("Ignored playback key", "key", keyMsg.String(), "error", err)
	}
	m.refresh()
	return nil
}
