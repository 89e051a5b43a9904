package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/classtimer/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StatePicker:
		content = m.viewPicker()
	case constants.StatePlayback, constants.StateEnded:
		content = m.viewPlayback()
	}

	var banner string
	if m.err != nil {
		banner = dangerStyle.Render("Error: " + m.err.Error())
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		banner,
		content,
		m.help.View(m),
	))
}

func (m Model) viewHeader() string {
	title := headerStyle.Render(constants.AppName)
	if m.state == constants.StatePicker || m.session.ID == "" {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, subtleStyle.Render(m.session.Name))
}

func (m Model) viewPicker() string {
	if m.form == nil {
		return warningStyle.Render("Nothing to play.")
	}
	if m.warning != "" {
		return lipgloss.JoinVertical(lipgloss.Left, warningStyle.Render(m.warning), m.form.View())
	}
	return m.form.View()
}

func (m Model) viewPlayback() string {
	snap := m.seq.Snapshot()
	parts := []string{
		m.countdown.View(snap, m.seq.OverallProgressFraction()),
	}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	parts = append(parts, "", m.timeline.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
