// Package timeline lists a session's segments: completed, active and
// upcoming, each with its duration and a preview of the work.
package timeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/sequencer"
	"github.com/julianstephens/classtimer/internal/utils"
)

var (
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	upcomingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(8)

	workStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			PaddingLeft(11)

	adjustedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Width(8)
)

// Status is where a segment sits relative to the active one.
type Status int

const (
	Upcoming Status = iota
	Active
	Completed
)

// StatusOf classifies segment i of a run whose active index is current.
func StatusOf(i, current int) Status {
	switch {
	case i < current:
		return Completed
	case i == current:
		return Active
	}
	return Upcoming
}

type Model struct {
	viewport viewport.Model
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetSnapshot re-renders the timeline and keeps the active segment in view.
func (m *Model) SetSnapshot(snap sequencer.Snapshot) {
	m.viewport.SetContent(Render(snap))
	// Each segment takes one line, plus one for its work preview.
	line := 0
	for i := 0; i < snap.CurrentIndex && i < len(snap.Segments); i++ {
		line++
		if snap.Segments[i].Work != "" {
			line++
		}
	}
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line)
	}
}

func (m Model) View() string {
	return m.viewport.View()
}

// Render draws every segment of snap, one line each plus an optional work line.
func Render(snap sequencer.Snapshot) string {
	var b strings.Builder
	for i, seg := range snap.Segments {
		marker, style := "·", upcomingStyle
		switch StatusOf(i, snap.CurrentIndex) {
		case Completed:
			marker, style = "✓", doneStyle
		case Active:
			marker, style = "▶", activeStyle
		}

		duration := timeStyle.Render(utils.FormatClock(seg.DurationSeconds))
		if seg.DurationSeconds != seg.PlannedDurationSec {
			duration = adjustedStyle.Render(utils.FormatClock(seg.DurationSeconds))
		}
		fmt.Fprintf(&b, " %s %s %s\n", marker, duration, style.Render(seg.Title))
		if seg.Work != "" {
			b.WriteString(workStyle.Render(utils.Truncate(seg.Work, constants.TimelineWorkPreviewLen)))
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
