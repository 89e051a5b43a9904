// Package countdown renders the active segment: its title, the MM:SS left,
// and progress bars for the segment and for the whole session.
package countdown

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/classtimer/internal/sequencer"
	"github.com/julianstephens/classtimer/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 2).
			Align(lipgloss.Center)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Align(lipgloss.Center)

	pausedClockStyle = clockStyle.
				BorderForeground(lipgloss.Color("214"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(10)

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

const maxBarWidth = 60

type Model struct {
	segment progress.Model
	overall progress.Model
	width   int
}

func New() Model {
	return Model{
		segment: progress.New(progress.WithDefaultGradient()),
		overall: progress.New(progress.WithSolidFill("62")),
	}
}

func (m *Model) SetWidth(width int) {
	m.width = width
	barWidth := width - 16
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	if barWidth < 10 {
		barWidth = 10
	}
	m.segment.Width = barWidth
	m.overall.Width = barWidth
}

// SegmentFraction is the share of the current segment already played.
func SegmentFraction(snap sequencer.Snapshot) float64 {
	if snap.TotalForCurrent <= 0 {
		return 1
	}
	return float64(snap.TotalForCurrent-snap.Remaining) / float64(snap.TotalForCurrent)
}

// View renders snap. overall is the session progress in [0, 1].
func (m Model) View(snap sequencer.Snapshot, overall float64) string {
	seg, ok := snap.Current()
	if !ok {
		return titleStyle.Render("Session finished!")
	}

	clock := clockStyle
	if snap.State == sequencer.StatePaused {
		clock = pausedClockStyle
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("%d/%d · %s", snap.CurrentIndex+1, len(snap.Segments), seg.Title)),
		clock.Render(utils.FormatClock(snap.Remaining)),
		stateStyle.Render(snap.State.String()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, labelStyle.Render("Segment"), m.segment.ViewAs(SegmentFraction(snap))),
		lipgloss.JoinHorizontal(lipgloss.Center, labelStyle.Render("Session"), m.overall.ViewAs(overall)),
	)
}
