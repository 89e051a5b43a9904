package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/sequencer"
	"github.com/julianstephens/classtimer/internal/tui"
)

type TuiCmd struct {
	Session string `arg:"" optional:"" help:"Session ID or name to play right away."`
	Context string `short:"c" help:"Schedule window context to align to, or \"none\". Defaults to the default_context setting."`
}

// options builds the model configuration. The returned wait blocks until
// notifications of every run played have been attempted.
func (c *TuiCmd) options(ctx *cli.Context) (tui.Options, func(), error) {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return tui.Options{}, nil, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := ctx.Location(settings)
	if err != nil {
		return tui.Options{}, nil, err
	}

	opts := tui.Options{Context: c.Context, Settings: settings, Location: loc}
	if c.Session != "" {
		sess, err := ctx.FindSession(c.Session)
		if err != nil {
			return tui.Options{}, nil, err
		}
		opts.SessionID = sess.ID
	}

	var waits []func()
	opts.Listeners = func(sessionID string) []sequencer.Listener {
		listeners, wait := ctx.Listeners(sessionID, settings)
		waits = append(waits, wait)
		return listeners
	}
	wait := func() {
		for _, w := range waits {
			w()
		}
	}
	return opts, wait, nil
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	opts, wait, err := c.options(ctx)
	if err != nil {
		return err
	}
	defer wait()

	p := tea.NewProgram(tui.NewModel(ctx.Store, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
