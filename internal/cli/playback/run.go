// Package playback holds the headless playback commands: run plays a
// session in the terminal with progress bars, align previews how a session
// would be fitted to a schedule window.
package playback

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/logger"
	"github.com/julianstephens/classtimer/internal/sequencer"
	"github.com/julianstephens/classtimer/internal/session"
)

type RunCmd struct {
	Session string `arg:"" help:"Session ID or name."`
	Context string `short:"c" help:"Schedule window context to align to, or \"none\". Defaults to the default_context setting."`
	NoInput bool   `help:"Do not read commands from stdin."`

	in  io.Reader
	out io.Writer
}

// command maps one line typed during playback to a sequencer operation.
// quit is set for the line that ends playback.
func command(line string) (op func(*sequencer.Sequencer) error, quit bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "p", "pause", "resume":
		return (*sequencer.Sequencer).Toggle, false
	case "n", "next":
		return func(s *sequencer.Sequencer) error {
			return s.Advance(s.State() != sequencer.StatePaused)
		}, false
	case "e", "extend":
		return (*sequencer.Sequencer).ExtendToNext, false
	case "r", "reset":
		return (*sequencer.Sequencer).Reset, false
	case "q", "quit":
		return nil, true
	}
	return nil, false
}

func (c *RunCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := ctx.Location(settings)
	if err != nil {
		return err
	}
	sess, err := ctx.FindSession(c.Session)
	if err != nil {
		return err
	}

	in, out := c.in, c.out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	player := session.NewPlayer(ctx.Store, session.ConfigFromSettings(settings), loc)
	listeners, wait := ctx.Listeners(sess.ID, settings)
	defer wait()
	for _, l := range listeners {
		player.AddListener(l)
	}
	bars := newDisplay(out)
	player.AddListener(bars)
	player.StopWhenEnded()

	var startErr error
	player.Do(func(seq *sequencer.Sequencer) {
		startErr = seq.StartSession(sess.ID, session.ResolveContext(c.Context, settings))
		if startErr != nil {
			player.Stop()
			return
		}
		if a := seq.Alignment(); a.Applied {
			fmt.Fprintf(out, "Aligned to %s, ends at %s\n", a.Window.Label, a.Window.End)
		} else if a.Requested {
			fmt.Fprintf(out, "Playing unaligned: %v\n", a.Err)
		}
	})

	if !c.NoInput {
		fmt.Fprintln(out, "Enter p (pause/resume), n (next), e (extend), r (reset) or q (quit).")
		go c.readCommands(in, player)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = player.Run(runCtx)
	bars.Wait()

	if startErr != nil {
		return fmt.Errorf("cannot start %s: %w", sess.Name, startErr)
	}
	if err != nil && !errors.Is(err, session.ErrStopped) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *RunCmd) readCommands(in io.Reader, player *session.Player) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		op, quit := command(scanner.Text())
		if quit {
			player.Stop()
			return
		}
		if op == nil {
			continue
		}
		line := scanner.Text()
		if !player.Do(func(seq *sequencer.Sequencer) {
			if err := op(seq); err != nil {
				logger.Debug("Ignored playback command", "command", line, "error", err)
			}
		}) {
			return
		}
	}
}
