package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/planner"
	"github.com/julianstephens/classtimer/internal/session"
	"github.com/julianstephens/classtimer/internal/utils"
)

var errNoContext = errors.New("no context given and no default_context set")

// AlignCmd shows how a session would be stretched or squeezed to end with
// the next schedule window, without playing it.
type AlignCmd struct {
	Session string `arg:"" help:"Session ID or name."`
	Context string `short:"c" help:"Schedule window context. Defaults to the default_context setting."`
	At      string `help:"Plan as if it were this time of day today (HH:MM)."`

	now func() time.Time
}

func (c *AlignCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := ctx.Location(settings)
	if err != nil {
		return err
	}
	context := session.ResolveContext(c.Context, settings)
	if context == "" {
		return errNoContext
	}
	sess, err := ctx.FindSession(c.Session)
	if err != nil {
		return err
	}

	nowFn := c.now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().In(loc)
	if c.At != "" {
		if now, err = utils.OnDate(now, c.At); err != nil {
			return fmt.Errorf("invalid --at %q: %w", c.At, err)
		}
	}

	windows, err := ctx.Store.GetScheduleWindows(context)
	if err != nil {
		return fmt.Errorf("failed to get schedule windows: %w", err)
	}
	window, err := planner.SelectWindow(windows, now)
	if err != nil {
		return err
	}
	segments, err := ctx.Store.GetSegmentsForSession(sess.ID)
	if err != nil {
		return fmt.Errorf("failed to get segments: %w", err)
	}
	durations := make([]int, len(segments))
	for i, seg := range segments {
		durations[i] = seg.PlannedDurationSec
	}
	aligned, err := planner.Align(durations, now, window)
	if err != nil {
		return err
	}

	fmt.Printf("Session: %s\n", sess.Name)
	fmt.Printf("Window:  %s %s-%s (%s), %s left at %s\n",
		window.Label, window.Start, window.End, context,
		utils.FormatClock(sum(aligned)), now.Format("15:04:05"))
	fmt.Println()
	for i, seg := range segments {
		fmt.Printf("  %2d. %-30s %6s -> %6s\n", i+1, seg.Title, utils.FormatClock(seg.PlannedDurationSec), utils.FormatClock(aligned[i]))
	}
	fmt.Printf("  Total: %s -> %s\n", utils.FormatClock(sum(durations)), utils.FormatClock(sum(aligned)))
	return nil
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
