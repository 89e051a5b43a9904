package playback

import (
	"fmt"
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/julianstephens/classtimer/internal/sequencer"
	"github.com/julianstephens/classtimer/internal/utils"
)

const titleWidth = 28

var barStyle = mpb.BarStyle().Lbound("╢").Filler("█").Tip("█").Padding("░").Rbound("╟")

// display draws one progress bar per segment played. It is a sequencer
// listener, so every call happens on the player's loop goroutine.
type display struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newDisplay(out io.Writer) *display {
	return &display{
		p: mpb.New(
			mpb.WithOutput(out),
			mpb.WithWidth(48),
			mpb.WithRefreshRate(200*time.Millisecond),
		),
	}
}

func remainingClock(s decor.Statistics) string {
	return utils.FormatClock(int(s.Total - s.Current))
}

func (d *display) OnSegmentChanged(seg sequencer.PlaybackSegment, index, total int) {
	d.finish()
	name := fmt.Sprintf("%d/%d %s", index+1, total, utils.Truncate(seg.Title, titleWidth))
	d.bar = d.p.New(int64(seg.DurationSeconds),
		barStyle,
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Any(remainingClock, decor.WC{W: 6}), "done"),
		),
	)
}

func (d *display) OnTick(remaining, totalForCurrent int) {
	if d.bar == nil {
		return
	}
	d.bar.SetCurrent(int64(totalForCurrent - remaining))
}

func (d *display) OnSessionEnded() {
	d.finish()
}

// finish leaves the current bar on screen, complete or not.
func (d *display) finish() {
	if d.bar != nil && !d.bar.Completed() {
		d.bar.Abort(false)
	}
	d.bar = nil
}

// Wait flushes the bars. Call it once the player has stopped.
func (d *display) Wait() {
	d.finish()
	d.p.Wait()
}
