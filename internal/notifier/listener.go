package notifier

import (
	"errors"
	"fmt"
	"sync"

	"github.com/julianstephens/classtimer/internal/logger"
	"github.com/julianstephens/classtimer/internal/sequencer"
)

// SessionFinishedText is shown when the last segment ends.
const SessionFinishedText = "Session finished!"

// Sender delivers one notification.
type Sender interface {
	Notify(text string) error
}

// Listener turns playback events into notifications. Notifications are
// queued and delivered in order by a single worker goroutine, which runs only
// while the queue is non-empty, so a slow tray app never stalls the countdown.
type Listener struct {
	sender Sender
	wg     sync.WaitGroup

	mu       sync.Mutex
	queue    []string
	draining bool

	// first segment change is the session start; it is not announced
	started bool
}

var _ sequencer.Listener = (*Listener)(nil)

func NewListener(sender Sender) *Listener {
	return &Listener{sender: sender}
}

func (l *Listener) OnSegmentChanged(seg sequencer.PlaybackSegment, index, total int) {
	if !l.started {
		l.started = true
		return
	}
	l.send(fmt.Sprintf("%d/%d · %s", index+1, total, seg.Title))
}

func (l *Listener) OnTick(int, int) {}

func (l *Listener) OnSessionEnded() {
	l.started = false
	l.send(SessionFinishedText)
}

// Wait blocks until every notification in flight has been attempted.
func (l *Listener) Wait() {
	l.wg.Wait()
}

func (l *Listener) send(text string) {
	l.wg.Add(1)
	l.mu.Lock()
	l.queue = append(l.queue, text)
	idle := !l.draining
	l.draining = true
	l.mu.Unlock()
	if idle {
		go l.drain()
	}
}

func (l *Listener) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.draining = false
			l.mu.Unlock()
			return
		}
		text := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.deliver(text)
		l.wg.Done()
	}
}

func (l *Listener) deliver(text string) {
	if err := l.sender.Notify(text); err != nil {
		if errors.Is(err, ErrTrayNotRunning) {
			logger.Debug("Notification skipped", "reason", err)
			return
		}
		logger.Warn("Notification failed", "text", text, "error", err)
	}
}
