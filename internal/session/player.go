package session

import (
	"context"
	"time"

	"github.com/julianstephens/classtimer/internal/clock"
	"github.com/julianstephens/classtimer/internal/sequencer"
)

// located reports the wrapped source's time in a fixed location, so window
// times are read against the user's configured timezone.
type located struct {
	clock.Source
	loc *time.Location
}

func (s located) Now() time.Time {
	return s.Source.Now().In(s.loc)
}

// InLocation wraps src so Now is expressed in loc. A nil loc returns src.
func InLocation(src clock.Source, loc *time.Location) clock.Source {
	if loc == nil {
		return src
	}
	return located{Source: src, loc: loc}
}

// Player is headless real-time playback: a Sequencer on a wall clock, owned
// by a Loop. Everything that touches the Sequencer goes through Do.
type Player struct {
	loop *Loop
	seq  *sequencer.Sequencer
}

func NewPlayer(catalog sequencer.Catalog, cfg sequencer.Config, loc *time.Location) *Player {
	loop := NewLoop()
	src := InLocation(clock.NewWall(loop.Dispatcher()), loc)
	p := &Player{
		loop: loop,
		seq:  sequencer.New(src, catalog, cfg),
	}
	return p
}

// Do runs fn with the Sequencer on the loop goroutine. It returns false if
// the player has stopped.
func (p *Player) Do(fn func(*sequencer.Sequencer)) bool {
	return p.loop.Post(func() { fn(p.seq) })
}

// AddListener registers l before Run. Listener calls happen on the loop goroutine.
func (p *Player) AddListener(l sequencer.Listener) {
	p.seq.AddListener(l)
}

// StopWhenEnded stops the player after the session's last segment.
func (p *Player) StopWhenEnded() {
	p.seq.AddListener(sequencer.ListenerFuncs{SessionEnded: p.loop.Stop})
}

// Run blocks until ctx is cancelled or Stop is called, then detaches the clock.
func (p *Player) Run(ctx context.Context) error {
	err := p.loop.Run(ctx)
	p.seq.Stop()
	return err
}

func (p *Player) Stop() {
	p.loop.Stop()
}

func (p *Player) Done() <-chan struct{} {
	return p.loop.Done()
}
