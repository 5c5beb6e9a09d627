// Package pacing schedules the presentation delays of the game: the pause
// while cards flip face down before a new round is dealt, and the pause
// between the deciding round and the match-end announcement.
//
// Delays never touch the engine themselves. They deliver a callback or close
// a channel, and the caller applies the engine transition from its own loop.
package pacing

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Kind identifies which presentation delay to apply
type Kind int

const (
	Flip Kind = iota
	MatchEnd
)

// String returns the string representation of a delay kind
func (k Kind) String() string {
	switch k {
	case Flip:
		return "flip"
	case MatchEnd:
		return "match_end"
	default:
		return "unknown"
	}
}

// Delays holds the duration for each Kind
type Delays struct {
	Flip     time.Duration
	MatchEnd time.Duration
}

// DefaultDelays returns the delays used by the interactive game
func DefaultDelays() Delays {
	return Delays{
		Flip:     300 * time.Millisecond,
		MatchEnd: time.Second,
	}
}

// Pacer runs callbacks after the configured delays on an injected clock
type Pacer struct {
	clock  quartz.Clock
	delays Delays
	logger *log.Logger
}

// New creates a pacer. A nil clock means the real clock.
func New(clock quartz.Clock, delays Delays) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Pacer{
		clock:  clock,
		delays: delays,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// SetLogger sets the logger used to trace scheduled delays
func (p *Pacer) SetLogger(logger *log.Logger) {
	if logger != nil {
		p.logger = logger.WithPrefix("pacing")
	}
}

// Delay returns the configured duration for kind
func (p *Pacer) Delay(kind Kind) time.Duration {
	switch kind {
	case Flip:
		return p.delays.Flip
	case MatchEnd:
		return p.delays.MatchEnd
	default:
		return 0
	}
}

// Pending is a scheduled callback that has not necessarily fired yet
type Pending struct {
	kind  Kind
	timer *quartz.Timer
	done  chan struct{}

	mu      sync.Mutex
	fired   bool
	stopped bool
}

// Kind returns the delay kind this callback was scheduled with
func (pe *Pending) Kind() Kind {
	return pe.kind
}

// Stop cancels the callback. It reports whether the call prevented the
// callback from running.
func (pe *Pending) Stop() bool {
	pe.mu.Lock()
	defer pe.mu.Unlock()
	if pe.fired || pe.stopped {
		return false
	}
	pe.stopped = true
	if pe.timer != nil {
		pe.timer.Stop()
	}
	close(pe.done)
	return true
}

// Done returns a channel that is closed once the callback has run or the
// delay was stopped, whichever happens first.
func (pe *Pending) Done() <-chan struct{} {
	return pe.done
}

// Fired reports whether the callback has run
func (pe *Pending) Fired() bool {
	pe.mu.Lock()
	defer pe.mu.Unlock()
	return pe.fired
}

// run marks the callback fired unless it was stopped first
func (pe *Pending) run(fn func()) {
	pe.mu.Lock()
	if pe.stopped || pe.fired {
		pe.mu.Unlock()
		return
	}
	pe.fired = true
	pe.mu.Unlock()
	fn()
	close(pe.done)
}

// Schedule runs fn once the delay for kind has elapsed. A zero delay runs fn
// before Schedule returns.
func (p *Pacer) Schedule(kind Kind, fn func()) *Pending {
	pe := &Pending{kind: kind, done: make(chan struct{})}
	d := p.Delay(kind)
	p.logger.Debug("Scheduling delay", "kind", kind, "delay", d)

	if d <= 0 {
		pe.run(fn)
		return pe
	}

	pe.mu.Lock()
	pe.timer = p.clock.AfterFunc(d, func() { pe.run(fn) }, "pacing", kind.String())
	pe.mu.Unlock()
	return pe
}

// After starts the delay for kind with nothing to run; wait on Done.
func (p *Pacer) After(kind Kind) *Pending {
	return p.Schedule(kind, func() {})
}
