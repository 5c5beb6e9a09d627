package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/highcard/internal/card"
	"github.com/lox/highcard/internal/randutil"
)

// ScriptedRounds returns a source that deals the given (player, computer)
// pairs in order, wrapping around when exhausted.
func ScriptedRounds(rounds ...[2]card.Card) *randutil.Scripted {
	pairs := make([][2]int, 0, len(rounds)*2)
	for _, r := range rounds {
		for _, c := range r {
			pairs = append(pairs, [2]int{int(c.Suit), int(c.Rank)})
		}
	}
	return randutil.NewScripted(randutil.Cards(pairs...)...)
}

// quietLogger returns a logger for tests that only reports errors
func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// recorder collects every event it receives
type recorder struct {
	events []GameEvent
}

func (r *recorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}
