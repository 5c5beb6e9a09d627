package game

import (
	"time"

	"github.com/lox/highcard/internal/card"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeMatchStart  EventType = "match_start"
	EventTypeRoundDealt  EventType = "round_dealt"
	EventTypeRoundReveal EventType = "round_reveal"
	EventTypeMatchEnd    EventType = "match_end"
	EventTypeReset       EventType = "reset"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a match
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// MatchStartedEvent is published when StartMatch succeeds
type MatchStartedEvent struct {
	MatchID    string
	TargetWins int
	timestamp  time.Time
}

func (e MatchStartedEvent) EventType() EventType { return EventTypeMatchStart }
func (e MatchStartedEvent) Timestamp() time.Time { return e.timestamp }

// NewMatchStartedEvent creates a new match started event
func NewMatchStartedEvent(m Match) MatchStartedEvent {
	return MatchStartedEvent{
		MatchID:    m.ID,
		TargetWins: m.TargetWins,
		timestamp:  time.Now(),
	}
}

// RoundDealtEvent is published when a new pair of cards is dealt face down.
// The cards themselves are not included.
type RoundDealtEvent struct {
	MatchID   string
	Round     int
	timestamp time.Time
}

func (e RoundDealtEvent) EventType() EventType { return EventTypeRoundDealt }
func (e RoundDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundDealtEvent creates a new round dealt event
func NewRoundDealtEvent(matchID string, round int) RoundDealtEvent {
	return RoundDealtEvent{
		MatchID:   matchID,
		Round:     round,
		timestamp: time.Now(),
	}
}

// RoundRevealedEvent is published when a round is scored
type RoundRevealedEvent struct {
	MatchID       string
	Round         int
	PlayerCard    card.Card
	ComputerCard  card.Card
	Outcome       RoundOutcome
	PlayerScore   int
	ComputerScore int
	timestamp     time.Time
}

func (e RoundRevealedEvent) EventType() EventType { return EventTypeRoundReveal }
func (e RoundRevealedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundRevealedEvent creates a new round revealed event
func NewRoundRevealedEvent(m Match, r Round) RoundRevealedEvent {
	return RoundRevealedEvent{
		MatchID:       m.ID,
		Round:         r.Number,
		PlayerCard:    r.PlayerCard,
		ComputerCard:  r.ComputerCard,
		Outcome:       r.Outcome,
		PlayerScore:   m.PlayerScore,
		ComputerScore: m.ComputerScore,
		timestamp:     time.Now(),
	}
}

// MatchEndedEvent is published once per match when a side reaches the target
type MatchEndedEvent struct {
	MatchID       string
	Outcome       MatchOutcome
	TargetWins    int
	PlayerScore   int
	ComputerScore int
	Rounds        int
	timestamp     time.Time
}

func (e MatchEndedEvent) EventType() EventType { return EventTypeMatchEnd }
func (e MatchEndedEvent) Timestamp() time.Time { return e.timestamp }

// NewMatchEndedEvent creates a new match ended event
func NewMatchEndedEvent(m Match) MatchEndedEvent {
	return MatchEndedEvent{
		MatchID:       m.ID,
		Outcome:       m.Outcome,
		TargetWins:    m.TargetWins,
		PlayerScore:   m.PlayerScore,
		ComputerScore: m.ComputerScore,
		Rounds:        m.Rounds,
		timestamp:     time.Now(),
	}
}

// ResetEvent is published by ResetToSetup. AbandonedMatchID is empty when
// no match was in progress.
type ResetEvent struct {
	AbandonedMatchID string
	timestamp        time.Time
}

func (e ResetEvent) EventType() EventType { return EventTypeReset }
func (e ResetEvent) Timestamp() time.Time { return e.timestamp }

// NewResetEvent creates a new reset event
func NewResetEvent(abandoned string) ResetEvent {
	return ResetEvent{
		AbandonedMatchID: abandoned,
		timestamp:        time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delivery is
// synchronous and in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
