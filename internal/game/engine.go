package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/highcard/internal/card"
	"github.com/lox/highcard/internal/randutil"
)

// Engine owns the state of one high-card match and applies the rules to it.
// It is not safe for concurrent use; the caller serialises operations.
type Engine struct {
	src    randutil.Source
	logger *log.Logger
	bus    EventBus
	newID  func() string

	phase Phase
	match Match
	round Round
}

// NewEngine creates an engine in PhaseSetup. The random source is required so
// that draws are always explicit and tests can be deterministic:
//
//	// Production - seeded PCG
//	e := game.NewEngine(randutil.New(seed))
//
//	// Testing - scripted draws
//	e := game.NewEngine(randutil.NewScripted(0, 12, 1, 0))
func NewEngine(src randutil.Source, opts ...EngineOption) *Engine {
	if src == nil {
		panic("random source is required for engine creation")
	}

	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}

	return &Engine{
		src:    src,
		logger: cfg.logger,
		bus:    cfg.bus,
		newID:  cfg.newID,
		phase:  PhaseSetup,
	}
}

// Events returns the bus the engine publishes on.
func (e *Engine) Events() EventBus {
	return e.bus
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Phase: e.phase, Match: e.match, Round: e.round}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// StartMatch discards whatever match was running and starts a fresh one
// towards targetWins, dealing its first round immediately.
func (e *Engine) StartMatch(targetWins int) error {
	if targetWins < 1 {
		return e.reject("start match", fmt.Errorf("%w: got %d", ErrInvalidTarget, targetWins))
	}

	e.match = Match{
		ID:         e.newID(),
		TargetWins: targetWins,
	}
	e.round = Round{}
	e.phase = PhasePlaying

	e.logger.Info("Match started", "match", e.match.ID, "target", targetWins)
	e.bus.Publish(NewMatchStartedEvent(e.match))

	e.drawRound()
	return nil
}

// drawRound deals both sides a fresh card. Callers guarantee the phase is
// Playing and that the previous round, if any, has been resolved.
func (e *Engine) drawRound() {
	e.match.Rounds++
	e.round = Round{
		Number:       e.match.Rounds,
		PlayerCard:   card.Draw(e.src),
		ComputerCard: card.Draw(e.src),
		Outcome:      RoundPending,
	}

	e.logger.Debug("Round dealt", "match", e.match.ID, "round", e.round.Number)
	e.bus.Publish(NewRoundDealtEvent(e.match.ID, e.round.Number))
}

// RevealRound turns both cards over and scores the round on rank alone.
// A match that reaches its target is closed before RevealRound returns.
func (e *Engine) RevealRound() (RoundOutcome, error) {
	if e.phase != PhasePlaying {
		return RoundPending, e.reject("reveal round", ErrNotPlaying)
	}
	if e.round.Revealed {
		return e.round.Outcome, e.reject("reveal round", ErrAlreadyRevealed)
	}

	cmp := e.round.PlayerCard.Compare(e.round.ComputerCard)
	outcome := RoundDraw
	switch {
	case cmp > 0:
		outcome = RoundWin
		e.match.PlayerScore++
	case cmp < 0:
		outcome = RoundLose
		e.match.ComputerScore++
	}
	e.round.Revealed = true
	e.round.Outcome = outcome

	e.logger.Debug("Round revealed",
		"match", e.match.ID,
		"round", e.round.Number,
		"player", e.round.PlayerCard,
		"computer", e.round.ComputerCard,
		"outcome", outcome,
		"score", fmt.Sprintf("%d-%d", e.match.PlayerScore, e.match.ComputerScore))
	e.bus.Publish(NewRoundRevealedEvent(e.match, e.round))

	if outcome != RoundDraw {
		e.CheckMatchEnd()
	}
	return outcome, nil
}

// CheckMatchEnd closes the match when either side has reached the target and
// reports whether the match is over. Calling it again is a no-op.
func (e *Engine) CheckMatchEnd() bool {
	if e.phase != PhasePlaying {
		return e.phase == PhaseEnded
	}

	switch {
	case e.match.PlayerScore >= e.match.TargetWins:
		e.match.Outcome = MatchVictory
	case e.match.ComputerScore >= e.match.TargetWins:
		e.match.Outcome = MatchDefeat
	default:
		return false
	}
	e.phase = PhaseEnded

	e.logger.Info("Match ended",
		"match", e.match.ID,
		"outcome", e.match.Outcome,
		"rounds", e.match.Rounds,
		"score", fmt.Sprintf("%d-%d", e.match.PlayerScore, e.match.ComputerScore))
	e.bus.Publish(NewMatchEndedEvent(e.match))
	return true
}

// AdvanceRound deals the next round of an undecided match once the current
// one has been revealed.
func (e *Engine) AdvanceRound() error {
	switch {
	case e.phase == PhaseEnded:
		return e.reject("advance round", ErrMatchDecided)
	case e.phase != PhasePlaying:
		return e.reject("advance round", ErrNotPlaying)
	case !e.round.Revealed:
		return e.reject("advance round", ErrNotRevealed)
	}

	e.drawRound()
	return nil
}

// ResetToSetup abandons the current match, if any, and returns to PhaseSetup.
func (e *Engine) ResetToSetup() {
	previous := e.match.ID
	e.phase = PhaseSetup
	e.match = Match{}
	e.round = Round{}

	e.logger.Info("Reset to setup", "abandoned", previous)
	e.bus.Publish(NewResetEvent(previous))
}

func (e *Engine) reject(op string, err error) error {
	err = fmt.Errorf("%s: %w", op, err)
	e.logger.Debug("Rejected operation", "phase", e.phase, "error", err)
	return err
}
