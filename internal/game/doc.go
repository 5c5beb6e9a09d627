// Package game implements the rules of a high-card match.
//
// The main type is Engine, which owns the state of one match: the target, both
// scores, the current round's cards and the phase (Setup, Playing, Ended).
//
// # Basic Usage
//
//	e := game.NewEngine(randutil.New(42))
//	_ = e.StartMatch(3)
//	outcome, _ := e.RevealRound()
//	if e.Snapshot().CanAdvance() {
//	    _ = e.AdvanceRound()
//	}
//
// # Sequencing
//
// Every operation checks its preconditions first. A call made out of order,
// such as revealing twice or advancing before the reveal, returns an error
// wrapping one of the Err* sentinels and leaves the state unchanged, so a
// double key press can never score a round twice.
//
// Engine transitions are instantaneous. Any delay used to pace animations
// lives with the caller and calls in only between transitions.
//
// # Deterministic Testing
//
// NewEngine requires a randutil.Source. Seeded sources replay the same match;
// randutil.NewScripted fixes the exact cards:
//
//	// player K♠, computer A♥
//	src := randutil.NewScripted(randutil.Cards([2]int{0, 13}, [2]int{1, 1})...)
//	e := game.NewEngine(src)
//
// # Events
//
// The engine publishes MatchStartedEvent, RoundDealtEvent, RoundRevealedEvent,
// MatchEndedEvent and ResetEvent on its EventBus. Delivery is synchronous, so
// subscribers observe events in the order the transitions happened.
package game
