package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/highcard/internal/card"
	"github.com/lox/highcard/internal/randutil"
)

var (
	kingSpades  = card.New(card.Spades, card.King)
	aceHearts   = card.New(card.Hearts, card.Ace)
	sevenClubs  = card.New(card.Clubs, card.Seven)
	sevenHearts = card.New(card.Hearts, card.Seven)
	twoDiamonds = card.New(card.Diamonds, card.Two)
)

func newEngine(t *testing.T, rounds ...[2]card.Card) *Engine {
	t.Helper()
	counter := 0
	return NewEngine(ScriptedRounds(rounds...),
		WithLogger(quietLogger()),
		WithIDGenerator(func() string {
			counter++
			return fmt.Sprintf("match-%d", counter)
		}))
}

func TestNewEngine(t *testing.T) {
	t.Run("starts in setup", func(t *testing.T) {
		e := NewEngine(randutil.New(1))
		snap := e.Snapshot()

		assert.Equal(t, PhaseSetup, snap.Phase)
		assert.Equal(t, Match{}, snap.Match)
		assert.Equal(t, Round{}, snap.Round)
	})

	t.Run("requires a random source", func(t *testing.T) {
		assert.Panics(t, func() { NewEngine(nil) })
	})
}

func TestStartMatch(t *testing.T) {
	t.Run("deals the first round immediately", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})

		require.NoError(t, e.StartMatch(3))
		snap := e.Snapshot()

		assert.Equal(t, PhasePlaying, snap.Phase)
		assert.Equal(t, "match-1", snap.Match.ID)
		assert.Equal(t, 3, snap.Match.TargetWins)
		assert.Zero(t, snap.Match.PlayerScore)
		assert.Zero(t, snap.Match.ComputerScore)
		assert.Equal(t, MatchNone, snap.Match.Outcome)
		assert.Equal(t, 1, snap.Round.Number)
		assert.Equal(t, kingSpades, snap.Round.PlayerCard)
		assert.Equal(t, aceHearts, snap.Round.ComputerCard)
		assert.False(t, snap.Round.Revealed)
		assert.Equal(t, RoundPending, snap.Round.Outcome)
	})

	t.Run("rejects non-positive targets without changing state", func(t *testing.T) {
		for _, target := range []int{0, -1, -10} {
			e := newEngine(t, [2]card.Card{kingSpades, aceHearts})

			err := e.StartMatch(target)
			require.ErrorIs(t, err, ErrInvalidTarget)
			assert.Equal(t, PhaseSetup, e.Phase())
		}
	})

	t.Run("accepts any positive target", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		require.NoError(t, e.StartMatch(1))
		assert.Equal(t, 1, e.Snapshot().Match.TargetWins)

		require.NoError(t, e.StartMatch(250))
		assert.Equal(t, 250, e.Snapshot().Match.TargetWins)
	})

	t.Run("restarting mid match yields a clean match", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		require.NoError(t, e.StartMatch(5))
		_, err := e.RevealRound()
		require.NoError(t, err)
		require.Equal(t, 1, e.Snapshot().Match.PlayerScore)

		require.NoError(t, e.StartMatch(5))
		snap := e.Snapshot()
		assert.Equal(t, "match-2", snap.Match.ID)
		assert.Zero(t, snap.Match.PlayerScore)
		assert.Zero(t, snap.Match.ComputerScore)
		assert.Equal(t, 1, snap.Round.Number)
		assert.False(t, snap.Round.Revealed)
	})
}

func TestRevealRound(t *testing.T) {
	t.Run("outcome depends on rank only", func(t *testing.T) {
		for r1 := card.Ace; r1 <= card.King; r1++ {
			for r2 := card.Ace; r2 <= card.King; r2++ {
				player := card.New(card.Spades, r1)
				computer := card.New(card.Hearts, r2)
				e := newEngine(t, [2]card.Card{player, computer})
				require.NoError(t, e.StartMatch(10))

				outcome, err := e.RevealRound()
				require.NoError(t, err)
				snap := e.Snapshot()

				switch {
				case r1 > r2:
					assert.Equal(t, RoundWin, outcome, "%s vs %s", player, computer)
					assert.Equal(t, 1, snap.Match.PlayerScore)
					assert.Zero(t, snap.Match.ComputerScore)
				case r1 < r2:
					assert.Equal(t, RoundLose, outcome, "%s vs %s", player, computer)
					assert.Zero(t, snap.Match.PlayerScore)
					assert.Equal(t, 1, snap.Match.ComputerScore)
				default:
					assert.Equal(t, RoundDraw, outcome, "%s vs %s", player, computer)
					assert.Zero(t, snap.Match.PlayerScore)
					assert.Zero(t, snap.Match.ComputerScore)
				}
				assert.True(t, snap.Round.Revealed)
				assert.Equal(t, outcome, snap.Round.Outcome)
			}
		}
	})

	t.Run("suit never breaks a tie", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{sevenClubs, sevenHearts})
		require.NoError(t, e.StartMatch(3))

		outcome, err := e.RevealRound()
		require.NoError(t, err)

		snap := e.Snapshot()
		assert.Equal(t, RoundDraw, outcome)
		assert.Zero(t, snap.Match.PlayerScore)
		assert.Zero(t, snap.Match.ComputerScore)
		assert.Equal(t, PhasePlaying, snap.Phase)
	})

	t.Run("second reveal is rejected and scores once", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		require.NoError(t, e.StartMatch(3))

		_, err := e.RevealRound()
		require.NoError(t, err)
		before := e.Snapshot()

		outcome, err := e.RevealRound()
		require.ErrorIs(t, err, ErrAlreadyRevealed)
		assert.Equal(t, RoundWin, outcome)
		assert.Equal(t, before, e.Snapshot())
		assert.Equal(t, 1, e.Snapshot().Match.PlayerScore)
	})

	t.Run("rejected outside a match", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})

		_, err := e.RevealRound()
		require.ErrorIs(t, err, ErrNotPlaying)
		assert.Equal(t, PhaseSetup, e.Phase())
	})
}

func TestAdvanceRound(t *testing.T) {
	t.Run("before reveal is a no-op", func(t *testing.T) {
		src := ScriptedRounds([2]card.Card{kingSpades, aceHearts}, [2]card.Card{twoDiamonds, sevenClubs})
		e := NewEngine(src, WithLogger(quietLogger()))
		require.NoError(t, e.StartMatch(3))
		before := e.Snapshot()
		calls := src.Calls()

		err := e.AdvanceRound()
		require.ErrorIs(t, err, ErrNotRevealed)
		assert.Equal(t, before, e.Snapshot())
		assert.Equal(t, calls, src.Calls(), "no cards drawn")
		assert.False(t, e.Snapshot().Round.Revealed)
	})

	t.Run("after reveal deals a fresh pending round", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts}, [2]card.Card{twoDiamonds, sevenClubs})
		require.NoError(t, e.StartMatch(3))
		_, err := e.RevealRound()
		require.NoError(t, err)

		require.NoError(t, e.AdvanceRound())
		snap := e.Snapshot()
		assert.Equal(t, 2, snap.Round.Number)
		assert.Equal(t, twoDiamonds, snap.Round.PlayerCard)
		assert.Equal(t, sevenClubs, snap.Round.ComputerCard)
		assert.False(t, snap.Round.Revealed)
		assert.Equal(t, RoundPending, snap.Round.Outcome)
		assert.Equal(t, 1, snap.Match.PlayerScore, "score carries over")
	})

	t.Run("after match end is rejected", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		require.NoError(t, e.StartMatch(1))
		_, err := e.RevealRound()
		require.NoError(t, err)
		require.Equal(t, PhaseEnded, e.Phase())
		before := e.Snapshot()

		err = e.AdvanceRound()
		require.ErrorIs(t, err, ErrMatchDecided)
		assert.Equal(t, before, e.Snapshot())
	})

	t.Run("in setup is rejected", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		require.ErrorIs(t, e.AdvanceRound(), ErrNotPlaying)
	})
}

func TestCheckMatchEnd(t *testing.T) {
	t.Run("victory after three straight wins", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		require.NoError(t, e.StartMatch(3))

		for i := 1; i <= 3; i++ {
			outcome, err := e.RevealRound()
			require.NoError(t, err)
			assert.Equal(t, RoundWin, outcome)
			assert.Equal(t, i, e.Snapshot().Match.PlayerScore)

			if i < 3 {
				assert.Equal(t, PhasePlaying, e.Phase())
				assert.Equal(t, MatchNone, e.Snapshot().Match.Outcome)
				require.NoError(t, e.AdvanceRound())
			}
		}

		snap := e.Snapshot()
		assert.Equal(t, PhaseEnded, snap.Phase)
		assert.Equal(t, MatchVictory, snap.Match.Outcome)
		assert.Equal(t, 3, snap.Match.Rounds)
	})

	t.Run("defeat when the computer reaches the target", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{twoDiamonds, kingSpades})
		require.NoError(t, e.StartMatch(2))

		_, err := e.RevealRound()
		require.NoError(t, err)
		require.NoError(t, e.AdvanceRound())
		_, err = e.RevealRound()
		require.NoError(t, err)

		snap := e.Snapshot()
		assert.Equal(t, PhaseEnded, snap.Phase)
		assert.Equal(t, MatchDefeat, snap.Match.Outcome)
		assert.Equal(t, 2, snap.Match.ComputerScore)
	})

	t.Run("is idempotent", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		require.NoError(t, e.StartMatch(1))
		rec := &recorder{}
		e.Events().Subscribe(rec)

		_, err := e.RevealRound()
		require.NoError(t, err)
		first := e.Snapshot()

		assert.True(t, e.CheckMatchEnd())
		assert.True(t, e.CheckMatchEnd())
		assert.Equal(t, first, e.Snapshot())
		assert.Equal(t, []EventType{EventTypeRoundReveal, EventTypeMatchEnd}, rec.types(), "match end published once")
	})

	t.Run("no change below target", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		require.NoError(t, e.StartMatch(3))
		_, err := e.RevealRound()
		require.NoError(t, err)

		assert.False(t, e.CheckMatchEnd())
		assert.False(t, e.CheckMatchEnd())
		assert.Equal(t, PhasePlaying, e.Phase())
	})

	t.Run("false in setup", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		assert.False(t, e.CheckMatchEnd())
		assert.Equal(t, PhaseSetup, e.Phase())
	})
}

func TestResetToSetup(t *testing.T) {
	t.Run("mid match then restart starts from zero", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		require.NoError(t, e.StartMatch(3))
		_, err := e.RevealRound()
		require.NoError(t, err)

		e.ResetToSetup()
		snap := e.Snapshot()
		assert.Equal(t, PhaseSetup, snap.Phase)
		assert.Equal(t, Match{}, snap.Match)
		assert.Equal(t, Round{}, snap.Round)

		require.NoError(t, e.StartMatch(5))
		snap = e.Snapshot()
		assert.Equal(t, 5, snap.Match.TargetWins)
		assert.Zero(t, snap.Match.PlayerScore)
		assert.Zero(t, snap.Match.ComputerScore)
	})

	t.Run("callable from every phase", func(t *testing.T) {
		e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
		e.ResetToSetup()
		assert.Equal(t, PhaseSetup, e.Phase())

		require.NoError(t, e.StartMatch(1))
		_, err := e.RevealRound()
		require.NoError(t, err)
		require.Equal(t, PhaseEnded, e.Phase())

		e.ResetToSetup()
		assert.Equal(t, PhaseSetup, e.Phase())
	})
}

func TestScoresCountOutcomes(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			e := NewEngine(randutil.New(seed), WithLogger(quietLogger()))
			require.NoError(t, e.StartMatch(7))

			wins, losses := 0, 0
			for e.Phase() == PhasePlaying {
				// ended iff a side reached the target
				snap := e.Snapshot()
				require.Less(t, snap.Match.PlayerScore, 7)
				require.Less(t, snap.Match.ComputerScore, 7)

				outcome, err := e.RevealRound()
				require.NoError(t, err)
				switch outcome {
				case RoundWin:
					wins++
				case RoundLose:
					losses++
				}
				if e.Snapshot().CanAdvance() {
					require.NoError(t, e.AdvanceRound())
				}
			}

			snap := e.Snapshot()
			assert.Equal(t, wins, snap.Match.PlayerScore)
			assert.Equal(t, losses, snap.Match.ComputerScore)
			assert.Equal(t, PhaseEnded, snap.Phase)
			assert.True(t, (snap.Match.PlayerScore == 7) != (snap.Match.ComputerScore == 7), "exactly one side at target")
			if snap.Match.PlayerScore == 7 {
				assert.Equal(t, MatchVictory, snap.Match.Outcome)
			} else {
				assert.Equal(t, MatchDefeat, snap.Match.Outcome)
			}
		})
	}
}

func TestIndependentEngines(t *testing.T) {
	a := newEngine(t, [2]card.Card{kingSpades, aceHearts})
	b := newEngine(t, [2]card.Card{twoDiamonds, kingSpades})
	require.NoError(t, a.StartMatch(3))
	require.NoError(t, b.StartMatch(3))

	_, err := a.RevealRound()
	require.NoError(t, err)

	assert.Equal(t, 1, a.Snapshot().Match.PlayerScore)
	assert.False(t, b.Snapshot().Round.Revealed)
	assert.Zero(t, b.Snapshot().Match.PlayerScore)
}

func TestSnapshotHelpers(t *testing.T) {
	e := newEngine(t, [2]card.Card{kingSpades, aceHearts})
	assert.False(t, e.Snapshot().CanReveal())
	assert.False(t, e.Snapshot().CanAdvance())

	require.NoError(t, e.StartMatch(2))
	assert.True(t, e.Snapshot().CanReveal())
	assert.False(t, e.Snapshot().CanAdvance())
	assert.Zero(t, e.Snapshot().Leader())

	_, err := e.RevealRound()
	require.NoError(t, err)
	assert.False(t, e.Snapshot().CanReveal())
	assert.True(t, e.Snapshot().CanAdvance())
	assert.Equal(t, 1, e.Snapshot().Leader())
}
