package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/highcard/internal/card"
)

func TestEventSequence(t *testing.T) {
	rec := &recorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	e := NewEngine(ScriptedRounds([2]card.Card{kingSpades, aceHearts}),
		WithLogger(quietLogger()),
		WithEventBus(bus),
		WithIDGenerator(func() string { return "m1" }))

	require.NoError(t, e.StartMatch(2))
	_, err := e.RevealRound()
	require.NoError(t, err)
	require.NoError(t, e.AdvanceRound())
	_, err = e.RevealRound()
	require.NoError(t, err)
	e.ResetToSetup()

	assert.Equal(t, []EventType{
		EventTypeMatchStart,
		EventTypeRoundDealt,
		EventTypeRoundReveal,
		EventTypeRoundDealt,
		EventTypeRoundReveal,
		EventTypeMatchEnd,
		EventTypeReset,
	}, rec.types())

	reveal, ok := rec.events[4].(RoundRevealedEvent)
	require.True(t, ok)
	assert.Equal(t, "m1", reveal.MatchID)
	assert.Equal(t, 2, reveal.Round)
	assert.Equal(t, RoundWin, reveal.Outcome)
	assert.Equal(t, 2, reveal.PlayerScore)

	end, ok := rec.events[5].(MatchEndedEvent)
	require.True(t, ok)
	assert.Equal(t, MatchVictory, end.Outcome)
	assert.Equal(t, 2, end.Rounds)
	assert.False(t, end.Timestamp().IsZero())

	reset, ok := rec.events[6].(ResetEvent)
	require.True(t, ok)
	assert.Equal(t, "m1", reset.AbandonedMatchID)
}

func TestRejectedOperationsPublishNothing(t *testing.T) {
	e := NewEngine(ScriptedRounds([2]card.Card{kingSpades, aceHearts}), WithLogger(quietLogger()))
	rec := &recorder{}
	e.Events().Subscribe(rec)

	_, err := e.RevealRound()
	require.Error(t, err)
	require.Error(t, e.AdvanceRound())
	require.Error(t, e.StartMatch(0))

	assert.Empty(t, rec.events)
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	a := &recorder{}
	b := &recorder{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(NewResetEvent(""))
	bus.Unsubscribe(a)
	bus.Publish(NewResetEvent(""))

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 2)
}

func TestEventFormatter(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{})

	tests := []struct {
		name  string
		event GameEvent
		want  string
	}{
		{
			name:  "match start",
			event: MatchStartedEvent{MatchID: "abc", TargetWins: 5},
			want:  "*** NEW MATCH: first to 5 ***",
		},
		{
			name:  "round dealt has no text",
			event: RoundDealtEvent{MatchID: "abc", Round: 1},
			want:  "",
		},
		{
			name: "player wins round",
			event: RoundRevealedEvent{
				Round: 2, PlayerCard: kingSpades, ComputerCard: aceHearts,
				Outcome: RoundWin, PlayerScore: 2, ComputerScore: 0,
			},
			want: "Round 2: You K♠ vs Computer A♥ - You win (2-0)",
		},
		{
			name: "computer wins round",
			event: RoundRevealedEvent{
				Round: 1, PlayerCard: twoDiamonds, ComputerCard: sevenClubs,
				Outcome: RoundLose, PlayerScore: 0, ComputerScore: 1,
			},
			want: "Round 1: You 2♦ vs Computer 7♣ - Computer wins (0-1)",
		},
		{
			name: "draw",
			event: RoundRevealedEvent{
				Round: 3, PlayerCard: sevenClubs, ComputerCard: sevenHearts,
				Outcome: RoundDraw, PlayerScore: 1, ComputerScore: 1,
			},
			want: "Round 3: You 7♣ vs Computer 7♥ - draw (1-1)",
		},
		{
			name:  "victory",
			event: MatchEndedEvent{Outcome: MatchVictory, PlayerScore: 3, ComputerScore: 1, Rounds: 5},
			want:  "*** VICTORY 3-1 after 5 rounds ***",
		},
		{
			name:  "defeat",
			event: MatchEndedEvent{Outcome: MatchDefeat, PlayerScore: 0, ComputerScore: 3, Rounds: 4},
			want:  "*** DEFEAT 0-3 after 4 rounds ***",
		},
		{
			name:  "reset mid match",
			event: ResetEvent{AbandonedMatchID: "abc"},
			want:  "Match abandoned, back to setup",
		},
		{
			name:  "reset from setup",
			event: ResetEvent{},
			want:  "Back to setup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ef.Format(tt.event))
		})
	}

	t.Run("custom names and match ids", func(t *testing.T) {
		ef := NewEventFormatter(FormattingOptions{PlayerName: "Ada", ComputerName: "Dealer", ShowMatchIDs: true})
		assert.Equal(t, "*** NEW MATCH: first to 3 *** [xyz]", ef.Format(MatchStartedEvent{MatchID: "xyz", TargetWins: 3}))
		assert.Contains(t, ef.Format(RoundRevealedEvent{Outcome: RoundLose}), "Dealer wins")
	})
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "Setup", PhaseSetup.String())
	assert.Equal(t, "Playing", PhasePlaying.String())
	assert.Equal(t, "Ended", PhaseEnded.String())
	assert.Equal(t, "Pending", RoundPending.String())
	assert.Equal(t, "Win", RoundWin.String())
	assert.Equal(t, "Lose", RoundLose.String())
	assert.Equal(t, "Draw", RoundDraw.String())
	assert.Equal(t, "None", MatchNone.String())
	assert.Equal(t, "Victory", MatchVictory.String())
	assert.Equal(t, "Defeat", MatchDefeat.String())
	assert.Equal(t, "match_end", EventTypeMatchEnd.String())
}
