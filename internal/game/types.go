package game

import "github.com/lox/highcard/internal/card"

// Phase is the lifecycle stage of a match.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlaying
	PhaseEnded
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhasePlaying:
		return "Playing"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// RoundOutcome is the result of a single round from the player's side.
type RoundOutcome int

const (
	RoundPending RoundOutcome = iota
	RoundWin
	RoundLose
	RoundDraw
)

// String returns the string representation of a round outcome
func (o RoundOutcome) String() string {
	switch o {
	case RoundPending:
		return "Pending"
	case RoundWin:
		return "Win"
	case RoundLose:
		return "Lose"
	case RoundDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// MatchOutcome is the result of a finished match from the player's side.
type MatchOutcome int

const (
	MatchNone MatchOutcome = iota
	MatchVictory
	MatchDefeat
)

// String returns the string representation of a match outcome
func (o MatchOutcome) String() string {
	switch o {
	case MatchNone:
		return "None"
	case MatchVictory:
		return "Victory"
	case MatchDefeat:
		return "Defeat"
	default:
		return "Unknown"
	}
}

// Match is one play-through towards TargetWins.
type Match struct {
	ID            string
	TargetWins    int
	PlayerScore   int
	ComputerScore int
	Outcome       MatchOutcome
	Rounds        int
}

// Round is the current pair of cards and whether they have been compared.
type Round struct {
	Number       int
	PlayerCard   card.Card
	ComputerCard card.Card
	Revealed     bool
	Outcome      RoundOutcome
}

// Snapshot is a copy of the engine state for rendering. In PhaseSetup both
// Match and Round are zero values.
type Snapshot struct {
	Phase Phase
	Match Match
	Round Round
}

// Leader reports which side is ahead: 1 for the player, -1 for the computer, 0 when level.
func (s Snapshot) Leader() int {
	switch {
	case s.Match.PlayerScore > s.Match.ComputerScore:
		return 1
	case s.Match.PlayerScore < s.Match.ComputerScore:
		return -1
	default:
		return 0
	}
}

// CanReveal reports whether RevealRound would be accepted.
func (s Snapshot) CanReveal() bool {
	return s.Phase == PhasePlaying && !s.Round.Revealed
}

// CanAdvance reports whether AdvanceRound would be accepted.
func (s Snapshot) CanAdvance() bool {
	return s.Phase == PhasePlaying && s.Round.Revealed && s.Match.Outcome == MatchNone
}
