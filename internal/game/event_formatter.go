package game

import (
	"fmt"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	PlayerName   string // Label for the human side (default "You")
	ComputerName string // Label for the computer side (default "Computer")
	ShowMatchIDs bool   // Include match IDs (for log files)
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	if opts.PlayerName == "" {
		opts.PlayerName = "You"
	}
	if opts.ComputerName == "" {
		opts.ComputerName = "Computer"
	}
	return &EventFormatter{opts: opts}
}

// Format formats any game event. Events without a textual form, such as a
// round being dealt face down, return an empty string.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case MatchStartedEvent:
		return ef.FormatMatchStart(e)
	case RoundRevealedEvent:
		return ef.FormatRoundReveal(e)
	case MatchEndedEvent:
		return ef.FormatMatchEnd(e)
	case ResetEvent:
		return ef.FormatReset(e)
	default:
		return ""
	}
}

// FormatMatchStart formats a match start event
func (ef *EventFormatter) FormatMatchStart(e MatchStartedEvent) string {
	text := fmt.Sprintf("*** NEW MATCH: first to %d ***", e.TargetWins)
	if ef.opts.ShowMatchIDs {
		text += fmt.Sprintf(" [%s]", e.MatchID)
	}
	return text
}

// FormatRoundReveal formats a revealed round, e.g.
// "Round 2: You K♠ vs Computer 7♥ - You win (2-0)"
func (ef *EventFormatter) FormatRoundReveal(e RoundRevealedEvent) string {
	var verdict string
	switch e.Outcome {
	case RoundWin:
		verdict = fmt.Sprintf("%s win", ef.opts.PlayerName)
	case RoundLose:
		verdict = fmt.Sprintf("%s wins", ef.opts.ComputerName)
	default:
		verdict = "draw"
	}
	return fmt.Sprintf("Round %d: %s %s vs %s %s - %s (%d-%d)",
		e.Round,
		ef.opts.PlayerName, e.PlayerCard,
		ef.opts.ComputerName, e.ComputerCard,
		verdict, e.PlayerScore, e.ComputerScore)
}

// FormatMatchEnd formats a match end event
func (ef *EventFormatter) FormatMatchEnd(e MatchEndedEvent) string {
	headline := "DEFEAT"
	if e.Outcome == MatchVictory {
		headline = "VICTORY"
	}
	return fmt.Sprintf("*** %s %d-%d after %d rounds ***", headline, e.PlayerScore, e.ComputerScore, e.Rounds)
}

// FormatReset formats a reset event
func (ef *EventFormatter) FormatReset(e ResetEvent) string {
	if e.AbandonedMatchID == "" {
		return "Back to setup"
	}
	return "Match abandoned, back to setup"
}
