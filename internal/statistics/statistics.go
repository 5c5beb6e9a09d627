package statistics

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/highcard/internal/game"
)

// MatchResult represents the outcome of a single match
type MatchResult struct {
	Outcome    game.MatchOutcome
	TargetWins int
	Rounds     int   // Rounds dealt, including draws
	Wins       int   // Rounds won by the player
	Losses     int   // Rounds won by the computer
	Draws      int   // Rounds with equal ranks
	Seed       int64 // RNG seed for this match (for replay)
}

// FromSnapshot builds a result from the final snapshot of an ended match.
// Draws are derived from the round count.
func FromSnapshot(snap game.Snapshot, seed int64) MatchResult {
	m := snap.Match
	return MatchResult{
		Outcome:    m.Outcome,
		TargetWins: m.TargetWins,
		Rounds:     m.Rounds,
		Wins:       m.PlayerScore,
		Losses:     m.ComputerScore,
		Draws:      m.Rounds - m.PlayerScore - m.ComputerScore,
		Seed:       seed,
	}
}

// Statistics aggregates match results
type Statistics struct {
	Matches   int
	Victories int
	Defeats   int

	Rounds int
	Wins   int
	Losses int
	Draws  int

	LongestMatch  int   // Most rounds in a single match
	LongestSeed   int64 // Seed of the longest match
	ShortestMatch int   // Fewest rounds in a single match

	results []MatchResult
}

// Add records one match result
func (s *Statistics) Add(r MatchResult) {
	s.Matches++
	switch r.Outcome {
	case game.MatchVictory:
		s.Victories++
	case game.MatchDefeat:
		s.Defeats++
	}

	s.Rounds += r.Rounds
	s.Wins += r.Wins
	s.Losses += r.Losses
	s.Draws += r.Draws

	if r.Rounds > s.LongestMatch {
		s.LongestMatch = r.Rounds
		s.LongestSeed = r.Seed
	}
	if s.ShortestMatch == 0 || r.Rounds < s.ShortestMatch {
		s.ShortestMatch = r.Rounds
	}

	s.results = append(s.results, r)
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	for _, r := range other.results {
		s.Add(r)
	}
}

// Results returns a copy of the recorded results in insertion order
func (s *Statistics) Results() []MatchResult {
	out := make([]MatchResult, len(s.results))
	copy(out, s.results)
	return out
}

// WinRate returns the fraction of matches the player won
func (s *Statistics) WinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Victories) / float64(s.Matches)
}

// WinRateStdError returns the standard error of the win rate
func (s *Statistics) WinRateStdError() float64 {
	if s.Matches < 2 {
		return 0
	}
	p := s.WinRate()
	return math.Sqrt(p * (1 - p) / float64(s.Matches))
}

// WinRateCI95 returns the 95% confidence interval of the win rate,
// clamped to [0, 1]
func (s *Statistics) WinRateCI95() (float64, float64) {
	p := s.WinRate()
	margin := 1.96 * s.WinRateStdError()
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// MeanRounds returns the average number of rounds per match
func (s *Statistics) MeanRounds() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Rounds) / float64(s.Matches)
}

// DrawRate returns the fraction of rounds that were draws
func (s *Statistics) DrawRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.Rounds)
}

// Validate checks that every recorded match obeys the scoring rules
func (s *Statistics) Validate() error {
	if s.Victories+s.Defeats != s.Matches {
		return fmt.Errorf("outcome mismatch: %d victories + %d defeats != %d matches", s.Victories, s.Defeats, s.Matches)
	}
	if s.Wins+s.Losses+s.Draws != s.Rounds {
		return fmt.Errorf("round mismatch: %d+%d+%d != %d rounds", s.Wins, s.Losses, s.Draws, s.Rounds)
	}

	for i, r := range s.results {
		if r.Draws < 0 {
			return fmt.Errorf("match %d: negative draws", i)
		}
		playerAtTarget := r.Wins >= r.TargetWins
		computerAtTarget := r.Losses >= r.TargetWins
		if playerAtTarget == computerAtTarget {
			return fmt.Errorf("match %d: expected exactly one side at target %d, got %d-%d", i, r.TargetWins, r.Wins, r.Losses)
		}
		if playerAtTarget != (r.Outcome == game.MatchVictory) {
			return fmt.Errorf("match %d: outcome %s does not match score %d-%d", i, r.Outcome, r.Wins, r.Losses)
		}
		// The deciding round is always the last one, so the winner has exactly the target.
		if max(r.Wins, r.Losses) != r.TargetWins {
			return fmt.Errorf("match %d: winner overshot target %d", i, r.TargetWins)
		}
	}
	return nil
}

// Summary renders a short multi-line report
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Matches:      %d\n", s.Matches)
	lo, hi := s.WinRateCI95()
	fmt.Fprintf(&b, "Victories:    %d (%.1f%%, 95%% CI %.1f-%.1f%%)\n", s.Victories, s.WinRate()*100, lo*100, hi*100)
	fmt.Fprintf(&b, "Defeats:      %d\n", s.Defeats)
	fmt.Fprintf(&b, "Rounds:       %d (%.2f per match)\n", s.Rounds, s.MeanRounds())
	fmt.Fprintf(&b, "Draw rate:    %.1f%%\n", s.DrawRate()*100)
	fmt.Fprintf(&b, "Shortest:     %d rounds\n", s.ShortestMatch)
	fmt.Fprintf(&b, "Longest:      %d rounds (seed %d)", s.LongestMatch, s.LongestSeed)
	return b.String()
}
