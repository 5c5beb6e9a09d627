package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/highcard/internal/game"
	"github.com/lox/highcard/internal/randutil"
	"github.com/lox/highcard/internal/statistics"
)

// maxRoundsPerMatch guards against a broken engine looping forever. A real
// match to target t ends within 2t-1 decisive rounds; this bound only trips
// on an absurd run of draws.
const maxRoundsPerMatch = 100000

// Config holds configuration for running simulations
type Config struct {
	Matches    int
	TargetWins int
	Seed       int64
	Workers    int
	Logger     *log.Logger
}

// Simulator plays high-card matches headless, with no presentation delays
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Validate checks the simulation parameters
func (s *Simulator) Validate() error {
	if s.config.Matches < 1 {
		return fmt.Errorf("matches must be at least 1, got %d", s.config.Matches)
	}
	if s.config.TargetWins < 1 {
		return fmt.Errorf("target wins must be at least 1, got %d", s.config.TargetWins)
	}
	return nil
}

// Run plays every match and returns the merged statistics. Results are
// recorded in match order, so a seed produces the same report for any
// number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation",
		"matches", s.config.Matches,
		"target", s.config.TargetWins,
		"seed", s.config.Seed,
		"workers", s.config.Workers)

	results := make([]statistics.MatchResult, s.config.Matches)
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range s.config.Matches {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for range s.config.Workers {
		g.Go(func() error {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				seed := randutil.Derive(s.config.Seed, i)
				result, err := PlayMatch(randutil.New(seed), s.config.TargetWins)
				if err != nil {
					return fmt.Errorf("match %d (seed %d): %w", i, seed, err)
				}
				result.Seed = seed
				results[i] = result
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete", "victories", stats.Victories, "defeats", stats.Defeats, "rounds", stats.Rounds)
	return stats, nil
}

// PlayMatch plays one match to completion, revealing and advancing as fast
// as the engine allows.
func PlayMatch(src randutil.Source, targetWins int) (statistics.MatchResult, error) {
	e := game.NewEngine(src)
	if err := e.StartMatch(targetWins); err != nil {
		return statistics.MatchResult{}, err
	}

	for range maxRoundsPerMatch {
		if _, err := e.RevealRound(); err != nil {
			return statistics.MatchResult{}, err
		}
		if e.CheckMatchEnd() {
			return statistics.FromSnapshot(e.Snapshot(), 0), nil
		}
		if err := e.AdvanceRound(); err != nil {
			return statistics.MatchResult{}, err
		}
	}
	return statistics.MatchResult{}, fmt.Errorf("match did not finish within %d rounds", maxRoundsPerMatch)
}
