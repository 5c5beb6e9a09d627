package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/highcard/internal/fileutil"
	"github.com/lox/highcard/internal/simulator"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type SimulateCmd struct {
	Matches int    `short:"n" default:"10000" help:"Number of matches to play"`
	Target  int    `short:"t" default:"3" help:"Wins needed to take a match"`
	Seed    int64  `default:"1" help:"Base seed; each match derives its own"`
	Workers int    `short:"w" default:"0" help:"Parallel workers (0 = GOMAXPROCS)"`
	Out     string `short:"o" type:"path" help:"Write a per-match CSV report here"`
	Verbose bool   `help:"Log progress to stderr"`
}

func (c *SimulateCmd) Run() error {
	level := log.WarnLevel
	if c.Verbose {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Matches:    c.Matches,
		TargetWins: c.Target,
		Seed:       c.Seed,
		Workers:    c.Workers,
		Logger:     logger,
	})

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if c.Out != "" {
		if err := fileutil.WriteAtomic(c.Out, 0o644, stats.WriteCSV); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Out, "matches", stats.Matches)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf(" ♠ ♥ High Card: first to %d ♦ ♣ ", c.Target)))
	fmt.Println()
	fmt.Println(stats.Summary())
	fmt.Printf("Elapsed:      %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
