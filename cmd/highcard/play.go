package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/highcard/internal/config"
	"github.com/lox/highcard/internal/game"
	"github.com/lox/highcard/internal/pacing"
	"github.com/lox/highcard/internal/randutil"
	"github.com/lox/highcard/internal/tui"
)

type PlayCmd struct {
	Config   string `short:"c" default:"highcard.hcl" help:"HCL config file (ignored when missing)"`
	Target   int    `short:"t" help:"Highlight this many wins on the setup screen; added to the choices if not offered"`
	Seed     int64  `help:"Seed for card draws (0 uses the config seed, or the clock)"`
	LogFile  string `help:"Write logs here instead of the configured file"`
	LogLevel string `help:"Override the configured log level"`
	NoDelay  bool   `help:"Skip the card flip and match-end pauses"`
	NoColor  bool   `help:"Render without colors"`
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "highcard",
		Level:           cfg.GetLogLevel(),
	})

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	rng, seed := randutil.Seeded(cfg.Game.Seed)
	logger.Info("Starting interactive game", "seed", seed, "targets", cfg.Game.OfferedTargets)

	engine := game.NewEngine(rng, game.WithLogger(logger.WithPrefix("engine")))

	pacer := pacing.New(quartz.NewReal(), cfg.Delays())
	pacer.SetLogger(logger)

	model := tui.New(tui.Options{
		Engine:         engine,
		Pacer:          pacer,
		Logger:         logger,
		OfferedTargets: cfg.Game.OfferedTargets,
		InitialTarget:  cfg.InitialTarget(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, model)
}

// loadConfig reads the config file and applies flag overrides
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Target != 0 {
		if c.Target < 1 {
			return nil, fmt.Errorf("target must be at least 1, got %d", c.Target)
		}
		cfg.Game.DefaultTarget = c.Target
		if !slices.Contains(cfg.Game.OfferedTargets, c.Target) {
			cfg.Game.OfferedTargets = append(cfg.Game.OfferedTargets, c.Target)
			slices.Sort(cfg.Game.OfferedTargets)
		}
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.NoDelay {
		cfg.Pacing = config.PacingSettings{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
