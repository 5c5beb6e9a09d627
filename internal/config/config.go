package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/highcard/internal/pacing"
)

// Config represents the complete game configuration
type Config struct {
	Game   GameSettings   `hcl:"game,block"`
	Pacing PacingSettings `hcl:"pacing,block"`
	UI     UISettings     `hcl:"ui,block"`
}

// GameSettings contains match settings
type GameSettings struct {
	DefaultTarget  int   `hcl:"default_target,optional"`
	OfferedTargets []int `hcl:"offered_targets,optional"`
	Seed           int64 `hcl:"seed,optional"`
}

// PacingSettings contains presentation delays in milliseconds
type PacingSettings struct {
	FlipDelayMS     int `hcl:"flip_delay_ms,optional"`
	MatchEndDelayMS int `hcl:"match_end_delay_ms,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			DefaultTarget:  3,
			OfferedTargets: []int{3, 5, 10},
			Seed:           0,
		},
		Pacing: PacingSettings{
			FlipDelayMS:     300,
			MatchEndDelayMS: 1000,
		},
		UI: UISettings{
			LogLevel: "info",
			LogFile:  "highcard.log",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults; fields left out of the file keep their default values.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return cfg.merge(Default()), nil
}

// fileConfig mirrors Config with every block optional so a partial file
// decodes cleanly.
type fileConfig struct {
	Game   *GameSettings `hcl:"game,block"`
	Pacing *filePacing   `hcl:"pacing,block"`
	UI     *UISettings   `hcl:"ui,block"`
}

// filePacing uses pointers because zero is a meaningful delay
type filePacing struct {
	FlipDelayMS     *int `hcl:"flip_delay_ms,optional"`
	MatchEndDelayMS *int `hcl:"match_end_delay_ms,optional"`
}

func (f fileConfig) merge(defaults *Config) *Config {
	config := *defaults
	config.Game.OfferedTargets = append([]int(nil), defaults.Game.OfferedTargets...)

	if f.Game != nil {
		if f.Game.DefaultTarget != 0 {
			config.Game.DefaultTarget = f.Game.DefaultTarget
		}
		if f.Game.OfferedTargets != nil {
			config.Game.OfferedTargets = f.Game.OfferedTargets
		}
		config.Game.Seed = f.Game.Seed
	}

	if f.Pacing != nil {
		if f.Pacing.FlipDelayMS != nil {
			config.Pacing.FlipDelayMS = *f.Pacing.FlipDelayMS
		}
		if f.Pacing.MatchEndDelayMS != nil {
			config.Pacing.MatchEndDelayMS = *f.Pacing.MatchEndDelayMS
		}
	}

	if f.UI != nil {
		if f.UI.LogLevel != "" {
			config.UI.LogLevel = f.UI.LogLevel
		}
		if f.UI.LogFile != "" {
			config.UI.LogFile = f.UI.LogFile
		}
	}

	return &config
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.DefaultTarget < 1 {
		return fmt.Errorf("default target must be at least 1, got %d", c.Game.DefaultTarget)
	}

	if len(c.Game.OfferedTargets) == 0 {
		return fmt.Errorf("at least one offered target is required")
	}
	seen := make(map[int]bool, len(c.Game.OfferedTargets))
	for _, target := range c.Game.OfferedTargets {
		if target < 1 {
			return fmt.Errorf("offered targets must be at least 1, got %d", target)
		}
		if seen[target] {
			return fmt.Errorf("offered target %d listed twice", target)
		}
		seen[target] = true
	}

	if c.Pacing.FlipDelayMS < 0 {
		return fmt.Errorf("flip delay cannot be negative")
	}
	if c.Pacing.MatchEndDelayMS < 0 {
		return fmt.Errorf("match end delay cannot be negative")
	}

	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}

// Delays converts the pacing settings for the pacing package
func (c *Config) Delays() pacing.Delays {
	return pacing.Delays{
		Flip:     time.Duration(c.Pacing.FlipDelayMS) * time.Millisecond,
		MatchEnd: time.Duration(c.Pacing.MatchEndDelayMS) * time.Millisecond,
	}
}

// GetLogLevel returns the parsed log level, falling back to info
func (c *Config) GetLogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// InitialTarget returns the target highlighted on the setup screen: the
// default target when it is offered, otherwise the first offered target.
func (c *Config) InitialTarget() int {
	for _, target := range c.Game.OfferedTargets {
		if target == c.Game.DefaultTarget {
			return target
		}
	}
	if len(c.Game.OfferedTargets) > 0 {
		return c.Game.OfferedTargets[0]
	}
	return c.Game.DefaultTarget
}
