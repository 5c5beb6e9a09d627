package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger *log.Logger
	bus    EventBus
	newID  func() string
}

func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		newID:  func() string { return uuid.NewString() },
	}
}

// WithLogger sets the logger. Rejected operations are logged at debug level.
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEventBus sets the bus events are published on. Without it the engine
// uses a private bus reachable through Engine.Events.
func WithEventBus(bus EventBus) EngineOption {
	return func(c *engineConfig) {
		c.bus = bus
	}
}

// WithIDGenerator overrides how match IDs are generated.
func WithIDGenerator(fn func() string) EngineOption {
	return func(c *engineConfig) {
		if fn != nil {
			c.newID = fn
		}
	}
}
