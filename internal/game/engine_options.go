package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger  *log.Logger
	roundID func() string
}

// WithLogger routes engine events to logger.
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithRoundIDs overrides how round identifiers are minted.
func WithRoundIDs(next func() string) EngineOption {
	return func(c *engineConfig) {
		c.roundID = next
	}
}

func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		roundID: uuid.NewString,
	}
}
