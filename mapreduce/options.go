package mapreduce

import (
	"go.uber.org/zap"

	"github.com/vkolesnikov/partool/metrics"
)

type config struct {
	logger  *zap.Logger
	metrics metrics.Provider
}

func defaultConfig() config {
	return config{
		logger:  zap.NewNop(),
		metrics: metrics.NewNoopProvider(),
	}
}

// Option configures an Engine.
type Option func(*config)

// WithLogger attaches a logger the engine uses for stage-level
// diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics attaches a metrics.Provider the engine records stage
// counters and durations against.
func WithMetrics(m metrics.Provider) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}
