package pool

import (
	"go.uber.org/zap"

	"github.com/vkolesnikov/partool/metrics"
)

// config holds Pool configuration resolved from defaults plus Options.
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

// Option configures a Pool constructed via New.
type Option func(*config)

// WithLogger sets the structured logger used for worker lifecycle and task
// failure events. Default: a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics.Provider used to record queue depth, task
// duration, and failure counts. Default: metrics.NewNoopProvider().
func WithMetrics(m metrics.Provider) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}
