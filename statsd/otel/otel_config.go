package otel

import (
	"log/slog"

	"github.com/nodemetrics/statsd-go/statsd"
)

// Config holds the settings of a MeterProvider.
type Config struct {
	client     statsd.ClientInterface
	logger     *slog.Logger
	errHandler func(error)
}

// OTELOption applies a configuration option to the MeterProvider.
type OTELOption func(Config) Config

func newConfig(options ...OTELOption) Config {
	cfg := Config{}

	for _, option := range options {
		cfg = option(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.errHandler == nil {
		logger := cfg.logger
		cfg.errHandler = func(err error) {
			logger.Debug("statsd otel bridge", "err", err)
		}
	}
	return cfg
}

// WithClient sets the client every instrument emits through.
func WithClient(client statsd.ClientInterface) OTELOption {
	return func(cfg Config) Config {
		cfg.client = client
		return cfg
	}
}

// WithLogger sets the logger receiving the provider warnings. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) OTELOption {
	return func(cfg Config) Config {
		cfg.logger = logger
		return cfg
	}
}

// WithErrorHandler sets the function receiving send and validation errors.
// By default they are logged at debug level.
func WithErrorHandler(f func(error)) OTELOption {
	return func(cfg Config) Config {
		cfg.errHandler = f
		return cfg
	}
}
