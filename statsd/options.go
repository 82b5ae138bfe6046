package statsd

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net"
	"time"
)

var (
	// DefaultResolveTimeout is the default value for the ResolveTimeout option
	DefaultResolveTimeout = 5 * time.Second
)

// Options contains the configuration options for a client.
type Options struct {
	// Logger receives the client diagnostics. Send failures are only logged
	// at debug level.
	Logger *slog.Logger
	// RandSource feeds the sampling decisions.
	RandSource rand.Source
	// Resolver looks up host names that are not IP literals.
	Resolver *net.Resolver
	// ResolveTimeout bounds the lookup of the server name at construction.
	ResolveTimeout time.Duration
}

func resolveOptions(options []Option) (*Options, error) {
	o := &Options{
		Logger:         slog.Default(),
		RandSource:     rand.NewPCG(rand.Uint64(), rand.Uint64()),
		Resolver:       net.DefaultResolver,
		ResolveTimeout: DefaultResolveTimeout,
	}

	for _, option := range options {
		err := option(o)
		if err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Option is a client option. Can return an error if validation fails.
type Option func(*Options) error

// WithLogger sets the Logger option.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			return errors.New("statsd: nil logger")
		}
		o.Logger = logger
		return nil
	}
}

// WithRandSource sets the RandSource option. The source is only used under
// the client lock and does not need to be safe for concurrent use.
func WithRandSource(src rand.Source) Option {
	return func(o *Options) error {
		if src == nil {
			return errors.New("statsd: nil rand source")
		}
		o.RandSource = src
		return nil
	}
}

// WithResolver sets the Resolver option.
func WithResolver(resolver *net.Resolver) Option {
	return func(o *Options) error {
		if resolver == nil {
			return errors.New("statsd: nil resolver")
		}
		o.Resolver = resolver
		return nil
	}
}

// WithResolveTimeout sets the ResolveTimeout option.
func WithResolveTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout <= 0 {
			return errors.New("statsd: resolve timeout must be positive")
		}
		o.ResolveTimeout = timeout
		return nil
	}
}
