// Package reporter periodically collects process metrics and emits them
// through a statsd client.
package reporter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nodemetrics/statsd-go/statsd"
)

// Collector emits its metrics through client.
type Collector interface {
	Collect(ctx context.Context, client statsd.ClientInterface) error
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func(ctx context.Context, client statsd.ClientInterface) error

func (f CollectorFunc) Collect(ctx context.Context, client statsd.ClientInterface) error {
	return f(ctx, client)
}

// Reporter runs its collectors every period.
type Reporter struct {
	// Logger receives collection errors. Defaults to slog.Default().
	Logger *slog.Logger

	client     statsd.ClientInterface
	period     time.Duration
	collectors []Collector
}

// New returns a reporter. A non positive period falls back to
// statsd.DefaultPeriodSeconds.
func New(client statsd.ClientInterface, period time.Duration, collectors ...Collector) *Reporter {
	if period <= 0 {
		period = statsd.DefaultPeriodSeconds * time.Second
	}
	return &Reporter{
		Logger:     slog.Default(),
		client:     client,
		period:     period,
		collectors: collectors,
	}
}

func (r *Reporter) Period() time.Duration {
	return r.period
}

// CollectOnce runs every collector once and joins their errors.
func (r *Reporter) CollectOnce(ctx context.Context) error {
	var errs []error
	for _, c := range r.collectors {
		if err := c.Collect(ctx, r.client); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run collects on every period boundary until ctx is done. Collection
// errors are logged, they do not stop the reporter.
func (r *Reporter) Run(ctx context.Context) {
	timer := time.NewTimer(untilNextTick(time.Now(), r.period))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if err := r.CollectOnce(ctx); err != nil {
				r.Logger.Warn("Metrics collection failed.", "err", err)
			}
			timer.Reset(untilNextTick(time.Now(), r.period))
		}
	}
}

// untilNextTick returns the delay to the next multiple of period, so that
// every process reporting with the same period reports at the same time.
func untilNextTick(now time.Time, period time.Duration) time.Duration {
	return period - time.Duration(now.UnixNano())%period
}
