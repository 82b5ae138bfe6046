/*
Package otel bridges the OpenTelemetry metrics API onto a StatsD client.

Synchronous instruments emit one StatsD line per measurement. Observable
instruments are read when the owner of the provider calls Collect, usually
from the same periodic driver that collects the other process metrics.
*/
package otel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/embedded"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/instrumentation"

	"github.com/nodemetrics/statsd-go/statsd"
)

// MeterProvider is an OpenTelemetry MeterProvider whose instruments emit
// StatsD lines through a statsd.ClientInterface.
type MeterProvider struct {
	embedded.MeterProvider

	cfg     Config
	stopped atomic.Bool

	mu     sync.Mutex
	meters map[instrumentation.Scope]*meter
}

var _ otelmetric.MeterProvider = (*MeterProvider)(nil)

// NewMeterProvider returns a provider emitting through the client given
// with WithClient.
func NewMeterProvider(options ...OTELOption) (*MeterProvider, error) {
	cfg := newConfig(options...)

	if cfg.client == nil {
		return nil, statsd.ErrNoClient
	}

	return &MeterProvider{
		cfg:    cfg,
		meters: make(map[instrumentation.Scope]*meter),
	}, nil
}

// Meter returns the meter of the instrumentation scope, creating it once.
func (mp *MeterProvider) Meter(name string, opts ...otelmetric.MeterOption) otelmetric.Meter {
	if name == "" {
		mp.cfg.logger.Warn("Invalid Meter name.", "name", name)
	}

	if mp.stopped.Load() {
		return noop.Meter{}
	}

	c := otelmetric.NewMeterConfig(opts...)

	s := instrumentation.Scope{
		Name:      name,
		Version:   c.InstrumentationVersion(),
		SchemaURL: c.SchemaURL(),
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()
	m, ok := mp.meters[s]
	if !ok {
		m = newMeter(s, mp.cfg)
		mp.meters[s] = m
	}
	return m
}

// Collect runs the callbacks of every observable instrument and sends the
// observed values. The returned error joins the callback errors.
func (mp *MeterProvider) Collect(ctx context.Context) error {
	if mp.stopped.Load() {
		return nil
	}

	mp.mu.Lock()
	meters := make([]*meter, 0, len(mp.meters))
	for _, m := range mp.meters {
		meters = append(meters, m)
	}
	mp.mu.Unlock()

	var errs []error
	for _, m := range meters {
		if err := m.collect(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Shutdown stops the provider: Meter returns no-op meters and Collect does
// nothing. The client is left open, it belongs to the caller.
func (mp *MeterProvider) Shutdown() error {
	mp.stopped.Store(true)
	return nil
}
