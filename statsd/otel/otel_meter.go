package otel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/embedded"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/nodemetrics/statsd-go/statsd"
)

type meter struct {
	embedded.Meter
	scope      instrumentation.Scope
	client     statsd.ClientInterface
	errHandler func(error)

	cacheInts          cacheWithErr[instID, *int64Inst]
	cacheFloats        cacheWithErr[instID, *float64Inst]
	int64Observables   cacheWithErr[instID, int64Observable]
	float64Observables cacheWithErr[instID, float64Observable]

	callbacksMu    sync.Mutex
	callbacks      map[int]func(context.Context) error
	nextCallbackID int
}

var _ otelmetric.Meter = (*meter)(nil)

func newMeter(s instrumentation.Scope, cfg Config) *meter {
	return &meter{
		scope:      s,
		client:     cfg.client,
		errHandler: cfg.errHandler,
		callbacks:  make(map[int]func(context.Context) error),
	}
}

func (m *meter) int64Instrument(name, desc, unit string, kind sdkmetric.InstrumentKind) (*int64Inst, error) {
	id := instID{
		Name:        name,
		Description: desc,
		Unit:        unit,
		Kind:        kind,
	}
	return m.cacheInts.Lookup(id, func() (*int64Inst, error) {
		return &int64Inst{
			instID: id,
			meter:  m,
		}, validateInstrumentName(name)
	})
}

func (m *meter) float64Instrument(name, desc, unit string, kind sdkmetric.InstrumentKind) (*float64Inst, error) {
	id := instID{
		Name:        name,
		Description: desc,
		Unit:        unit,
		Kind:        kind,
	}
	return m.cacheFloats.Lookup(id, func() (*float64Inst, error) {
		return &float64Inst{
			instID: id,
			meter:  m,
		}, validateInstrumentName(name)
	})
}

func (m *meter) Int64Counter(name string, options ...otelmetric.Int64CounterOption) (otelmetric.Int64Counter, error) {
	cfg := otelmetric.NewInt64CounterConfig(options...)
	return m.int64Instrument(name, cfg.Description(), cfg.Unit(), sdkmetric.InstrumentKindCounter)
}

func (m *meter) Int64UpDownCounter(name string, options ...otelmetric.Int64UpDownCounterOption) (otelmetric.Int64UpDownCounter, error) {
	cfg := otelmetric.NewInt64UpDownCounterConfig(options...)
	return m.int64Instrument(name, cfg.Description(), cfg.Unit(), sdkmetric.InstrumentKindUpDownCounter)
}

func (m *meter) Int64Histogram(name string, options ...otelmetric.Int64HistogramOption) (otelmetric.Int64Histogram, error) {
	cfg := otelmetric.NewInt64HistogramConfig(options...)
	return m.int64Instrument(name, cfg.Description(), cfg.Unit(), sdkmetric.InstrumentKindHistogram)
}

func (m *meter) Int64Gauge(name string, options ...otelmetric.Int64GaugeOption) (otelmetric.Int64Gauge, error) {
	cfg := otelmetric.NewInt64GaugeConfig(options...)
	return m.int64Instrument(name, cfg.Description(), cfg.Unit(), sdkmetric.InstrumentKindGauge)
}

var (
	errPrecisionLoss = errors.New("warning: float counters are rounded to int and will lose precision")
)

func (m *meter) Float64Counter(name string, options ...otelmetric.Float64CounterOption) (otelmetric.Float64Counter, error) {
	cfg := otelmetric.NewFloat64CounterConfig(options...)
	m.errHandler(fmt.Errorf("%w: %s", errPrecisionLoss, name))
	return m.float64Instrument(name, cfg.Description(), cfg.Unit(), sdkmetric.InstrumentKindCounter)
}

func (m *meter) Float64UpDownCounter(name string, options ...otelmetric.Float64UpDownCounterOption) (otelmetric.Float64UpDownCounter, error) {
	cfg := otelmetric.NewFloat64UpDownCounterConfig(options...)
	m.errHandler(fmt.Errorf("%w: %s", errPrecisionLoss, name))
	return m.float64Instrument(name, cfg.Description(), cfg.Unit(), sdkmetric.InstrumentKindUpDownCounter)
}

func (m *meter) Float64Histogram(name string, options ...otelmetric.Float64HistogramOption) (otelmetric.Float64Histogram, error) {
	cfg := otelmetric.NewFloat64HistogramConfig(options...)
	return m.float64Instrument(name, cfg.Description(), cfg.Unit(), sdkmetric.InstrumentKindHistogram)
}

func (m *meter) Float64Gauge(name string, options ...otelmetric.Float64GaugeOption) (otelmetric.Float64Gauge, error) {
	cfg := otelmetric.NewFloat64GaugeConfig(options...)
	return m.float64Instrument(name, cfg.Description(), cfg.Unit(), sdkmetric.InstrumentKindGauge)
}

func (m *meter) Int64ObservableCounter(name string, options ...otelmetric.Int64ObservableCounterOption) (otelmetric.Int64ObservableCounter, error) {
	cfg := otelmetric.NewInt64ObservableCounterConfig(options...)
	id := sdkmetric.Instrument{
		Name:        name,
		Description: cfg.Description(),
		Unit:        cfg.Unit(),
		Kind:        sdkmetric.InstrumentKindObservableCounter,
		Scope:       m.scope,
	}
	return m.int64ObservableInstrument(id, cfg.Callbacks())
}

func (m *meter) Int64ObservableUpDownCounter(name string, options ...otelmetric.Int64ObservableUpDownCounterOption) (otelmetric.Int64ObservableUpDownCounter, error) {
	cfg := otelmetric.NewInt64ObservableUpDownCounterConfig(options...)
	id := sdkmetric.Instrument{
		Name:        name,
		Description: cfg.Description(),
		Unit:        cfg.Unit(),
		Kind:        sdkmetric.InstrumentKindObservableUpDownCounter,
		Scope:       m.scope,
	}
	return m.int64ObservableInstrument(id, cfg.Callbacks())
}

func (m *meter) Int64ObservableGauge(name string, options ...otelmetric.Int64ObservableGaugeOption) (otelmetric.Int64ObservableGauge, error) {
	cfg := otelmetric.NewInt64ObservableGaugeConfig(options...)
	id := sdkmetric.Instrument{
		Name:        name,
		Description: cfg.Description(),
		Unit:        cfg.Unit(),
		Kind:        sdkmetric.InstrumentKindObservableGauge,
		Scope:       m.scope,
	}
	return m.int64ObservableInstrument(id, cfg.Callbacks())
}

func (m *meter) Float64ObservableCounter(name string, options ...otelmetric.Float64ObservableCounterOption) (otelmetric.Float64ObservableCounter, error) {
	cfg := otelmetric.NewFloat64ObservableCounterConfig(options...)
	id := sdkmetric.Instrument{
		Name:        name,
		Description: cfg.Description(),
		Unit:        cfg.Unit(),
		Kind:        sdkmetric.InstrumentKindObservableCounter,
		Scope:       m.scope,
	}
	return m.float64ObservableInstrument(id, cfg.Callbacks())
}

func (m *meter) Float64ObservableUpDownCounter(name string, options ...otelmetric.Float64ObservableUpDownCounterOption) (otelmetric.Float64ObservableUpDownCounter, error) {
	cfg := otelmetric.NewFloat64ObservableUpDownCounterConfig(options...)
	id := sdkmetric.Instrument{
		Name:        name,
		Description: cfg.Description(),
		Unit:        cfg.Unit(),
		Kind:        sdkmetric.InstrumentKindObservableUpDownCounter,
		Scope:       m.scope,
	}
	return m.float64ObservableInstrument(id, cfg.Callbacks())
}

func (m *meter) Float64ObservableGauge(name string, options ...otelmetric.Float64ObservableGaugeOption) (otelmetric.Float64ObservableGauge, error) {
	cfg := otelmetric.NewFloat64ObservableGaugeConfig(options...)
	id := sdkmetric.Instrument{
		Name:        name,
		Description: cfg.Description(),
		Unit:        cfg.Unit(),
		Kind:        sdkmetric.InstrumentKindObservableGauge,
		Scope:       m.scope,
	}
	return m.float64ObservableInstrument(id, cfg.Callbacks())
}

var (
	errForeignObservable = errors.New("observable instrument was not created by this meter")
)

// RegisterCallback registers f to be called on every collection. f may only
// observe the instruments passed here.
func (m *meter) RegisterCallback(f otelmetric.Callback, instruments ...otelmetric.Observable) (otelmetric.Registration, error) {
	if len(instruments) == 0 {
		// nothing to observe, f would never be able to report
		return noopRegistration{}, nil
	}

	obs := &observer{meter: m, allowed: make(map[instID]struct{}, len(instruments))}
	for _, inst := range instruments {
		switch o := inst.(type) {
		case int64Observable:
			if o.meter != m {
				return nil, errForeignObservable
			}
			obs.allowed[o.instID] = struct{}{}
		case float64Observable:
			if o.meter != m {
				return nil, errForeignObservable
			}
			obs.allowed[o.instID] = struct{}{}
		default:
			return nil, fmt.Errorf("%w: %T", errForeignObservable, inst)
		}
	}

	id := m.addCallback(func(ctx context.Context) error {
		return f(ctx, obs)
	})
	return &registration{unregister: func() error {
		m.removeCallback(id)
		return nil
	}}, nil
}

func (m *meter) addCallback(f func(context.Context) error) int {
	m.callbacksMu.Lock()
	defer m.callbacksMu.Unlock()
	id := m.nextCallbackID
	m.nextCallbackID++
	m.callbacks[id] = f
	return id
}

func (m *meter) removeCallback(id int) {
	m.callbacksMu.Lock()
	defer m.callbacksMu.Unlock()
	delete(m.callbacks, id)
}

// collect runs the callbacks in registration order.
func (m *meter) collect(ctx context.Context) error {
	m.callbacksMu.Lock()
	ids := make([]int, 0, len(m.callbacks))
	for id := range m.callbacks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	callbacks := make([]func(context.Context) error, 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, m.callbacks[id])
	}
	m.callbacksMu.Unlock()

	var errs []error
	for _, callback := range callbacks {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := callback(ctx); err != nil {
			m.errHandler(err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type registration struct {
	embedded.Registration
	once       sync.Once
	unregister func() error
}

func (r *registration) Unregister() error {
	var err error
	r.once.Do(func() {
		err = r.unregister()
	})
	return err
}

type noopRegistration struct {
	embedded.Registration
}

func (noopRegistration) Unregister() error { return nil }
