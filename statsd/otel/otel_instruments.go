package otel

import (
	"context"
	"errors"
	"fmt"
	"math"

	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/embedded"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/nodemetrics/statsd-go/statsd"
)

// instID are the identifying properties of a instrument.
type instID struct {
	// Name is the name of the stream.
	Name string
	// Description is the description of the stream.
	Description string
	// Kind defines the functional group of the instrument.
	Kind sdkmetric.InstrumentKind
	// Unit is the unit of the stream.
	Unit string
}

var (
	errInvalidInstrumentKind = errors.New("unknown instrument kind")
)

type int64Inst struct {
	embedded.Int64Counter
	embedded.Int64UpDownCounter
	embedded.Int64Histogram
	embedded.Int64Gauge

	instID
	meter *meter
}

func (i *int64Inst) Add(_ context.Context, incr int64, options ...otelmetric.AddOption) {
	c := otelmetric.NewAddConfig(options)
	key := instrumentKey(i.Name, c.Attributes())
	i.meter.handle(i.meter.client.Count(key, incr, 1))
}

func (i *int64Inst) Record(_ context.Context, value int64, options ...otelmetric.RecordOption) {
	c := otelmetric.NewRecordConfig(options)
	key := instrumentKey(i.Name, c.Attributes())

	var err error
	switch i.Kind {
	case sdkmetric.InstrumentKindHistogram:
		var ms int64
		if ms, err = toMillis(float64(value), i.Unit); err == nil {
			err = i.meter.client.Timing(key, ms, 1)
		}
	case sdkmetric.InstrumentKindGauge:
		err = i.meter.client.Gauge(key, value, 1)
	default:
		err = errInvalidInstrumentKind
	}
	i.meter.handle(err)
}

type float64Inst struct {
	embedded.Float64Counter
	embedded.Float64UpDownCounter
	embedded.Float64Histogram
	embedded.Float64Gauge

	instID
	meter *meter
}

func (i *float64Inst) Add(_ context.Context, incr float64, options ...otelmetric.AddOption) {
	c := otelmetric.NewAddConfig(options)
	key := instrumentKey(i.Name, c.Attributes())
	v, err := roundToInt64(incr)
	if err != nil {
		i.meter.handle(err)
		return
	}
	i.meter.handle(i.meter.client.Count(key, v, 1))
}

func (i *float64Inst) Record(_ context.Context, value float64, options ...otelmetric.RecordOption) {
	c := otelmetric.NewRecordConfig(options)
	key := instrumentKey(i.Name, c.Attributes())

	var err error
	switch i.Kind {
	case sdkmetric.InstrumentKindHistogram:
		var ms int64
		if ms, err = toMillis(value, i.Unit); err == nil {
			err = i.meter.client.Timing(key, ms, 1)
		}
	case sdkmetric.InstrumentKindGauge:
		err = i.meter.client.GaugeDouble(key, value, 1)
	default:
		err = errInvalidInstrumentKind
	}
	i.meter.handle(err)
}

// toMillis converts a histogram value recorded in unit to whole
// milliseconds. Values in unknown units are sent as they are.
func toMillis(value float64, unit string) (int64, error) {
	switch unit {
	case "s":
		value *= 1000
	case "us":
		value /= 1000
	case "ns":
		value /= 1e6
	}
	return roundToInt64(value)
}

// roundToInt64 rounds value to the nearest integer. Non finite values and
// values int64 cannot hold are errors, they must never reach the wire.
func roundToInt64(value float64) (int64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, statsd.ErrNonFiniteValue
	}
	value = math.Round(value)
	// 2^63 is exact as a float64, int64 holds [-2^63, 2^63)
	if value < math.MinInt64 || value >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %g", statsd.ErrValueOutOfRange, value)
	}
	return int64(value), nil
}

type int64Observable struct {
	otelmetric.Int64Observable
	instID
	meter *meter

	embedded.Int64Observer
	embedded.Int64ObservableCounter
	embedded.Int64ObservableUpDownCounter
	embedded.Int64ObservableGauge
}

func newInt64Observable(m *meter, id instID) int64Observable {
	return int64Observable{
		instID: id,
		meter:  m,
	}
}

// Observe sends the observed value as a gauge, whatever the kind of the
// instrument: observable counters report cumulative totals.
func (o int64Observable) Observe(val int64, opts ...otelmetric.ObserveOption) {
	c := otelmetric.NewObserveConfig(opts)
	o.meter.handle(o.meter.client.Gauge(instrumentKey(o.Name, c.Attributes()), val, 1))
}

type float64Observable struct {
	otelmetric.Float64Observable
	instID
	meter *meter

	embedded.Float64Observer
	embedded.Float64ObservableCounter
	embedded.Float64ObservableUpDownCounter
	embedded.Float64ObservableGauge
}

func newFloat64Observable(m *meter, id instID) float64Observable {
	return float64Observable{
		instID: id,
		meter:  m,
	}
}

func (o float64Observable) Observe(val float64, opts ...otelmetric.ObserveOption) {
	c := otelmetric.NewObserveConfig(opts)
	o.meter.handle(o.meter.client.GaugeDouble(instrumentKey(o.Name, c.Attributes()), val, 1))
}

func (m *meter) int64ObservableInstrument(id sdkmetric.Instrument, callbacks []otelmetric.Int64Callback) (int64Observable, error) {
	key := instID{
		Name:        id.Name,
		Description: id.Description,
		Unit:        id.Unit,
		Kind:        id.Kind,
	}
	if m.int64Observables.HasKey(key) && len(callbacks) > 0 {
		warnRepeatedObservableCallbacks(m.errHandler, id)
	}
	return m.int64Observables.Lookup(key, func() (int64Observable, error) {
		inst := newInt64Observable(m, key)
		for _, callback := range callbacks {
			callback := callback
			m.addCallback(func(ctx context.Context) error {
				return callback(ctx, inst)
			})
		}
		return inst, validateInstrumentName(id.Name)
	})
}

func (m *meter) float64ObservableInstrument(id sdkmetric.Instrument, callbacks []otelmetric.Float64Callback) (float64Observable, error) {
	key := instID{
		Name:        id.Name,
		Description: id.Description,
		Unit:        id.Unit,
		Kind:        id.Kind,
	}
	if m.float64Observables.HasKey(key) && len(callbacks) > 0 {
		warnRepeatedObservableCallbacks(m.errHandler, id)
	}
	return m.float64Observables.Lookup(key, func() (float64Observable, error) {
		inst := newFloat64Observable(m, key)
		for _, callback := range callbacks {
			callback := callback
			m.addCallback(func(ctx context.Context) error {
				return callback(ctx, inst)
			})
		}
		return inst, validateInstrumentName(id.Name)
	})
}

// observer is handed to the callbacks given to RegisterCallback.
type observer struct {
	embedded.Observer

	meter   *meter
	allowed map[instID]struct{}
}

var (
	errUnregisteredObservable = errors.New("observable instrument not registered with this callback")
)

func (o *observer) ObserveInt64(obs otelmetric.Int64Observable, value int64, opts ...otelmetric.ObserveOption) {
	inst, ok := obs.(int64Observable)
	if !ok || inst.meter != o.meter {
		o.meter.errHandler(errUnregisteredObservable)
		return
	}
	if _, ok := o.allowed[inst.instID]; !ok {
		o.meter.errHandler(errUnregisteredObservable)
		return
	}
	inst.Observe(value, opts...)
}

func (o *observer) ObserveFloat64(obs otelmetric.Float64Observable, value float64, opts ...otelmetric.ObserveOption) {
	inst, ok := obs.(float64Observable)
	if !ok || inst.meter != o.meter {
		o.meter.errHandler(errUnregisteredObservable)
		return
	}
	if _, ok := o.allowed[inst.instID]; !ok {
		o.meter.errHandler(errUnregisteredObservable)
		return
	}
	inst.Observe(value, opts...)
}

func (m *meter) handle(err error) {
	if err != nil {
		m.errHandler(err)
	}
}
