/*
Package statsd provides a Go StatsD client that emits counters, gauges and
timers as plain-text datagrams over UDP.

The client is fire-and-forget: delivery is best-effort, never acknowledged and
never retried. A client that is disabled, or that failed to resolve its server
at construction, accepts every call and silently drops it, so call sites can
stay unconditional.

Example Usage:

	cfg := statsd.DefaultConfig()
	cfg.Enable = true
	cfg.Namespace = "app."
	cfg.NodeTag = "node1"

	c, err := statsd.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	c.Inc("net.{HOSTNAME}.rx", 1)
	c.Timing("db.query", 42, 0.5)
*/
package statsd

//go:generate mockgen -source=statsd.go -destination=mocks/statsd.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrNoClient is returned if statsd reporting methods are invoked on
	// a nil client.
	ErrNoClient = errors.New("statsd client is nil")
	// ErrNonFiniteValue is returned when a double value is NaN or infinite.
	ErrNonFiniteValue = errors.New("statsd: value is not finite")
	// ErrNegativeTiming is returned when a timing is below zero.
	ErrNegativeTiming = errors.New("statsd: timing is negative")
	// ErrValueOutOfRange is returned when a double cannot be held by an int64
	// where the line format needs an integer.
	ErrValueOutOfRange = errors.New("statsd: value out of int64 range")
	// ErrUnknownMetricType is returned by the low level API for a type other
	// than Counter, Gauge or Timing.
	ErrUnknownMetricType = errors.New("statsd: unknown metric type")
)

// ClientInterface is an interface that exposes the common client functions for the
// purpose of being able to provide a no-op client or even mocking. This can aid
// downstream users' with their testing.
type ClientInterface interface {
	// Inc is just Count of 1.
	Inc(key string, rate float64) error

	// Dec is just Count of -1.
	Dec(key string, rate float64) error

	// Count sends a counter delta.
	Count(key string, value int64, rate float64) error

	// Gauge measures the value of a metric at a particular time.
	Gauge(key string, value int64, rate float64) error

	// GaugeDouble is Gauge for a floating point value.
	GaugeDouble(key string, value float64, rate float64) error

	// Timing sends a duration sample in milliseconds.
	Timing(key string, ms int64, rate float64) error

	// TimingDuration sends a duration sample, truncated to milliseconds.
	TimingDuration(key string, value time.Duration, rate float64) error

	// Send writes message as a single datagram without formatting or sampling.
	Send(message string) error

	// SendMetric samples, formats and writes one integer measurement.
	SendMetric(key string, value int64, metricType MetricType, rate float64) error

	// SendDouble samples, formats and writes one floating point measurement.
	// Timing values are rounded to whole milliseconds.
	SendDouble(key string, value float64, metricType MetricType, rate float64) error

	// Close releases the socket. Sends racing with it may return a write error.
	Close() error

	// GetTelemetry returns the telemetry counters of the client since it started.
	GetTelemetry() Telemetry
}

// State is the lifecycle state of a Client.
type State int32

const (
	// StateInert clients accept every call and drop it: the client is
	// disabled or its endpoint could not be set up.
	StateInert State = iota
	// StateReady clients write datagrams.
	StateReady
	// StateClosed clients have released their socket.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInert:
		return "inert"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// A Client is a handle for sending messages to a StatsD server. It is safe to
// use one Client from multiple goroutines simultaneously.
type Client struct {
	enabled   bool
	host      string
	port      uint16
	nodeTag   string
	namespace string
	// prefix is the cleaned namespace written in front of every key.
	prefix string

	state    atomic.Int32
	writer   io.WriteCloser
	endpoint netip.AddrPort
	logger   *slog.Logger

	randomLock sync.Mutex
	random     *rand.Rand

	closeOnce sync.Once
	closeErr  error

	telemetry telemetry
}

// Verify that Client implements the ClientInterface.
// https://golang.org/doc/faq#guarantee_satisfies_interface
var _ ClientInterface = &Client{}

// New returns a new Client for cfg. Failing to resolve the server or to open
// the socket is not an error: the returned client is inert and drops every
// measurement. The error is only set when one of the options is invalid.
func New(cfg Config, options ...Option) (*Client, error) {
	o, err := resolveOptions(options)
	if err != nil {
		return nil, err
	}
	c := newClient(cfg, o)
	if !c.enabled {
		c.logger.Debug("statsd client disabled")
		return c, nil
	}

	endpoint, err := resolveEndpoint(o.Resolver, cfg.Host, cfg.Port, o.ResolveTimeout)
	if err != nil {
		c.logger.Warn("statsd endpoint resolution failed, metrics are dropped", "host", cfg.Host, "port", cfg.Port, "err", err)
		return c, nil
	}
	w, err := newUDPWriter(endpoint)
	if err != nil {
		c.logger.Warn("statsd socket creation failed, metrics are dropped", "endpoint", endpoint, "err", err)
		return c, nil
	}

	c.writer = w
	c.endpoint = endpoint
	c.state.Store(int32(StateReady))
	c.logger.Debug("statsd client ready", "endpoint", endpoint)
	return c, nil
}

// NewWithWriter creates a new Client writing every datagram to w. The client
// is ready as soon as cfg.Enable is set and takes ownership of w.
func NewWithWriter(w io.WriteCloser, cfg Config, options ...Option) (*Client, error) {
	if w == nil {
		return nil, errors.New("statsd: nil writer")
	}
	o, err := resolveOptions(options)
	if err != nil {
		return nil, err
	}
	c := newClient(cfg, o)
	c.writer = w
	if c.enabled {
		c.state.Store(int32(StateReady))
	}
	return c, nil
}

func newClient(cfg Config, o *Options) *Client {
	c := &Client{
		enabled:   cfg.Enable,
		host:      cfg.Host,
		port:      cfg.Port,
		nodeTag:   cfg.NodeTag,
		namespace: cfg.Namespace,
		prefix:    Sanitize(cfg.Namespace),
		logger:    o.Logger,
		random:    rand.New(o.RandSource),
	}
	c.state.Store(int32(StateInert))
	return c
}

// Enabled reports whether the client was configured to emit metrics.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// Initialized reports whether the endpoint was resolved and the socket is usable.
func (c *Client) Initialized() bool {
	return c.State() == StateReady
}

// State returns the lifecycle state of the client.
func (c *Client) State() State {
	if c == nil {
		return StateInert
	}
	return State(c.state.Load())
}

// Endpoint returns the resolved server address. It is the zero value unless
// the client was built by New and initialized.
func (c *Client) Endpoint() netip.AddrPort {
	return c.endpoint
}

// Host returns the configured host, verbatim.
func (c *Client) Host() string { return c.host }

// Port returns the configured port.
func (c *Client) Port() uint16 { return c.port }

// NodeTag returns the value substituted for {HOSTNAME} in keys.
func (c *Client) NodeTag() string { return c.nodeTag }

// Namespace returns the configured namespace, verbatim.
func (c *Client) Namespace() string { return c.namespace }

// Inc is just Count of 1.
func (c *Client) Inc(key string, rate float64) error {
	return c.SendMetric(key, 1, Counter, rate)
}

// Dec is just Count of -1.
func (c *Client) Dec(key string, rate float64) error {
	return c.SendMetric(key, -1, Counter, rate)
}

// Count sends a counter delta.
func (c *Client) Count(key string, value int64, rate float64) error {
	return c.SendMetric(key, value, Counter, rate)
}

// Gauge measures the value of a metric at a particular time.
func (c *Client) Gauge(key string, value int64, rate float64) error {
	return c.SendMetric(key, value, Gauge, rate)
}

// GaugeDouble measures the floating point value of a metric at a particular time.
func (c *Client) GaugeDouble(key string, value float64, rate float64) error {
	return c.SendDouble(key, value, Gauge, rate)
}

// Timing sends timing information in milliseconds.
// It is flushed by statsd with percentiles, mean and other info (https://github.com/etsy/statsd/blob/master/docs/metric_types.md#timing)
func (c *Client) Timing(key string, ms int64, rate float64) error {
	return c.SendMetric(key, ms, Timing, rate)
}

// TimingDuration sends value truncated to whole milliseconds.
func (c *Client) TimingDuration(key string, value time.Duration, rate float64) error {
	return c.SendMetric(key, value.Milliseconds(), Timing, rate)
}

// SendMetric is the low level API behind the typed operations: it samples,
// formats one line and writes it as one datagram.
func (c *Client) SendMetric(key string, value int64, metricType MetricType, rate float64) error {
	if c == nil {
		return ErrNoClient
	}
	if !metricType.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMetricType, metricType)
	}
	if metricType == Timing && value < 0 {
		return ErrNegativeTiming
	}
	c.telemetry.submitted(metricType)
	if !c.active() {
		return nil
	}
	if !c.ShouldSend(rate) {
		c.telemetry.sampledOut.Add(1)
		return nil
	}

	buf := borrowBuffer()
	defer returnBuffer(buf)
	*buf = appendIntegerMetric((*buf)[:0], metricType, c.prefix, key, c.nodeTag, value, rate)
	return c.write(*buf)
}

// SendDouble is SendMetric for floating point values. Non finite values are
// rejected with ErrNonFiniteValue and never sent. Timing values are rounded
// to the nearest millisecond so that ms lines always carry an integer.
func (c *Client) SendDouble(key string, value float64, metricType MetricType, rate float64) error {
	if c == nil {
		return ErrNoClient
	}
	if !metricType.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMetricType, metricType)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrNonFiniteValue
	}
	if metricType == Timing && value < 0 {
		return ErrNegativeTiming
	}
	if metricType == Timing {
		value = math.Round(value)
		// float64(math.MaxInt64) is 2^63, the first value past the int64 range
		if value >= math.MaxInt64 {
			return fmt.Errorf("%w: %g", ErrValueOutOfRange, value)
		}
	}
	c.telemetry.submitted(metricType)
	if !c.active() {
		return nil
	}
	if !c.ShouldSend(rate) {
		c.telemetry.sampledOut.Add(1)
		return nil
	}

	buf := borrowBuffer()
	defer returnBuffer(buf)
	if metricType == Timing {
		*buf = appendIntegerMetric((*buf)[:0], metricType, c.prefix, key, c.nodeTag, int64(value), rate)
		return c.write(*buf)
	}
	*buf = appendFloatMetric((*buf)[:0], metricType, c.prefix, key, c.nodeTag, value, rate)
	return c.write(*buf)
}

// Send writes message as is, in a single datagram. The message may hold
// several newline separated lines.
func (c *Client) Send(message string) error {
	if c == nil {
		return ErrNoClient
	}
	if !c.active() {
		return nil
	}
	buf := borrowBuffer()
	defer returnBuffer(buf)
	*buf = append((*buf)[:0], message...)
	return c.write(*buf)
}

// ShouldSend decides whether a measurement sampled at rate is transmitted.
func (c *Client) ShouldSend(rate float64) bool {
	if c == nil {
		return false
	}
	return shouldSample(rate, c.random, &c.randomLock)
}

// active reports whether I/O should happen and accounts for suppressed calls.
func (c *Client) active() bool {
	if State(c.state.Load()) == StateReady {
		return true
	}
	c.telemetry.suppressed.Add(1)
	return false
}

func (c *Client) write(data []byte) error {
	n, err := c.writer.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		c.telemetry.payloadsDropped.Add(1)
		c.telemetry.bytesDropped.Add(uint64(len(data)))
		c.logger.Debug("statsd write failed", "err", err)
		return fmt.Errorf("statsd write: %w", err)
	}
	c.telemetry.payloadsSent.Add(1)
	c.telemetry.bytesSent.Add(uint64(n))
	return nil
}

// Close releases the socket. Measurements sent after Close are dropped.
// A send racing with Close may still reach the closed socket and return its
// write error. Calling Close more than once is harmless.
func (c *Client) Close() error {
	if c == nil {
		return ErrNoClient
	}
	c.closeOnce.Do(func() {
		c.state.Store(int32(StateClosed))
		if c.writer != nil {
			c.closeErr = c.writer.Close()
		}
	})
	return c.closeErr
}

// GetTelemetry returns the telemetry counters of the client since it started.
func (c *Client) GetTelemetry() Telemetry {
	if c == nil {
		return Telemetry{}
	}
	return c.telemetry.snapshot()
}

// resolveEndpoint turns host and port into an address. IP literals are parsed
// locally; names are looked up once.
func resolveEndpoint(resolver *net.Resolver, host string, port uint16, timeout time.Duration) (netip.AddrPort, error) {
	if len(host) > 1 && host[0] == '[' && host[len(host)-1] == ']' {
		host = host[1 : len(host)-1]
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		return netip.AddrPortFrom(addr.Unmap(), port), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	addrs, err := resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("resolve %q: %w", host, err)
	}
	for _, addr := range addrs {
		if addr.IsValid() {
			return netip.AddrPortFrom(addr.Unmap(), port), nil
		}
	}
	return netip.AddrPort{}, fmt.Errorf("resolve %q: no address", host)
}
