package statsd

import "sync/atomic"

// Telemetry represents internal metrics about the client behavior since it started.
type Telemetry struct {
	//
	// Those are produced by the 'Client'
	//

	// TotalMetrics is the total number of metrics submitted through the
	// typed and low level operations, sampled out or dropped ones included.
	TotalMetrics uint64
	// TotalMetricsCounter is the total number of counters submitted.
	TotalMetricsCounter uint64
	// TotalMetricsGauge is the total number of gauges submitted.
	TotalMetricsGauge uint64
	// TotalMetricsTiming is the total number of timings submitted.
	TotalMetricsTiming uint64
	// TotalMetricsSampledOut is the number of metrics the sample rate discarded.
	TotalMetricsSampledOut uint64
	// TotalSuppressed is the number of calls dropped because the client is
	// disabled, inert or closed.
	TotalSuppressed uint64

	//
	// Those are produced by the transport
	//

	// TotalPayloadsSent is the total number of datagrams written.
	TotalPayloadsSent uint64
	// TotalBytesSent is the total number of bytes written.
	TotalBytesSent uint64
	// TotalPayloadsDropped is the number of datagrams the transport failed to write.
	TotalPayloadsDropped uint64
	// TotalBytesDropped is the number of bytes the transport failed to write.
	TotalBytesDropped uint64
}

type telemetry struct {
	counters        atomic.Uint64
	gauges          atomic.Uint64
	timings         atomic.Uint64
	sampledOut      atomic.Uint64
	suppressed      atomic.Uint64
	payloadsSent    atomic.Uint64
	bytesSent       atomic.Uint64
	payloadsDropped atomic.Uint64
	bytesDropped    atomic.Uint64
}

func (t *telemetry) submitted(metricType MetricType) {
	switch metricType {
	case Counter:
		t.counters.Add(1)
	case Gauge:
		t.gauges.Add(1)
	case Timing:
		t.timings.Add(1)
	}
}

func (t *telemetry) snapshot() Telemetry {
	s := Telemetry{
		TotalMetricsCounter:    t.counters.Load(),
		TotalMetricsGauge:      t.gauges.Load(),
		TotalMetricsTiming:     t.timings.Load(),
		TotalMetricsSampledOut: t.sampledOut.Load(),
		TotalSuppressed:        t.suppressed.Load(),
		TotalPayloadsSent:      t.payloadsSent.Load(),
		TotalBytesSent:         t.bytesSent.Load(),
		TotalPayloadsDropped:   t.payloadsDropped.Load(),
		TotalBytesDropped:      t.bytesDropped.Load(),
	}
	s.TotalMetrics = s.TotalMetricsCounter + s.TotalMetricsGauge + s.TotalMetricsTiming
	return s
}
