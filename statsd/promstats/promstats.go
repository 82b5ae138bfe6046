// Package promstats exposes the telemetry of a statsd client to Prometheus,
// so a process scraped by Prometheus can tell how many datagrams its StatsD
// emission sent, sampled out or lost.
package promstats

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nodemetrics/statsd-go/statsd"
)

// TelemetrySource is implemented by *statsd.Client and statsd.ClientInterface.
type TelemetrySource interface {
	GetTelemetry() statsd.Telemetry
}

type collector struct {
	src TelemetrySource

	metrics         *prometheus.Desc
	sampledOut      *prometheus.Desc
	suppressed      *prometheus.Desc
	payloadsSent    *prometheus.Desc
	bytesSent       *prometheus.Desc
	payloadsDropped *prometheus.Desc
	bytesDropped    *prometheus.Desc
}

var _ prometheus.Collector = (*collector)(nil)

// NewCollector returns a collector reading src on every scrape. Metric names
// are <namespace>_statsd_<name>_total; namespace may be empty.
func NewCollector(src TelemetrySource, namespace string) prometheus.Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "statsd", name), help, labels, nil)
	}
	return &collector{
		src:             src,
		metrics:         desc("metrics_total", "Metrics submitted to the client, by type.", "type"),
		sampledOut:      desc("metrics_sampled_out_total", "Metrics discarded by the sample rate."),
		suppressed:      desc("suppressed_total", "Calls dropped because the client is disabled, inert or closed."),
		payloadsSent:    desc("payloads_sent_total", "Datagrams written to the socket."),
		bytesSent:       desc("bytes_sent_total", "Bytes written to the socket."),
		payloadsDropped: desc("payloads_dropped_total", "Datagrams the socket failed to write."),
		bytesDropped:    desc("bytes_dropped_total", "Bytes the socket failed to write."),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.metrics
	ch <- c.sampledOut
	ch <- c.suppressed
	ch <- c.payloadsSent
	ch <- c.bytesSent
	ch <- c.payloadsDropped
	ch <- c.bytesDropped
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	t := c.src.GetTelemetry()

	counter := func(desc *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v), labels...)
	}
	counter(c.metrics, t.TotalMetricsCounter, "counter")
	counter(c.metrics, t.TotalMetricsGauge, "gauge")
	counter(c.metrics, t.TotalMetricsTiming, "timing")
	counter(c.sampledOut, t.TotalMetricsSampledOut)
	counter(c.suppressed, t.TotalSuppressed)
	counter(c.payloadsSent, t.TotalPayloadsSent)
	counter(c.bytesSent, t.TotalBytesSent)
	counter(c.payloadsDropped, t.TotalPayloadsDropped)
	counter(c.bytesDropped, t.TotalBytesDropped)
}
