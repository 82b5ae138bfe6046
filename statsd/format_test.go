package statsd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendCount(t *testing.T) {
	var buffer []byte
	buffer = appendIntegerMetric(buffer, Counter, "namespace.", "count", "", 2, 1)
	assert.Equal(t, `namespace.count:2|c`, string(buffer))
}

func TestAppendGauge(t *testing.T) {
	var buffer []byte
	buffer = appendIntegerMetric(buffer, Gauge, "namespace.", "gauge", "", -7, 1)
	assert.Equal(t, `namespace.gauge:-7|g`, string(buffer))
}

func TestAppendGaugeDouble(t *testing.T) {
	var buffer []byte
	buffer = appendFloatMetric(buffer, Gauge, "", "gauge", "", 1., 1)
	assert.Equal(t, `gauge:1|g`, string(buffer))

	buffer = appendFloatMetric(buffer[:0], Gauge, "", "gauge", "", 0.1, 1)
	assert.Equal(t, `gauge:0.1|g`, string(buffer))

	// no scientific notation
	buffer = appendFloatMetric(buffer[:0], Gauge, "", "gauge", "", 1.5e-7, 1)
	assert.Equal(t, `gauge:0.00000015|g`, string(buffer))
}

func TestAppendTiming(t *testing.T) {
	var buffer []byte
	buffer = appendIntegerMetric(buffer, Timing, "namespace.", "timing", "", 6, 1)
	assert.Equal(t, `namespace.timing:6|ms`, string(buffer))
}

func TestRate(t *testing.T) {
	var buffer []byte
	buffer = appendIntegerMetric(buffer, Counter, "", "metric", "", 1, 0.1)
	assert.Equal(t, `metric:1|c|@0.1`, string(buffer))

	buffer = appendFloatMetric(buffer[:0], Gauge, "", "metric", "", 1.25, 0.001)
	assert.Equal(t, `metric:1.25|g|@0.001`, string(buffer))
}

func TestNoRateSuffixAtOne(t *testing.T) {
	var buffer []byte
	buffer = appendIntegerMetric(buffer, Counter, "", "metric", "", 1, 1)
	assert.Equal(t, `metric:1|c`, string(buffer))
}

func TestAppendIntegerBounds(t *testing.T) {
	var buffer []byte
	buffer = appendIntegerMetric(buffer, Counter, "", "min", "", math.MinInt64, 1)
	assert.Equal(t, `min:-9223372036854775808|c`, string(buffer))

	buffer = appendIntegerMetric(buffer[:0], Counter, "", "max", "", math.MaxInt64, 1)
	assert.Equal(t, `max:9223372036854775807|c`, string(buffer))
}

func TestMetricTypeString(t *testing.T) {
	assert.Equal(t, "c", Counter.String())
	assert.Equal(t, "g", Gauge.String())
	assert.Equal(t, "ms", Timing.String())
	assert.Equal(t, "MetricType(9)", MetricType(9).String())
}

func TestSanitize(t *testing.T) {
	for _, tc := range []struct {
		key      string
		expected string
	}{
		{"clean.key", "clean.key"},
		{"with space", "with_space"},
		{"colon:pipe|at@", "colon_pipe_at_"},
		{"tab\tnewline\ncr\r", "tab_newline_cr_"},
		{"bell\x07del\x7f", "bell_del_"},
		{"utf8.é", "utf8.é"},
		{"", ""},
	} {
		assert.Equal(t, tc.expected, Sanitize(tc.key), "key %q", tc.key)
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	for _, key := range []string{
		"a b:c|d@e",
		"__",
		"x\n\ny",
		"net.{HOSTNAME}.rx",
		"\x00\x01\x02",
	} {
		once := Sanitize(key)
		assert.Equal(t, once, Sanitize(once), "key %q", key)
	}
}

func TestCleanKeyHostname(t *testing.T) {
	for _, tc := range []struct {
		key      string
		nodeTag  string
		expected string
	}{
		{"net.{HOSTNAME}.rx", "nodeA", "net.nodeA.rx"},
		{"net.{HOSTNAME}.rx", "", "net.rx"},
		{"{HOSTNAME}.rx", "", "rx"},
		{"net.{HOSTNAME}", "", "net"},
		{"a.{HOSTNAME}.{HOSTNAME}.b", "", "a.b"},
		{"a.{HOSTNAME}.{HOSTNAME}.b", "n", "a.n.n.b"},
		{"pre{HOSTNAME}post.x", "", "prepost.x"},
		{"pre{HOSTNAME}post.x", "n", "prenpost.x"},
		{"{HOSTNAME}", "", ""},
		{"net.{HOSTNAME}.rx", "node 1", "net.node_1.rx"},
		{"no.token", "", "no.token"},
	} {
		assert.Equal(t, tc.expected, CleanKey(tc.key, tc.nodeTag), "key %q node tag %q", tc.key, tc.nodeTag)
	}
}

func TestHeaderWithNamespaceAndNodeTag(t *testing.T) {
	var buffer []byte
	buffer = appendIntegerMetric(buffer, Counter, "ns.", "net.{HOSTNAME}.rx", "nodeA", 1, 1)
	assert.Equal(t, `ns.net.nodeA.rx:1|c`, string(buffer))

	buffer = appendIntegerMetric(buffer[:0], Counter, "ns.", "net.{HOSTNAME}.rx", "", 1, 1)
	assert.Equal(t, `ns.net.rx:1|c`, string(buffer))
}
