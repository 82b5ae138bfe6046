package statsd

import "time"

// NoOpClient is a statsd client that does nothing. Can be useful in testing
// situations for library users, or wherever metrics are turned off and call
// sites should stay unconditional.
type NoOpClient struct{}

// Verify that NoOpClient implements the ClientInterface.
var _ ClientInterface = &NoOpClient{}

func (n *NoOpClient) Inc(key string, rate float64) error {
	return nil
}

func (n *NoOpClient) Dec(key string, rate float64) error {
	return nil
}

func (n *NoOpClient) Count(key string, value int64, rate float64) error {
	return nil
}

func (n *NoOpClient) Gauge(key string, value int64, rate float64) error {
	return nil
}

func (n *NoOpClient) GaugeDouble(key string, value float64, rate float64) error {
	return nil
}

func (n *NoOpClient) Timing(key string, ms int64, rate float64) error {
	return nil
}

func (n *NoOpClient) TimingDuration(key string, value time.Duration, rate float64) error {
	return nil
}

func (n *NoOpClient) Send(message string) error {
	return nil
}

func (n *NoOpClient) SendMetric(key string, value int64, metricType MetricType, rate float64) error {
	return nil
}

func (n *NoOpClient) SendDouble(key string, value float64, metricType MetricType, rate float64) error {
	return nil
}

func (n *NoOpClient) Close() error {
	return nil
}

func (n *NoOpClient) GetTelemetry() Telemetry {
	return Telemetry{}
}
