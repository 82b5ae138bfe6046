package statsd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoOpClient(t *testing.T) {
	a := assert.New(t)
	c := NoOpClient{}

	a.Nil(c.Inc("asd", 56.0))
	a.Nil(c.Dec("asd", 56.0))
	a.Nil(c.Count("asd", 1234, 56.0))
	a.Nil(c.Gauge("asd", 123, 56.0))
	a.Nil(c.GaugeDouble("asd", 123.4, 56.0))
	a.Nil(c.Timing("asd", 1234, 56.0))
	a.Nil(c.TimingDuration("asd", time.Second, 56.0))
	a.Nil(c.Send("asd:1|c"))
	a.Nil(c.SendMetric("asd", 1, Counter, 56.0))
	a.Nil(c.SendDouble("asd", 1.5, Gauge, 56.0))
	a.Equal(Telemetry{}, c.GetTelemetry())
	a.Nil(c.Close())
}
