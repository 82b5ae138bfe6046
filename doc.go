/*
Package statsd_go holds a StatsD client emitting one UDP datagram per
measurement, in the plain StatsD line protocol: counters, gauges and timings,
with optional sampling.

The client lives in the statsd package. statsd/otel exposes it as an
OpenTelemetry MeterProvider, statsd/promstats exports its telemetry to
Prometheus and statsd/reporter drives periodic collections.

Example Usage:

    cfg := statsd.DefaultConfig()
    cfg.Enable = true
    cfg.NodeTag = "node-1"
    // Prefix every metric with the app name
    cfg.Namespace = "flubber."

    c, err := statsd.New(cfg)
    if err != nil {
        log.Fatal(err)
    }
    defer c.Close()
    err = c.Timing("request.{HOSTNAME}.duration", 12, 1)
*/
package statsd_go
