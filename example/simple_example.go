package main

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/nodemetrics/statsd-go/statsd"
	"github.com/nodemetrics/statsd-go/statsd/otel"
	"github.com/nodemetrics/statsd-go/statsd/reporter"
)

func main() {
	if err := runExample(); err != nil {
		log.Fatal(err)
	}
}

func runExample() error {
	cfg := statsd.DefaultConfig()
	cfg.Enable = true
	cfg.NodeTag = "node-1"
	cfg.Namespace = "myservice."

	client, err := statsd.New(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	return sendExampleMetrics(client)
}

func sendExampleMetrics(client statsd.ClientInterface) error {
	if err := client.Inc("requests.{HOSTNAME}.count", 1); err != nil {
		return err
	}
	if err := client.Gauge("queue.depth", 21, 1); err != nil {
		return err
	}
	if err := client.TimingDuration("request.latency", 120*time.Millisecond, 0.5); err != nil {
		return err
	}

	mp, err := otel.NewMeterProvider(otel.WithClient(client))
	if err != nil {
		return err
	}
	defer mp.Shutdown()

	counter, err := mp.Meter("example").Int64Counter("otel.requests")
	if err != nil {
		return err
	}
	counter.Add(context.Background(), 1, otelmetric.WithAttributes(attribute.String("method", "GET")))

	r := reporter.New(client, statsd.DefaultPeriodSeconds*time.Second,
		reporter.NewRuntimeCollector(),
		reporter.CollectorFunc(func(ctx context.Context, _ statsd.ClientInterface) error {
			return mp.Collect(ctx)
		}),
	)
	return r.CollectOnce(context.Background())
}
