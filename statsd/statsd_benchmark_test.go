package statsd_test

import (
	"fmt"
	"net"
	"sync/atomic"
	"testing"

	"golang.org/x/net/nettest"

	"github.com/nodemetrics/statsd-go/statsd"
)

func setupUDPClientServer(b *testing.B) (*statsd.Client, net.PacketConn) {
	conn, err := nettest.NewLocalPacketListener("udp4")
	if err != nil {
		b.Fatal(err)
	}
	addr := conn.LocalAddr().(*net.UDPAddr)

	cfg := statsd.DefaultConfig()
	cfg.Enable = true
	cfg.Host = addr.IP.String()
	cfg.Port = uint16(addr.Port)
	cfg.NodeTag = "bench"

	client, err := statsd.New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	if !client.Initialized() {
		b.Fatalf("client is %s", client.State())
	}

	// drain the socket so the kernel buffer never fills up
	go func() {
		buf := make([]byte, 1024)
		for {
			if _, _, err := conn.ReadFrom(buf); err != nil {
				return
			}
		}
	}()
	return client, conn
}

func benchmarkStatsdDifferentMetrics(b *testing.B, rate float64) {
	client, conn := setupUDPClientServer(b)
	defer conn.Close()

	n := int32(0)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		testNumber := atomic.AddInt32(&n, 1)
		name := fmt.Sprintf("test.{HOSTNAME}.metric%d", testNumber)
		for pb.Next() {
			client.Timing(name, 1, rate)
		}
	})

	b.StopTimer()
	t := client.GetTelemetry()
	reportMetric(b, float64(t.TotalPayloadsDropped)/float64(t.TotalMetrics)*100, "%_dropRate")
	client.Close()
}

func benchmarkStatsdSameMetrics(b *testing.B, rate float64) {
	client, conn := setupUDPClientServer(b)
	defer conn.Close()

	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			client.Inc("test.{HOSTNAME}.metric", rate)
		}
	})

	b.StopTimer()
	t := client.GetTelemetry()
	reportMetric(b, float64(t.TotalPayloadsDropped)/float64(t.TotalMetrics)*100, "%_dropRate")
	client.Close()
}

func BenchmarkStatsdUDPSameMetric(b *testing.B)        { benchmarkStatsdSameMetrics(b, 1) }
func BenchmarkStatsdUDPSameMetricSampled(b *testing.B) { benchmarkStatsdSameMetrics(b, 0.1) }
func BenchmarkStatsdUDPDifferentMetrics(b *testing.B)  { benchmarkStatsdDifferentMetrics(b, 1) }
func BenchmarkStatsdUDPDifferentMetricsSampled(b *testing.B) {
	benchmarkStatsdDifferentMetrics(b, 0.1)
}

func reportMetric(b *testing.B, value float64, unit string) {
	b.ReportMetric(value, unit)
}
