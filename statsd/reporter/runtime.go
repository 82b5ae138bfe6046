package reporter

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/nodemetrics/statsd-go/statsd"
)

// RuntimeCollector reports memory, goroutine and GC statistics of the Go
// runtime under runtime.{HOSTNAME}.
type RuntimeCollector struct {
	mu       sync.Mutex
	mem      runtime.MemStats
	gcCycles uint32
}

func NewRuntimeCollector() *RuntimeCollector {
	return &RuntimeCollector{}
}

const runtimePrefix = "runtime.{HOSTNAME}."

func (c *RuntimeCollector) Collect(_ context.Context, client statsd.ClientInterface) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	runtime.ReadMemStats(&c.mem)

	errs := []error{
		client.Gauge(runtimePrefix+"goroutines", int64(runtime.NumGoroutine()), 1),
		client.Gauge(runtimePrefix+"heap.alloc_bytes", int64(c.mem.HeapAlloc), 1),
		client.Gauge(runtimePrefix+"heap.objects", int64(c.mem.HeapObjects), 1),
		client.Gauge(runtimePrefix+"sys_bytes", int64(c.mem.Sys), 1),
		client.Gauge(runtimePrefix+"gc.cycles", int64(c.mem.NumGC), 1),
	}

	// only report a pause when a GC actually ran since the last collection
	if c.mem.NumGC != c.gcCycles {
		pause := time.Duration(c.mem.PauseNs[(c.mem.NumGC+255)%256])
		errs = append(errs, client.TimingDuration(runtimePrefix+"gc.last_pause", pause, 1))
		c.gcCycles = c.mem.NumGC
	}
	return errors.Join(errs...)
}
