package statsd

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldSample(t *testing.T) {
	rates := []float64{0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 1.0}
	iterations := 50_000

	for _, rate := range rates {
		rate := rate // Capture range variable.
		t.Run(fmt.Sprintf("Rate %0.2f", rate), func(t *testing.T) {
			t.Parallel()

			var lock sync.Mutex
			random := rand.New(rand.NewPCG(1, uint64(rate*1000)))
			count := 0
			for i := 0; i < iterations; i++ {
				if shouldSample(rate, random, &lock) {
					count++
				}
			}
			assert.InDelta(t, rate, float64(count)/float64(iterations), 0.01)
		})
	}
}

func TestShouldSampleBoundaries(t *testing.T) {
	var lock sync.Mutex
	src := newFixedSource(0)
	random := rand.New(src)

	assert.True(t, shouldSample(1, random, &lock))
	assert.True(t, shouldSample(2, random, &lock))
	assert.False(t, shouldSample(0, random, &lock))
	assert.False(t, shouldSample(-0.5, random, &lock))
	// none of the above drew a number
	assert.Equal(t, 0, src.idx)

	// strictly below the rate
	assert.True(t, shouldSample(0.5, rand.New(newFixedSource(0.4999)), &lock))
	assert.False(t, shouldSample(0.5, rand.New(newFixedSource(0.5)), &lock))
}

func BenchmarkShouldSample(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		var lock sync.Mutex
		random := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		for pb.Next() {
			shouldSample(0.1, random, &lock)
		}
	})
}
