package statsd

import (
	"math/rand/v2"
	"sync"
)

// shouldSample draws from r under lock unless rate settles the decision.
// NaN rates never sample.
func shouldSample(rate float64, r *rand.Rand, lock *sync.Mutex) bool {
	if rate >= 1 {
		return true
	}
	if !(rate > 0) {
		return false
	}

	lock.Lock()
	u := r.Float64()
	lock.Unlock()
	return u < rate
}
