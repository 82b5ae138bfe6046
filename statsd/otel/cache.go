package otel

import "sync"

type cacheResult[V any] struct {
	value V
	err   error
}

// cacheWithErr memoizes the outcome of a constructor, error included, per key.
// The zero value is ready to use.
type cacheWithErr[K comparable, V any] struct {
	sync.Mutex
	data map[K]cacheResult[V]
}

// Lookup returns the cached value for key, calling f to build it the first
// time.
func (c *cacheWithErr[K, V]) Lookup(key K, f func() (V, error)) (V, error) {
	c.Lock()
	defer c.Unlock()

	if c.data == nil {
		c.data = make(map[K]cacheResult[V])
	}
	r, ok := c.data[key]
	if !ok {
		r.value, r.err = f()
		c.data[key] = r
	}
	return r.value, r.err
}

// HasKey reports whether key was looked up before.
func (c *cacheWithErr[K, V]) HasKey(key K) bool {
	c.Lock()
	defer c.Unlock()
	_, ok := c.data[key]
	return ok
}
