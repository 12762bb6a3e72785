package metrics

import (
	"fmt"
	"slices"
	"sync/atomic"
)

// AtomicMetrics counts a fixed set of keys with one atomic integer each.
// The key set cannot grow after NewAtomic, so Incr takes no lock.
type AtomicMetrics struct {
	keys []string
	data map[string]*atomic.Int64
}

// NewAtomic creates counters for keys. Duplicate keys share one counter.
func NewAtomic(keys ...string) *AtomicMetrics {
	m := &AtomicMetrics{data: make(map[string]*atomic.Int64, len(keys))}
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			continue
		}
		m.data[k] = new(atomic.Int64)
		m.keys = append(m.keys, k)
	}
	slices.Sort(m.keys)
	return m
}

// Incr adds one to key. It returns ErrUnknownMetric if key was not registered.
func (m *AtomicMetrics) Incr(key string) error {
	c, ok := m.data[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, key)
	}
	c.Add(1)
	return nil
}

// Get returns the current count for key.
func (m *AtomicMetrics) Get(key string) (int64, error) {
	c, ok := m.data[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMetric, key)
	}
	return c.Load(), nil
}

// Keys returns the registered keys in lexical order.
func (m *AtomicMetrics) Keys() []string {
	return slices.Clone(m.keys)
}

func (m *AtomicMetrics) String() string {
	return render(m.keys, func(k string) int64 { return m.data[k].Load() })
}
