// Package metrics provides concurrent event counters.
//
// Metrics accepts any key and creates counters on first use; AtomicMetrics has a
// key set fixed at construction and never locks on Incr. Both satisfy Counter.
package metrics

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownMetric is returned by AtomicMetrics for a key it was not built with.
var ErrUnknownMetric = errors.New("metrics: unknown metric")

// Counter is a sink for named event counts.
type Counter interface {
	Incr(key string) error
}

// Metrics is a set of counters keyed by arbitrary strings.
// The zero value is ready to use.
type Metrics struct {
	mu   sync.Mutex
	data map[string]int64
}

func New() *Metrics {
	return &Metrics{data: make(map[string]int64)}
}

// Incr adds one to key, creating it at zero first. It never fails.
func (m *Metrics) Incr(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		m.data = make(map[string]int64)
	}
	m.data[key]++
	return nil
}

// Get returns the count for key, 0 if it was never incremented.
func (m *Metrics) Get(key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// Keys returns every key seen so far in lexical order.
func (m *Metrics) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.data))
}

// String renders one "key: value" line per counter, sorted by key.
func (m *Metrics) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return render(slices.Sorted(maps.Keys(m.data)), func(k string) int64 { return m.data[k] })
}

func render(keys []string, value func(string) int64) string {
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s: %d\n", k, value(k))
	}
	return sb.String()
}
