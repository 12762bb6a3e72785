package metrics_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/matpool/metrics"
)

// TestMetricsIncr checks that unseen keys start at zero and count up.
func TestMetricsIncr(t *testing.T) {
	m := metrics.New()
	require.Zero(t, m.Get("req"))

	require.NoError(t, m.Incr("req"))
	require.NoError(t, m.Incr("req"))
	require.NoError(t, m.Incr("req.page"))

	require.Equal(t, int64(2), m.Get("req"))
	require.Equal(t, int64(1), m.Get("req.page"))
	require.Equal(t, []string{"req", "req.page"}, m.Keys())
}

// TestMetricsZeroValue ensures a zero Metrics is usable.
func TestMetricsZeroValue(t *testing.T) {
	var m metrics.Metrics
	require.NoError(t, m.Incr("x"))
	require.Equal(t, int64(1), m.Get("x"))
}

// TestMetricsString verifies the sorted "key: value" rendering.
func TestMetricsString(t *testing.T) {
	m := metrics.New()
	require.Empty(t, m.String())

	_ = m.Incr("worker.1.tasks")
	_ = m.Incr("call.thread.worker")
	_ = m.Incr("worker.1.tasks")

	require.Equal(t, "call.thread.worker: 1\nworker.1.tasks: 2\n", m.String())
}

// TestMetricsConcurrentIncr hammers one key from many goroutines.
func TestMetricsConcurrentIncr(t *testing.T) {
	m := metrics.New()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				_ = m.Incr("hits")
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(16000), m.Get("hits"))
}

// TestAtomicMetricsUnknownKey ensures unregistered keys are rejected.
func TestAtomicMetricsUnknownKey(t *testing.T) {
	m := metrics.NewAtomic("req", "req.page")

	require.ErrorIs(t, m.Incr("nope"), metrics.ErrUnknownMetric)

	_, err := m.Get("nope")
	require.ErrorIs(t, err, metrics.ErrUnknownMetric)
}

// TestAtomicMetricsIncr verifies counting and rendering of a fixed key set.
func TestAtomicMetricsIncr(t *testing.T) {
	m := metrics.NewAtomic("req.page", "call.thread.worker", "req", "req")
	require.Equal(t, []string{"call.thread.worker", "req", "req.page"}, m.Keys())

	require.NoError(t, m.Incr("req"))
	require.NoError(t, m.Incr("req"))

	v, err := m.Get("req")
	require.NoError(t, err)
	require.Equal(t, int64(2), v)

	require.Equal(t, "call.thread.worker: 0\nreq: 2\nreq.page: 0\n", m.String())
}

// TestAtomicMetricsConcurrentIncr checks that no increment is lost under contention.
func TestAtomicMetricsConcurrentIncr(t *testing.T) {
	keys := []string{"a", "b", "c"}
	m := metrics.NewAtomic(keys...)

	var wg sync.WaitGroup
	for i := range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				_ = m.Incr(keys[i%len(keys)])
			}
		}()
	}
	wg.Wait()

	for _, k := range keys {
		v, err := m.Get(k)
		require.NoError(t, err)
		require.Equal(t, int64(2000), v, k)
	}
}

// Both implementations are interchangeable sinks.
var (
	_ metrics.Counter = (*metrics.Metrics)(nil)
	_ metrics.Counter = (*metrics.AtomicMetrics)(nil)
)
