package benchmarks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"testing"

	"github.com/utkarsh5026/matpool/matrix"
	"github.com/utkarsh5026/matpool/metrics"
)

// =============================================================================
// Worker Scaling
// =============================================================================

func BenchmarkMultiply_WorkerScaling(b *testing.B) {
	workerCounts := []int{1, 2, 4, 8, 16, 32}
	a, c := operands(shape{"", 128, 128, 128})

	for _, workers := range workerCounts {
		b.Run(fmt.Sprintf("Workers_%d", workers), func(b *testing.B) {
			runMultiplyBenchmark(b, a, c, matrix.WithWorkers(workers))
		})
	}
}

func BenchmarkMultiply_Shapes(b *testing.B) {
	for _, s := range getShapes() {
		a, c := operands(s)
		b.Run(s.name, func(b *testing.B) {
			runMultiplyBenchmark(b, a, c, matrix.WithWorkers(runtime.GOMAXPROCS(0)))
		})
	}
}

func BenchmarkMultiply_Partitioners(b *testing.B) {
	a, c := operands(shape{"", 96, 64, 96})

	for _, pc := range getAllPartitioners() {
		b.Run(pc.name, func(b *testing.B) {
			runMultiplyBenchmark(b, a, c, matrix.WithWorkers(8), matrix.WithPartitioner(pc.p))
		})
	}
}

func BenchmarkMultiply_QueueSize(b *testing.B) {
	a, c := operands(shape{"", 64, 64, 64})

	for _, size := range []int{1, 16, 256} {
		b.Run(fmt.Sprintf("Queue_%d", size), func(b *testing.B) {
			runMultiplyBenchmark(b, a, c, matrix.WithWorkers(8), matrix.WithQueueSize(size))
		})
	}
}

func BenchmarkMultiply_Int64(b *testing.B) {
	r := rand.New(rand.NewPCG(7, 7))
	a, c := randomInt64(r, 64, 64), randomInt64(r, 64, 64)
	runMultiplyBenchmark(b, a, c, matrix.WithWorkers(8))
}

// =============================================================================
// Counter Overhead
// =============================================================================

func BenchmarkMultiply_Counters(b *testing.B) {
	a, c := operands(shape{"", 64, 64, 64})
	const workers = 8

	atomicKeys := []string{matrix.MetricCalls, matrix.MetricCells, matrix.MetricErrors}
	for id := range workers {
		atomicKeys = append(atomicKeys, matrix.WorkerTasksMetric(id), matrix.WorkerFailuresMetric(id))
	}

	b.Run("None", func(b *testing.B) {
		runMultiplyBenchmark(b, a, c, matrix.WithWorkers(workers))
	})
	b.Run("Mutex", func(b *testing.B) {
		runMultiplyBenchmark(b, a, c, matrix.WithWorkers(workers), matrix.WithCounter(metrics.New()))
	})
	b.Run("Atomic", func(b *testing.B) {
		runMultiplyBenchmark(b, a, c, matrix.WithWorkers(workers), matrix.WithCounter(metrics.NewAtomic(atomicKeys...)))
	})
}

// =============================================================================
// Pool Lifecycle - per-call pool vs reused engine
// =============================================================================

func BenchmarkMultiply_EphemeralPool(b *testing.B) {
	a, c := operands(shape{"", 32, 32, 32})
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := matrix.Multiply(ctx, a, c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMultiply_ReusedEngine(b *testing.B) {
	a, c := operands(shape{"", 32, 32, 32})
	runMultiplyBenchmark(b, a, c)
}

// =============================================================================
// Baseline
// =============================================================================

func BenchmarkDotProduct(b *testing.B) {
	for _, n := range []int{16, 256, 4096} {
		r := rand.New(rand.NewPCG(uint64(n), 1))
		x := matrix.NewVector(randomFloat64(r, 1, n).Data())
		y := matrix.NewVector(randomFloat64(r, 1, n).Data())

		b.Run(fmt.Sprintf("Len_%d", n), func(b *testing.B) {
			for b.Loop() {
				_, _ = matrix.DotProduct(x, y)
			}
		})
	}
}
