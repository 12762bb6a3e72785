package benchmarks

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/utkarsh5026/matpool/matrix"
	"github.com/utkarsh5026/matpool/pool"
)

// partitionerConfig names one routing policy for sub-benchmarks
type partitionerConfig struct {
	name string
	p    pool.Partitioner
}

// getAllPartitioners returns a fresh instance of every partitioner (round-robin is stateful)
func getAllPartitioners() []partitionerConfig {
	return []partitionerConfig{
		{name: "Modulo", p: pool.ModuloPartitioner{}},
		{name: "RoundRobin", p: &pool.RoundRobinPartitioner{}},
		{name: "Hash", p: pool.HashPartitioner{}},
	}
}

// shape is an m x k by k x n product
type shape struct {
	name    string
	m, k, n int
}

func getShapes() []shape {
	return []shape{
		{"Square_16", 16, 16, 16},
		{"Square_64", 64, 64, 64},
		{"Square_128", 128, 128, 128},
		{"Tall_256x8", 256, 8, 256},
		{"Wide_8x512", 8, 512, 8},
	}
}

// =============================================================================
// Operand Generators
// =============================================================================

func randomFloat64(r *rand.Rand, rows, cols int) *matrix.Matrix[float64] {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = r.Float64()*2 - 1
	}
	return matrix.MustNew(data, rows, cols)
}

func randomInt64(r *rand.Rand, rows, cols int) *matrix.Matrix[int64] {
	data := make([]int64, rows*cols)
	for i := range data {
		data[i] = r.Int64N(200) - 100
	}
	return matrix.MustNew(data, rows, cols)
}

func operands(s shape) (*matrix.Matrix[float64], *matrix.Matrix[float64]) {
	r := rand.New(rand.NewPCG(uint64(s.m), uint64(s.n)))
	return randomFloat64(r, s.m, s.k), randomFloat64(r, s.k, s.n)
}

// runMultiplyBenchmark reports cells/s for b.N products on an engine built from opts
func runMultiplyBenchmark[T matrix.Number](b *testing.B, a, c *matrix.Matrix[T], opts ...matrix.Option) {
	b.Helper()
	ctx := context.Background()

	e, err := matrix.NewEngine[T](ctx, opts...)
	if err != nil {
		b.Fatal(err)
	}
	defer e.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := e.Multiply(ctx, a, c); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(float64(b.N*a.Rows()*c.Cols())/b.Elapsed().Seconds(), "cells/s")
}
