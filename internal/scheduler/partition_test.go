package scheduler

import (
	"context"
	"testing"
)

func TestModuloPartitioner(t *testing.T) {
	p := ModuloPartitioner{}
	tests := []struct {
		key     int64
		workers int
		want    int
	}{
		{0, 16, 0},
		{15, 16, 15},
		{16, 16, 0},
		{37, 16, 5},
		{-1, 4, 3},
		{5, 1, 0},
	}

	for _, tt := range tests {
		if got := p.Assign(tt.key, tt.workers); got != tt.want {
			t.Errorf("Assign(%d, %d) = %d, want %d", tt.key, tt.workers, got, tt.want)
		}
	}
}

func TestRoundRobinPartitioner(t *testing.T) {
	p := &RoundRobinPartitioner{}
	for i := range 10 {
		// Key is ignored; only the call order matters.
		if got := p.Assign(1000, 3); got != i%3 {
			t.Errorf("call %d: got worker %d, want %d", i, got, i%3)
		}
	}
}

func TestHashPartitioner(t *testing.T) {
	p := HashPartitioner{}
	const workers = 8

	seen := make(map[int]int)
	for key := int64(0); key < 4096; key += workers {
		w := p.Assign(key, workers)
		if w < 0 || w >= workers {
			t.Fatalf("Assign(%d) = %d out of range", key, w)
		}
		if again := p.Assign(key, workers); again != w {
			t.Fatalf("Assign(%d) not deterministic: %d then %d", key, w, again)
		}
		seen[w]++
	}

	// Keys strided by the worker count all land on worker 0 under modulo;
	// hashing must spread them.
	if len(seen) < workers/2 {
		t.Errorf("hash partitioner used only %d of %d workers", len(seen), workers)
	}
}

func TestPartitionerFunc_OutOfRangeIsWrapped(t *testing.T) {
	conf := &ProcessorConfig[int, int]{
		WorkerCount: 4,
		Partitioner: PartitionerFunc(func(key int64, workers int) int { return int(key) * 7 }),
	}
	conf.ApplyDefaults()

	s := newPartitionedStrategy(conf)
	defer s.Shutdown()

	for key := int64(-10); key < 10; key++ {
		if r := s.route(key); r < 0 || r >= 4 {
			t.Errorf("route(%d) = %d out of range", key, r)
		}
	}
}

func TestWorkerIDContext(t *testing.T) {
	if _, ok := WorkerIDFrom(context.Background()); ok {
		t.Error("expected no worker id on a bare context")
	}

	ctx := WithWorkerID(context.Background(), 7)
	id, ok := WorkerIDFrom(ctx)
	if !ok || id != 7 {
		t.Errorf("WorkerIDFrom = (%d, %v), want (7, true)", id, ok)
	}
}
