package scheduler

import (
	"context"
	"testing"

	"github.com/utkarsh5026/matpool/internal/types"
)

func TestCreateSchedulingStrategy(t *testing.T) {
	conf := newTestConfig(2, 2)

	if _, ok := CreateSchedulingStrategy(conf).(*partitionedStrategy[int, int]); !ok {
		t.Error("default strategy should be partitioned")
	}

	conf.SchedulingStrategy = SchedulingShared
	if _, ok := CreateSchedulingStrategy(conf).(*sharedStrategy[int, int]); !ok {
		t.Error("SchedulingShared should build a shared strategy")
	}

	if SchedulingShared.String() != "shared" || SchedulingPartitioned.String() != "partitioned" {
		t.Error("unexpected strategy names")
	}
}

func TestSharedStrategy_ProcessesAll(t *testing.T) {
	s := newSharedStrategy(newTestConfig(4, 8))

	wg, errs := runWorkers(context.Background(), s, 4, func(ctx context.Context, task int) (int, error) {
		return task + 1, nil
	})

	futures := make([]*types.Future[int, int64], 0, 100)
	for key := range int64(100) {
		futures = append(futures, submitKeyed(t, s, key, int(key)))
	}

	for _, f := range futures {
		v, key, err := f.Get()
		if err != nil || v != int(key)+1 {
			t.Errorf("key %d: got (%d, %v)", key, v, err)
		}
	}

	s.Shutdown()
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("worker %d: %v", i, err)
		}
	}
}
