package pool

import (
	"context"
)

// WorkerPool runs one batch of tasks per Process call on a freshly started
// Scheduler, which is torn down before Process returns.
//
// Type parameters:
//   - T: The input task type
//   - R: The result type
type WorkerPool[T any, R any] struct {
	opts []WorkerPoolOption
}

// NewWorkerPool creates a new worker pool with the given options.
//
// Default configuration:
//   - workerCount: runtime.GOMAXPROCS(0) (number of logical CPUs)
//   - taskBuffer: equal to workerCount
//   - maxAttempts: 1 (no retries)
//   - continueOnError: false
//
// Example:
//
//	pool := NewWorkerPool[int, string](
//	    WithWorkerCount(10),
//	    WithTaskBuffer(20),
//	)
func NewWorkerPool[T any, R any](opts ...WorkerPoolOption) *WorkerPool[T, R] {
	// Building the config once surfaces hook type mismatches at construction.
	_ = createConfig[T, R](opts...)
	return &WorkerPool[T, R]{opts: opts}
}

// Process executes tasks concurrently and returns the results in input order.
// Task i is submitted under key i, so with the default partitioner it runs on worker i mod workers.
//
// Fail-fast: the first error in input order cancels the batch and is returned
// along with the results collected so far.
//
// Example:
//
//	tasks := []int{1, 2, 3, 4, 5}
//	results, err := pool.Process(ctx, tasks, func(ctx context.Context, n int) (string, error) {
//	    return fmt.Sprintf("processed %d", n), nil
//	})
func (wp *WorkerPool[T, R]) Process(
	ctx context.Context,
	tasks []T,
	processFn ProcessFunc[T, R],
) ([]R, error) {
	if len(tasks) == 0 {
		return []R{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := NewScheduler[T, R](wp.opts...)
	sched.config.WorkerCount = min(sched.config.WorkerCount, len(tasks))
	if err := sched.Start(ctx, processFn); err != nil {
		return nil, err
	}

	results := make([]R, len(tasks))
	abort := func(err error) ([]R, error) {
		cancel()
		<-sched.Done()
		return results, sched.cause(err)
	}

	futures := make([]*Future[R], len(tasks))
	for i, task := range tasks {
		f, err := sched.SubmitKeyed(ctx, int64(i), task)
		if err != nil {
			return abort(err)
		}
		futures[i] = f
	}

	for i, f := range futures {
		v, _, err := f.GetWithContext(ctx)
		if err != nil {
			return abort(err)
		}
		results[i] = v
	}

	if err := sched.Shutdown(0); err != nil {
		return results, err
	}
	return results, nil
}
