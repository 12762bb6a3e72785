// Package pool provides a fixed-size, generic worker pool with one reply future per task.
//
// Two entry points share the same configuration:
//
//   - Scheduler[T, R] is long-running: Start it once, Submit tasks from any goroutine,
//     read each result from the returned Future, Shutdown when done.
//   - WorkerPool[T, R] processes one batch per Process call on a fresh scheduler and
//     returns the results in input order.
//
// # Basic Usage
//
//	sched := pool.NewScheduler[int, int](pool.WithWorkerCount(4))
//	if err := sched.Start(ctx, func(ctx context.Context, n int) (int, error) {
//	    return n * n, nil
//	}); err != nil {
//	    return err
//	}
//	defer sched.Shutdown(5 * time.Second)
//
//	future, err := sched.SubmitKeyed(ctx, 7, 12)
//	value, key, err := future.Get() // 144, 7, nil
//
// # Partitioning
//
// With the default partitioned strategy every worker owns exactly one FIFO queue.
// A keyed task goes to queue Partitioner.Assign(key, workers), which is key mod
// workers unless WithPartitioner says otherwise. Tasks routed to the same worker
// run in submission order; tasks on different workers have no relative order.
// WorkerID reports, from inside a ProcessFunc, which worker is running it.
//
// WithSchedulingStrategy(SchedulingShared) swaps the per-worker queues for one
// shared queue, trading worker affinity for dynamic load balancing.
//
// # Failure Handling
//
// A task that returns an error or panics completes its future with that error.
// With WithContinueOnError the worker logs the failure and keeps serving its queue;
// otherwise the scheduler stops and every task still queued is completed with
// ErrTaskAbandoned. A future is never left without a reply.
//
// # Configuration Options
//
//   - WithWorkerCount(n): number of workers (default: GOMAXPROCS)
//   - WithTaskBuffer(n): capacity of each worker queue (default: worker count)
//   - WithPartitioner(p): task key to worker routing
//   - WithRetryPolicy(maxAttempts, initialDelay) / WithBackoff(...): retries
//   - WithRateLimit(tasksPerSecond, burst): throughput cap
//   - WithBeforeTaskStart / WithOnTaskEnd / WithOnRetry: lifecycle hooks
//   - WithLogger(l): structured logger for task failures
//   - WithCPUAffinity(true): pin each worker to a CPU
//   - WithSubmitTimeout(d): fail Submit instead of waiting on a full queue
package pool
