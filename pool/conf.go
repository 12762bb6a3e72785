package pool

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// WorkerPoolOption is a functional option for configuring a Scheduler or WorkerPool.
type WorkerPoolOption func(*workerPoolConfig)

type workerPoolConfig struct {
	workerCount     int
	taskBuffer      int
	maxAttempts     int
	continueOnError bool
	rateLimiter     *rate.Limiter
	strategy        SchedulingStrategyType
	partitioner     Partitioner
	logger          *slog.Logger
	pinWorkers      bool
	submitTimeout   time.Duration

	retryPolicySet      bool
	initialDelay        time.Duration
	backoffType         BackoffType
	backoffInitialDelay time.Duration
	backoffMaxDelay     time.Duration
	backoffJitterFactor float64

	// Hooks are stored type-erased and checked against the pool's T and R when it is built.
	beforeTaskStart     func(any)
	beforeTaskStartType string
	onTaskEnd           func(any, any, error)
	onTaskEndTaskType   string
	onTaskEndResultType string
	onRetry             func(any, int, error)
	onRetryType         string
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithWorkerCount(count int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithTaskBuffer sets the capacity of each worker queue.
// If not specified, defaults to the number of workers.
func WithTaskBuffer(size int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if size >= 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithRetryPolicy retries a failing task up to maxAttempts times in total.
// initialDelay is the pause before the first retry; later pauses follow the backoff curve
// (exponential unless WithBackoff picks another).
func WithRetryPolicy(maxAttempts int, initialDelay time.Duration) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if maxAttempts > 0 {
			cfg.maxAttempts = maxAttempts
		}
		if initialDelay > 0 {
			cfg.initialDelay = initialDelay
			cfg.retryPolicySet = true
		}
	}
}

// WithBackoff selects the retry backoff algorithm and its bounds.
// jitterFactor only applies to BackoffJittered and is clamped to [0, 1].
func WithBackoff(backoffType BackoffType, initialDelay, maxDelay time.Duration, jitterFactor float64) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.backoffType = backoffType
		if initialDelay > 0 {
			cfg.backoffInitialDelay = initialDelay
		}
		if maxDelay > 0 {
			cfg.backoffMaxDelay = maxDelay
		}
		cfg.backoffJitterFactor = jitterFactor
	}
}

// WithRateLimit caps task throughput with a token bucket.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithContinueOnError keeps a worker serving its queue after one of its tasks fails.
// The failure still reaches the task's future and the logger.
func WithContinueOnError(continueOnError bool) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.continueOnError = continueOnError
	}
}

// WithSchedulingStrategy selects partitioned (default) or shared queues.
func WithSchedulingStrategy(strategy SchedulingStrategyType) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.strategy = strategy
	}
}

// WithPartitioner sets how task keys map to workers under the partitioned strategy.
func WithPartitioner(p Partitioner) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if p != nil {
			cfg.partitioner = p
		}
	}
}

// WithLogger sets the structured logger used for task failures. Default discards.
func WithLogger(l *slog.Logger) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithCPUAffinity locks each worker to an OS thread pinned to CPU workerID mod NumCPU.
func WithCPUAffinity(enabled bool) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.pinWorkers = enabled
	}
}

// WithSubmitTimeout makes Submit fail with ErrSubmitTimeout after waiting d for queue space.
// Zero (default) waits until the pool stops or the caller's context ends.
func WithSubmitTimeout(d time.Duration) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if d >= 0 {
			cfg.submitTimeout = d
		}
	}
}

// WithBeforeTaskStart registers a hook called before every task runs.
// T must match the pool's task type; NewScheduler and NewWorkerPool panic otherwise.
func WithBeforeTaskStart[T any](hook func(T)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.beforeTaskStart = func(task any) {
			t, _ := task.(T)
			hook(t)
		}
		cfg.beforeTaskStartType = typeName[T]()
	}
}

// WithOnTaskEnd registers a hook called after every task with its result and error.
func WithOnTaskEnd[T, R any](hook func(T, R, error)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.onTaskEnd = func(task, result any, err error) {
			t, _ := task.(T)
			r, _ := result.(R)
			hook(t, r, err)
		}
		cfg.onTaskEndTaskType = typeName[T]()
		cfg.onTaskEndResultType = typeName[R]()
	}
}

// WithOnRetry registers a hook called before each retry with the attempt number (1-based) and last error.
func WithOnRetry[T any](hook func(T, int, error)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.onRetry = func(task any, attempt int, err error) {
			t, _ := task.(T)
			hook(t, attempt, err)
		}
		cfg.onRetryType = typeName[T]()
	}
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", &zero)
}
