package pool

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/utkarsh5026/matpool/internal/algorithms"
	"github.com/utkarsh5026/matpool/internal/scheduler"
)

// createConfig resolves options and defaults into the scheduler configuration.
func createConfig[T, R any](opts ...WorkerPoolOption) *scheduler.ProcessorConfig[T, R] {
	cfg := &workerPoolConfig{
		workerCount:         runtime.GOMAXPROCS(0),
		maxAttempts:         1,
		backoffType:         BackoffExponential,
		backoffInitialDelay: 100 * time.Millisecond,
		backoffMaxDelay:     5 * time.Second,
		backoffJitterFactor: 0.1,
		partitioner:         ModuloPartitioner{},
		logger:              slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.taskBuffer == 0 {
		cfg.taskBuffer = cfg.workerCount
	}

	if cfg.retryPolicySet {
		cfg.backoffInitialDelay = cfg.initialDelay
	}

	beforeTaskStart, onTaskEnd, onRetry := checkfuncs[T, R](cfg)

	conf := &scheduler.ProcessorConfig[T, R]{
		WorkerCount:        cfg.workerCount,
		TaskBuffer:         cfg.taskBuffer,
		MaxAttempts:        cfg.maxAttempts,
		RateLimiter:        cfg.rateLimiter,
		ContinueOnErr:      cfg.continueOnError,
		SchedulingStrategy: cfg.strategy,
		Partitioner:        cfg.partitioner,
		BeforeTaskStart:    beforeTaskStart,
		OnTaskEnd:          onTaskEnd,
		OnRetry:            onRetry,
		BackoffStrategy: algorithms.NewBackoffStrategy(
			cfg.backoffType,
			cfg.backoffInitialDelay,
			cfg.backoffMaxDelay,
			cfg.backoffJitterFactor,
		),
		PinWorkers:    cfg.pinWorkers,
		Logger:        cfg.logger,
		SubmitTimeout: cfg.submitTimeout,
	}
	conf.ApplyDefaults()
	return conf
}

// checkfuncs turns the type-erased hooks back into typed ones.
//
// Panics:
//
//	If a hook was registered for a task or result type other than T or R.
func checkfuncs[T, R any](cfg *workerPoolConfig) (
	beforeTaskStart func(T),
	onTaskEnd func(T, R, error),
	onRetry func(T, int, error),
) {
	taskType, resultType := typeName[T](), typeName[R]()

	if cfg.beforeTaskStart != nil {
		if cfg.beforeTaskStartType != taskType {
			panic(fmt.Sprintf("WithBeforeTaskStart hook expects task type %s, but pool processes type %s",
				cfg.beforeTaskStartType, taskType))
		}
		hook := cfg.beforeTaskStart
		beforeTaskStart = func(task T) { hook(task) }
	}

	if cfg.onTaskEnd != nil {
		if cfg.onTaskEndTaskType != taskType {
			panic(fmt.Sprintf("WithOnTaskEnd hook expects task type %s, but pool processes type %s",
				cfg.onTaskEndTaskType, taskType))
		}
		if cfg.onTaskEndResultType != resultType {
			panic(fmt.Sprintf("WithOnTaskEnd hook expects result type %s, but pool produces type %s",
				cfg.onTaskEndResultType, resultType))
		}
		hook := cfg.onTaskEnd
		onTaskEnd = func(task T, result R, err error) { hook(task, result, err) }
	}

	if cfg.onRetry != nil {
		if cfg.onRetryType != taskType {
			panic(fmt.Sprintf("WithOnRetry hook expects task type %s, but pool processes type %s",
				cfg.onRetryType, taskType))
		}
		hook := cfg.onRetry
		onRetry = func(task T, attempt int, err error) { hook(task, attempt, err) }
	}

	return beforeTaskStart, onTaskEnd, onRetry
}

// waitUntil blocks until d is closed or timeout elapses (0 = wait forever).
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-d:
		return nil
	case <-timer.C:
		return ErrShutdownTimeout
	}
}
