package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/utkarsh5026/matpool/internal/types"
)

var (
	ErrSchedulerClosed = errors.New("scheduler is closed")
	ErrSubmitTimeout   = errors.New("submit timed out waiting for a queue slot")
	ErrTaskPanicked    = errors.New("worker panic")
)

// gate guards the send side of the worker queues.
//
// Senders hold the read lock while blocked on a queue; closing first broadcasts
// on quit so they bail out, then takes the write lock so no sender is mid-send
// when the queues are closed.
type gate struct {
	mu     sync.RWMutex
	quit   chan struct{}
	once   sync.Once
	closed bool
}

func newGate() *gate {
	return &gate{quit: make(chan struct{})}
}

// send delivers task on ch unless the gate closes, ctx ends or timeout expires.
func send[T, R any](g *gate, ctx context.Context, ch chan<- *types.SubmittedTask[T, R], task *types.SubmittedTask[T, R], timeout time.Duration) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.closed {
		return ErrSchedulerClosed
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case ch <- task:
		return nil
	case <-g.quit:
		return ErrSchedulerClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-expired:
		return ErrSubmitTimeout
	}
}

// close runs closeQueues exactly once, after every in-flight send has returned.
func (g *gate) close(closeQueues func()) {
	g.once.Do(func() {
		close(g.quit)
		g.mu.Lock()
		g.closed = true
		closeQueues()
		g.mu.Unlock()
	})
}

// executeSubmitted runs one task and reports its outcome to the result handler.
// A failed task is logged; the returned error tells the worker whether to keep going.
func executeSubmitted[T, R any](
	ctx context.Context,
	workerID int64,
	s *types.SubmittedTask[T, R],
	conf *ProcessorConfig[T, R],
	executor types.ProcessFunc[T, R],
	handler types.ResultHandler[T, R],
) error {
	debugLog("worker %d: task %d start", workerID, s.Id)
	result, err := executeTask(ctx, conf, s.Task, executor)
	handler(s, types.NewResult(result, s.Id, err))

	if err != nil {
		conf.Logger.Warn("task failed",
			"worker", workerID,
			"task", s.Id,
			"error", err,
		)
		// A stopping worker must not pick up the next task even when errors are tolerated.
		if conf.ContinueOnErr && ctx.Err() == nil {
			return nil
		}
		return err
	}
	return nil
}

// executeTask encapsulates the common logic for executing a task with hooks, rate limiting, and processing.
func executeTask[T, R any](
	ctx context.Context,
	conf *ProcessorConfig[T, R],
	task T,
	processFn types.ProcessFunc[T, R],
) (R, error) {
	if conf.RateLimiter != nil {
		if err := conf.RateLimiter.Wait(ctx); err != nil {
			var zero R
			// Rate limiter's error doesn't wrap context errors, so check context explicitly
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, ctxErr
			}
			return zero, err
		}
	}

	if conf.BeforeTaskStart != nil {
		conf.BeforeTaskStart(task)
	}

	result, err := processWithRecovery(ctx, conf, task, processFn)

	if conf.OnTaskEnd != nil {
		conf.OnTaskEnd(task, result, err)
	}

	return result, err
}

// processWithRecovery runs processWithRetry and turns a panic into an ErrTaskPanicked error
// carrying the stack, so one bad task cannot take the worker down.
func processWithRecovery[T, R any](
	ctx context.Context,
	conf *ProcessorConfig[T, R],
	task T,
	processFn types.ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrTaskPanicked, r, buf[:n])
		}
	}()

	return processWithRetry(ctx, task, conf, processFn)
}

// processWithRetry calls processFn up to MaxAttempts times, sleeping per BackoffStrategy between attempts.
// OnRetry fires on every failure except the last. Context cancellation aborts early.
func processWithRetry[T, R any](
	ctx context.Context,
	task T,
	conf *ProcessorConfig[T, R],
	processFn types.ProcessFunc[T, R],
) (R, error) {
	var result R
	var err error
	maxAttempts := max(conf.MaxAttempts, 1)

	for attempt := range maxAttempts {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if attempt > 0 && conf.BackoffStrategy != nil {
			if delay := conf.BackoffStrategy.NextDelay(attempt-1, err); delay > 0 {
				timer := time.NewTimer(delay)
				select {
				case <-timer.C:
				case <-ctx.Done():
					timer.Stop()
					return result, ctx.Err()
				}
			}
		}

		result, err = processFn(ctx, task)
		if err == nil {
			return result, nil
		}

		if conf.OnRetry != nil && attempt < maxAttempts-1 {
			conf.OnRetry(task, attempt+1, err)
		}
	}

	return result, err
}

// abandonQueue fails every task buffered in ch without blocking.
func abandonQueue[T, R any](ch <-chan *types.SubmittedTask[T, R], err error) int {
	n := 0
	for {
		select {
		case t, ok := <-ch:
			if !ok {
				return n
			}
			if t.Future != nil && t.Future.Fail(err) {
				n++
			}
		default:
			return n
		}
	}
}
