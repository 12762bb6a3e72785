package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/matpool/internal/cpu"
	"github.com/utkarsh5026/matpool/internal/scheduler"
	"github.com/utkarsh5026/matpool/internal/types"
	"golang.org/x/sync/errgroup"
)

// Scheduler is a long-running pool of a fixed number of workers that accepts
// task submissions from any goroutine and answers each one through its own Future.
//
// Type parameters:
//   - T: The input task type processed by workers
//   - R: The output/result type produced by processing tasks
type Scheduler[T, R any] struct {
	config *scheduler.ProcessorConfig[T, R]
	mu     sync.RWMutex
	state  *poolState[T, R]
}

// poolState holds the runtime state of one Start..Shutdown cycle.
type poolState[T any, R any] struct {
	cancel        context.CancelFunc
	started       atomic.Bool
	shutdown      atomic.Bool
	taskIDCounter atomic.Int64
	strategy      scheduler.SchedulingStrategy[T, R]
	done          chan struct{} // closed when all workers have finished
	err           error         // why the workers stopped; read only after done is closed
}

// NewScheduler creates a Scheduler. No worker runs until Start.
//
// Example:
//
//	sched := NewScheduler[int, string](WithWorkerCount(8), WithTaskBuffer(32))
//	_ = sched.Start(ctx, processFunc)
//	future, _ := sched.Submit(ctx, 5)
func NewScheduler[T, R any](opts ...WorkerPoolOption) *Scheduler[T, R] {
	return &Scheduler[T, R]{
		config: createConfig[T, R](opts...),
	}
}

// Start launches the workers. ctx bounds the lifetime of the pool: cancelling it
// stops every worker and fails the tasks still queued.
//
// Returns ErrAlreadyStarted if the scheduler is running.
func (s *Scheduler[T, R]) Start(ctx context.Context, processFn ProcessFunc[T, R]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != nil && s.state.started.Load() && !s.state.shutdown.Load() {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	state := &poolState[T, R]{
		strategy: scheduler.CreateSchedulingStrategy(s.config),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	state.started.Store(true)
	s.state = state

	g, gctx := errgroup.WithContext(ctx)
	for i := range s.config.WorkerCount {
		g.Go(func() error {
			if s.config.PinWorkers {
				release, err := cpu.PinWorker(i)
				defer release()
				if err != nil {
					s.config.Logger.Debug("cpu pinning failed", "worker", i, "error", err)
				}
			}
			return state.strategy.Worker(scheduler.WithWorkerID(gctx, i), int64(i), processFn, types.CompleteFuture[T, R])
		})
	}

	go func() {
		err := g.Wait()
		state.strategy.Shutdown()

		abandonErr := ErrTaskAbandoned
		if err != nil {
			abandonErr = fmt.Errorf("%w: %w", ErrTaskAbandoned, err)
			if !errors.Is(err, context.Canceled) {
				s.config.Logger.Error("scheduler stopped", "error", err)
			}
		}
		if n := state.strategy.Abandon(abandonErr); n > 0 {
			s.config.Logger.Warn("abandoned queued tasks", "count", n)
		}

		state.err = err
		state.shutdown.Store(true)
		cancel()
		close(state.done)
	}()

	return nil
}

// Submit queues task under the next key from an internal counter (0, 1, 2, ...).
func (s *Scheduler[T, R]) Submit(ctx context.Context, task T) (*Future[R], error) {
	state, err := s.running()
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, state, state.taskIDCounter.Add(1)-1, task)
}

// SubmitKeyed queues task under key. The key selects the worker (through the
// partitioner) and comes back with the result.
//
// It blocks while the target queue is full. It fails with ErrSchedulerClosed once the
// pool is stopping, with ctx.Err() if ctx ends first, or with ErrSubmitTimeout.
func (s *Scheduler[T, R]) SubmitKeyed(ctx context.Context, key int64, task T) (*Future[R], error) {
	state, err := s.running()
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, state, key, task)
}

func (s *Scheduler[T, R]) submit(ctx context.Context, state *poolState[T, R], key int64, task T) (*Future[R], error) {
	future := types.NewFuture[R, int64](key)
	if err := state.strategy.Submit(ctx, types.NewSubmittedTask(task, key, future)); err != nil {
		return nil, err
	}
	return future, nil
}

func (s *Scheduler[T, R]) running() (*poolState[T, R], error) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	if state == nil || !state.started.Load() {
		return nil, ErrNotStarted
	}
	if state.shutdown.Load() {
		return nil, ErrSchedulerClosed
	}
	return state, nil
}

// Shutdown stops accepting tasks, lets the workers finish everything already queued
// and waits for them to exit.
//
// Parameters:
//   - timeout: Maximum duration to wait (0 = wait forever)
//
// Returns ErrNotStarted, ErrAlreadyShutdown or ErrShutdownTimeout.
func (s *Scheduler[T, R]) Shutdown(timeout time.Duration) error {
	s.mu.Lock()
	state := s.state
	if state == nil || !state.started.Load() {
		s.mu.Unlock()
		return ErrNotStarted
	}
	if !state.shutdown.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return ErrAlreadyShutdown
	}
	s.mu.Unlock()

	state.strategy.Shutdown()
	return waitUntil(state.done, timeout)
}

// Done is closed once every worker has exited. It is nil before Start.
func (s *Scheduler[T, R]) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil
	}
	return s.state.done
}

// Err returns the error that stopped the workers, or nil if they stopped cleanly
// or are still running.
func (s *Scheduler[T, R]) Err() error {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	if state == nil {
		return nil
	}
	select {
	case <-state.done:
		return state.err
	default:
		return nil
	}
}

// Running reports whether the scheduler accepts submissions.
func (s *Scheduler[T, R]) Running() bool {
	_, err := s.running()
	return err == nil
}

// WorkerCount returns the fixed number of workers.
func (s *Scheduler[T, R]) WorkerCount() int {
	return s.config.WorkerCount
}

// cause picks the most useful error once the workers are gone: the worker failure
// if there was one, err otherwise.
func (s *Scheduler[T, R]) cause(err error) error {
	if werr := s.Err(); werr != nil && !errors.Is(werr, context.Canceled) {
		return werr
	}
	return err
}
