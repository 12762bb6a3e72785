package matrix

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/matpool/metrics"
	"github.com/utkarsh5026/matpool/pool"
)

// Counter keys reported through WithCounter.
const (
	MetricCalls  = "multiply.calls"
	MetricCells  = "multiply.cells"
	MetricErrors = "multiply.errors"
)

// WorkerTasksMetric is the counter key for tasks completed by worker id.
func WorkerTasksMetric(id int) string { return fmt.Sprintf("worker.%d.tasks", id) }

// WorkerFailuresMetric is the counter key for kernel failures on worker id.
func WorkerFailuresMetric(id int) string { return fmt.Sprintf("worker.%d.failures", id) }

// cellTask is the message for one output cell. It is built once, submitted once
// under key index and never modified.
type cellTask[T Number] struct {
	call  context.Context
	index int64
	row   Vector[T]
	col   Vector[T]
}

// Engine owns a running worker pool and multiplies matrices on it.
// It is safe for concurrent use; concurrent calls share the workers.
type Engine[T Number] struct {
	sched   *pool.Scheduler[cellTask[T], T]
	kernel  Kernel[T]
	counter metrics.Counter
	logger  *slog.Logger

	workerTasks    []string
	workerFailures []string

	closed atomic.Bool
}

// NewEngine starts P workers that live until Close or until ctx is cancelled.
//
// Panics if WithKernel was given a kernel for an element type other than T.
func NewEngine[T Number](ctx context.Context, opts ...Option) (*Engine[T], error) {
	cfg := newConfig(opts...)

	kernel := Kernel[T](dotKernel[T])
	if cfg.kernel != nil {
		k, ok := cfg.kernel.(Kernel[T])
		if !ok {
			var zero T
			panic(fmt.Sprintf("matrix: kernel of type %T used with %T elements", cfg.kernel, zero))
		}
		kernel = k
	}

	e := &Engine[T]{
		sched:   pool.NewScheduler[cellTask[T], T](cfg.poolOptions()...),
		kernel:  kernel,
		counter: cfg.counter,
		logger:  cfg.logger,
	}

	if e.counter != nil {
		e.workerTasks = make([]string, cfg.workers)
		e.workerFailures = make([]string, cfg.workers)
		for i := range cfg.workers {
			e.workerTasks[i] = WorkerTasksMetric(i)
			e.workerFailures[i] = WorkerFailuresMetric(i)
		}
	}

	if err := e.sched.Start(ctx, e.process); err != nil {
		return nil, err
	}
	e.logger.Debug("engine started", "workers", cfg.workers)
	return e, nil
}

// Workers returns the pool size P.
func (e *Engine[T]) Workers() int {
	return e.sched.WorkerCount()
}

// Close stops accepting products, waits for queued cells to drain and stops the workers.
// Calling Close more than once is a no-op.
func (e *Engine[T]) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := e.sched.Shutdown(0)
	if errors.Is(err, pool.ErrAlreadyShutdown) {
		// The engine context was cancelled before Close.
		err = nil
	}
	e.logger.Debug("engine closed")
	return err
}

// process runs on a worker for every cellTask.
func (e *Engine[T]) process(ctx context.Context, t cellTask[T]) (T, error) {
	if err := t.call.Err(); err != nil {
		var zero T
		return zero, err
	}

	v, err := e.kernel(ctx, t.row, t.col)

	if e.counter != nil {
		if id, ok := pool.WorkerID(ctx); ok && id < len(e.workerTasks) {
			key := e.workerTasks[id]
			if err != nil {
				key = e.workerFailures[id]
			}
			e.incr(key)
		}
	}
	return v, err
}

func (e *Engine[T]) incr(key string) {
	if e.counter == nil {
		return
	}
	if err := e.counter.Incr(key); err != nil {
		e.logger.Debug("counter rejected key", "key", key, "error", err)
	}
}

func dotKernel[T Number](_ context.Context, row, col Vector[T]) (T, error) {
	return DotProduct(row, col)
}

// Multiply computes a x b on the engine's workers.
//
// It returns ErrIncompatibleShapes before submitting anything when an operand is
// nil, a dimension is zero, or a.Cols() != b.Rows(). Once dispatch has started,
// any failure discards the partial product: a refused submission is reported as
// ErrTaskDelivery and a cell that produced no value as ErrReplyLost, each wrapped
// with the cell index and the cause.
func (e *Engine[T]) Multiply(ctx context.Context, a, b *Matrix[T]) (*Matrix[T], error) {
	if err := checkShapes(a, b); err != nil {
		return nil, err
	}
	e.incr(MetricCalls)

	out, err := e.multiply(ctx, a, b)
	if err != nil {
		e.incr(MetricErrors)
		e.logger.Warn("multiply failed",
			"left", shape(a),
			"right", shape(b),
			"error", err,
		)
		return nil, err
	}
	return out, nil
}

func (e *Engine[T]) multiply(ctx context.Context, a, b *Matrix[T]) (*Matrix[T], error) {
	start := time.Now()

	// Cells still queued when the call gives up are skipped by the workers.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := Zeros[T](a.rows, b.cols)
	futures := make([]*pool.Future[T], 0, len(out.data))

	cols := make([]Vector[T], b.cols)
	for j := range cols {
		cols[j], _ = b.Col(j)
	}

	for i := range a.rows {
		row, _ := a.Row(i)
		for j := range b.cols {
			idx := int64(i*b.cols + j)
			f, err := e.sched.SubmitKeyed(ctx, idx, cellTask[T]{call: ctx, index: idx, row: row, col: cols[j]})
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, fmt.Errorf("%w: cell %d: %w", ErrReplyLost, idx, ctxErr)
				}
				return nil, fmt.Errorf("%w: cell %d: %w", ErrTaskDelivery, idx, err)
			}
			futures = append(futures, f)
		}
	}

	written := make([]bool, len(out.data))
	for _, f := range futures {
		v, key, err := f.GetWithContext(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return nil, fmt.Errorf("%w: cell %d: %w", ErrReplyLost, key, err)
		}
		if key < 0 || key >= int64(len(written)) {
			return nil, fmt.Errorf("%w: cell %d outside %dx%d", ErrIndexOutOfRange, key, out.rows, out.cols)
		}
		if written[key] {
			return nil, fmt.Errorf("%w: cell %d", ErrDuplicateReply, key)
		}
		written[key] = true
		out.data[key] = v
		e.incr(MetricCells)
	}

	e.logger.Debug("multiply done",
		"left", shape(a),
		"right", shape(b),
		"cells", len(futures),
		"elapsed", time.Since(start),
	)
	return out, nil
}

func checkShapes[T Number](a, b *Matrix[T]) error {
	switch {
	case a == nil || b == nil:
		return fmt.Errorf("%w: nil operand", ErrIncompatibleShapes)
	case a.rows == 0 || a.cols == 0 || b.rows == 0 || b.cols == 0:
		return fmt.Errorf("%w: empty operand %s x %s", ErrIncompatibleShapes, shape(a), shape(b))
	case a.cols != b.rows:
		return fmt.Errorf("%w: %s x %s", ErrIncompatibleShapes, shape(a), shape(b))
	}
	return nil
}

func shape[T Number](m *Matrix[T]) string {
	return fmt.Sprintf("%dx%d", m.rows, m.cols)
}
