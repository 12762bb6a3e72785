package scheduler

import (
	"context"

	"github.com/utkarsh5026/matpool/internal/types"
)

// sharedStrategy feeds every worker from a single queue.
// Load follows actual compute cost, but there is no task-to-worker affinity.
type sharedStrategy[T any, R any] struct {
	config *ProcessorConfig[T, R]
	queue  chan *types.SubmittedTask[T, R]
	gate   *gate
}

func newSharedStrategy[T any, R any](conf *ProcessorConfig[T, R]) *sharedStrategy[T, R] {
	return &sharedStrategy[T, R]{
		config: conf,
		queue:  make(chan *types.SubmittedTask[T, R], conf.TaskBuffer*conf.WorkerCount),
		gate:   newGate(),
	}
}

func (s *sharedStrategy[T, R]) Submit(ctx context.Context, task *types.SubmittedTask[T, R]) error {
	return send(s.gate, ctx, s.queue, task, s.config.SubmitTimeout)
}

func (s *sharedStrategy[T, R]) Shutdown() {
	s.gate.close(func() {
		close(s.queue)
	})
}

func (s *sharedStrategy[T, R]) Worker(ctx context.Context, workerID int64, executor types.ProcessFunc[T, R], h types.ResultHandler[T, R]) error {
	for {
		select {
		case <-ctx.Done():
			abandonQueue(s.queue, ctx.Err())
			return ctx.Err()

		case t, ok := <-s.queue:
			if !ok {
				return nil
			}
			if err := executeSubmitted(ctx, workerID, t, s.config, executor, h); err != nil {
				return err
			}
		}
	}
}

func (s *sharedStrategy[T, R]) Abandon(err error) int {
	return abandonQueue(s.queue, err)
}
