package scheduler

import (
	"context"

	"github.com/utkarsh5026/matpool/internal/types"
)

// partitionedStrategy gives every worker a dedicated FIFO queue.
//
// The partitioner picks the queue from the task key, so tasks with the same
// target worker are processed in submission order and no worker ever touches
// another worker's queue.
type partitionedStrategy[T any, R any] struct {
	config *ProcessorConfig[T, R]
	queues []chan *types.SubmittedTask[T, R]
	gate   *gate
}

func newPartitionedStrategy[T any, R any](conf *ProcessorConfig[T, R]) *partitionedStrategy[T, R] {
	s := &partitionedStrategy[T, R]{
		config: conf,
		queues: make([]chan *types.SubmittedTask[T, R], conf.WorkerCount),
		gate:   newGate(),
	}

	for i := range s.queues {
		s.queues[i] = make(chan *types.SubmittedTask[T, R], conf.TaskBuffer)
	}

	return s
}

// Submit routes the task to queue Partitioner.Assign(task.Id, workers).
func (s *partitionedStrategy[T, R]) Submit(ctx context.Context, task *types.SubmittedTask[T, R]) error {
	return send(s.gate, ctx, s.queues[s.route(task.Id)], task, s.config.SubmitTimeout)
}

func (s *partitionedStrategy[T, R]) Shutdown() {
	s.gate.close(func() {
		for _, ch := range s.queues {
			close(ch)
		}
	})
}

// Worker serves queue workerID until it is closed and empty.
// On cancellation every task still in the queue is failed with the context error.
func (s *partitionedStrategy[T, R]) Worker(ctx context.Context, workerID int64, executor types.ProcessFunc[T, R], h types.ResultHandler[T, R]) error {
	queue := s.queues[workerID]
	for {
		select {
		case <-ctx.Done():
			abandonQueue(queue, ctx.Err())
			return ctx.Err()

		case t, ok := <-queue:
			if !ok {
				return nil
			}
			if err := executeSubmitted(ctx, workerID, t, s.config, executor, h); err != nil {
				abandonQueue(queue, err)
				return err
			}
		}
	}
}

func (s *partitionedStrategy[T, R]) Abandon(err error) int {
	n := 0
	for _, ch := range s.queues {
		n += abandonQueue(ch, err)
	}
	return n
}

func (s *partitionedStrategy[T, R]) route(key int64) int {
	return wrapIndex(int64(s.config.Partitioner.Assign(key, len(s.queues))), len(s.queues))
}
