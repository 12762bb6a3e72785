package types

import "context"

// ProcessFunc is a function type that defines how individual tasks are processed by a worker.
// It takes a context for cancellation control and a task of type T, returning a result of type R.
//
// Type parameters:
//   - T: The type of input task to be processed
//   - R: The type of result produced after processing
type ProcessFunc[T any, R any] func(ctx context.Context, task T) (R, error)

// Result represents the outcome of processing a single task.
// It encapsulates both successful results and errors, along with the key the task was submitted under.
//
// Fields:
//   - Value: The result produced by processing the task (only valid if Error is nil)
//   - Key: The key the task was submitted under (the output index for keyed submissions)
//   - Error: Any error that occurred during task processing (nil if successful)
type Result[R any, K comparable] struct {
	Value R
	Key   K
	Error error
}

// NewResult builds a Result from its parts.
func NewResult[R any, K comparable](value R, key K, err error) *Result[R, K] {
	return &Result[R, K]{
		Value: value,
		Key:   key,
		Error: err,
	}
}

// SubmittedTask is a task travelling through a scheduler together with the
// future its worker must complete.
type SubmittedTask[T any, R any] struct {
	Task   T
	Id     int64
	Future *Future[R, int64]
}

// NewSubmittedTask pairs a task with its key and reply future.
func NewSubmittedTask[T any, R any](task T, id int64, future *Future[R, int64]) *SubmittedTask[T, R] {
	return &SubmittedTask[T, R]{
		Task:   task,
		Id:     id,
		Future: future,
	}
}

// ResultHandler receives the outcome of a submitted task once a worker has processed it.
type ResultHandler[T any, R any] func(task *SubmittedTask[T, R], result *Result[R, int64])

// CompleteFuture is the default ResultHandler: it delivers the result to the task's future.
func CompleteFuture[T any, R any](task *SubmittedTask[T, R], result *Result[R, int64]) {
	if task.Future != nil {
		task.Future.Complete(*result)
	}
}
