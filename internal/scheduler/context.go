package scheduler

import "context"

type workerIDKey struct{}

// WithWorkerID returns a copy of ctx carrying the id of the worker that owns it.
func WithWorkerID(ctx context.Context, workerID int) context.Context {
	return context.WithValue(ctx, workerIDKey{}, workerID)
}

// WorkerIDFrom returns the worker id stored by WithWorkerID.
func WorkerIDFrom(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(workerIDKey{}).(int)
	return id, ok
}
