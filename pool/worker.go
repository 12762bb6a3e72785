package pool

import (
	"context"

	"github.com/utkarsh5026/matpool/internal/scheduler"
)

// WorkerID returns the index of the worker running the current task.
// ok is false when ctx did not come from a pool worker.
func WorkerID(ctx context.Context) (id int, ok bool) {
	return scheduler.WorkerIDFrom(ctx)
}
