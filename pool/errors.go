package pool

import (
	"errors"

	"github.com/utkarsh5026/matpool/internal/scheduler"
)

var (
	ErrNotStarted      = errors.New("pool not started")
	ErrAlreadyStarted  = errors.New("pool already started")
	ErrAlreadyShutdown = errors.New("pool already shut down")
	ErrShutdownTimeout = errors.New("error in shutting down: timeout reached")

	// ErrTaskAbandoned completes futures whose task was still queued when the pool stopped.
	ErrTaskAbandoned = errors.New("task abandoned before execution")

	ErrSchedulerClosed = scheduler.ErrSchedulerClosed
	ErrSubmitTimeout   = scheduler.ErrSubmitTimeout
	ErrTaskPanicked    = scheduler.ErrTaskPanicked
)
