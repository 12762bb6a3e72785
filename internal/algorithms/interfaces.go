package algorithms

import "time"

// BackoffStrategy computes the pause between two attempts of a failing task.
//
// The interface is exported so the scheduler can hold it in its configuration;
// implementations stay internal and are built through NewBackoffStrategy.
type BackoffStrategy interface {
	// NextDelay returns the delay before retry number attemptNumber (0 = first retry).
	// lastError is the failure that triggered the retry.
	NextDelay(attemptNumber int, lastError error) time.Duration

	// Reset clears any per-sequence state.
	Reset()
}
