package algorithms

import "time"

// BackoffType selects the retry backoff algorithm.
type BackoffType int

const (
	// BackoffExponential doubles the delay on every retry (default).
	BackoffExponential BackoffType = iota
	// BackoffJittered is exponential backoff with a random ±jitterFactor spread.
	BackoffJittered
	// BackoffDecorrelated draws each delay from [initial, 3*previous].
	BackoffDecorrelated
	// BackoffConstant always waits initialDelay.
	BackoffConstant
)

// String returns the lowercase name of the backoff type.
func (b BackoffType) String() string {
	switch b {
	case BackoffExponential:
		return "exponential"
	case BackoffJittered:
		return "jittered"
	case BackoffDecorrelated:
		return "decorrelated"
	case BackoffConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// NewBackoffStrategy builds the strategy for backoffType.
// Unknown types fall back to exponential backoff.
func NewBackoffStrategy(
	backoffType BackoffType,
	initialDelay, maxDelay time.Duration,
	jitterFactor float64,
) BackoffStrategy {
	if maxDelay < initialDelay {
		maxDelay = initialDelay
	}

	switch backoffType {
	case BackoffJittered:
		return newJitteredBackoff(initialDelay, maxDelay, jitterFactor)
	case BackoffDecorrelated:
		return newDecorrelatedBackoff(initialDelay, maxDelay)
	case BackoffConstant:
		return constantBackoff(initialDelay)
	default:
		return newExponentialBackoff(initialDelay, maxDelay)
	}
}
