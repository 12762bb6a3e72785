package types

import (
	"context"
	"sync"
)

// Future is a single-use reply slot for one submitted task.
//
// Exactly one Complete call takes effect; every later call is ignored and reports false.
// Any number of readers may wait on the result, and they all observe the same value.
type Future[R any, K comparable] struct {
	key    K
	once   sync.Once
	done   chan struct{}
	result Result[R, K]
}

// NewFuture creates an empty future for the task submitted under key.
func NewFuture[R any, K comparable](key K) *Future[R, K] {
	return &Future[R, K]{
		key:  key,
		done: make(chan struct{}),
	}
}

// Key returns the key the future was created for.
func (f *Future[R, K]) Key() K {
	return f.key
}

// Complete stores the result and wakes every waiter.
// It returns false if the future was already completed.
func (f *Future[R, K]) Complete(r Result[R, K]) bool {
	completed := false
	f.once.Do(func() {
		f.result = r
		completed = true
		close(f.done)
	})
	return completed
}

// Fail completes the future with err and the future's own key.
func (f *Future[R, K]) Fail(err error) bool {
	var zero R
	return f.Complete(Result[R, K]{Value: zero, Key: f.key, Error: err})
}

// Get blocks until the result is available.
func (f *Future[R, K]) Get() (R, K, error) {
	<-f.done
	return f.result.Value, f.result.Key, f.result.Error
}

// GetWithContext blocks until the result is available or ctx is done.
// On cancellation the zero value, the future's key and ctx.Err() are returned.
func (f *Future[R, K]) GetWithContext(ctx context.Context) (R, K, error) {
	select {
	case <-f.done:
		return f.result.Value, f.result.Key, f.result.Error
	case <-ctx.Done():
		var zero R
		return zero, f.key, ctx.Err()
	}
}

// TryGet returns the result without blocking. ready is false if no result has been delivered yet.
func (f *Future[R, K]) TryGet() (value R, key K, err error, ready bool) {
	select {
	case <-f.done:
		return f.result.Value, f.result.Key, f.result.Error, true
	default:
		return value, key, nil, false
	}
}

// Done returns a channel that is closed once the result is available.
func (f *Future[R, K]) Done() <-chan struct{} {
	return f.done
}

// IsReady reports whether the result is available.
func (f *Future[R, K]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
