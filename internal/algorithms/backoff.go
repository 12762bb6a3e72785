package algorithms

import (
	"cmp"
	"math/rand/v2"
	"sync"
	"time"
)

// maxShift keeps 1<<attempt inside int64.
const maxShift = 62

type constantBackoff time.Duration

func (c constantBackoff) NextDelay(attemptNumber int, _ error) time.Duration {
	if attemptNumber < 0 {
		return 0
	}
	return time.Duration(c)
}

func (constantBackoff) Reset() {}

type exponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
}

func newExponentialBackoff(initialDelay, maxDelay time.Duration) *exponentialBackoff {
	return &exponentialBackoff{initialDelay: initialDelay, maxDelay: maxDelay}
}

func (eb *exponentialBackoff) NextDelay(attemptNumber int, _ error) time.Duration {
	return exponentialDelay(attemptNumber, eb.initialDelay, eb.maxDelay)
}

func (eb *exponentialBackoff) Reset() {}

// jitteredBackoff spreads an exponential delay by a random factor in
// [1-jitterFactor, 1+jitterFactor], capped at maxDelay.
type jitteredBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	jitterFactor float64
}

func newJitteredBackoff(initialDelay, maxDelay time.Duration, jitterFactor float64) *jitteredBackoff {
	return &jitteredBackoff{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		jitterFactor: clamp(jitterFactor, 0, 1),
	}
}

func (jb *jitteredBackoff) NextDelay(attemptNumber int, _ error) time.Duration {
	if attemptNumber < 0 {
		return 0
	}

	base := exponentialDelay(attemptNumber, jb.initialDelay, jb.maxDelay)
	spread := 1 + (rand.Float64()*2-1)*jb.jitterFactor // #nosec G404 -- jitter does not need crypto rand
	return clamp(time.Duration(float64(base)*spread), 0, jb.maxDelay)
}

func (jb *jitteredBackoff) Reset() {}

// decorrelatedBackoff keeps the previous delay, so it is guarded by a mutex.
type decorrelatedBackoff struct {
	mu           sync.Mutex
	initialDelay time.Duration
	maxDelay     time.Duration
	prevDelay    time.Duration
}

func newDecorrelatedBackoff(initialDelay, maxDelay time.Duration) *decorrelatedBackoff {
	return &decorrelatedBackoff{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		prevDelay:    initialDelay,
	}
}

func (db *decorrelatedBackoff) NextDelay(attemptNumber int, _ error) time.Duration {
	db.mu.Lock()
	defer db.mu.Unlock()

	if attemptNumber <= 0 {
		db.prevDelay = db.initialDelay
		return db.initialDelay
	}

	upper := min(db.prevDelay*3, db.maxDelay)
	span := upper - db.initialDelay
	if span <= 0 {
		db.prevDelay = db.initialDelay
		return db.initialDelay
	}

	delay := db.initialDelay + rand.N(span) // #nosec G404 -- jitter does not need crypto rand
	db.prevDelay = delay
	return delay
}

func (db *decorrelatedBackoff) Reset() {
	db.mu.Lock()
	db.prevDelay = db.initialDelay
	db.mu.Unlock()
}

// exponentialDelay returns initialDelay * 2^attemptNumber capped at maxDelay.
func exponentialDelay(attemptNumber int, initialDelay, maxDelay time.Duration) time.Duration {
	if attemptNumber < 0 {
		return 0
	}
	if attemptNumber > maxShift {
		return maxDelay
	}

	delay := initialDelay * time.Duration(int64(1)<<uint(attemptNumber))
	if delay > maxDelay || delay < 0 || (initialDelay != 0 && delay/initialDelay != time.Duration(int64(1)<<uint(attemptNumber))) {
		return maxDelay
	}
	return delay
}

func clamp[N cmp.Ordered](v, lo, hi N) N {
	return max(lo, min(v, hi))
}
