package pool_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/utkarsh5026/matpool/pool"
)

// TestHooksBasic checks that start and end hooks fire once per task
func TestHooksBasic(t *testing.T) {
	var mu sync.Mutex
	events := []string{}

	wp := pool.NewWorkerPool[int, string](
		pool.WithWorkerCount(2),
		pool.WithBeforeTaskStart(func(task int) {
			mu.Lock()
			events = append(events, fmt.Sprintf("start:%d", task))
			mu.Unlock()
		}),
		pool.WithOnTaskEnd(func(task int, result string, err error) {
			mu.Lock()
			if err != nil {
				events = append(events, fmt.Sprintf("end:%d:error", task))
			} else {
				events = append(events, fmt.Sprintf("end:%d:%s", task, result))
			}
			mu.Unlock()
		}),
	)

	tasks := []int{1, 2, 3}
	results, err := wp.Process(context.Background(), tasks, func(ctx context.Context, task int) (string, error) {
		time.Sleep(5 * time.Millisecond)
		return fmt.Sprintf("result-%d", task), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	mu.Lock()
	defer mu.Unlock()

	if len(events) != 6 {
		t.Errorf("expected 6 events, got %d: %v", len(events), events)
	}

	seen := make(map[string]bool, len(events))
	for _, e := range events {
		seen[e] = true
	}
	for _, task := range tasks {
		if !seen[fmt.Sprintf("start:%d", task)] {
			t.Errorf("start event not found for task %d", task)
		}
		if !seen[fmt.Sprintf("end:%d:result-%d", task, task)] {
			t.Errorf("end event not found for task %d", task)
		}
	}
}

// TestHooksWithRetry checks the retry hook sees 1-based attempt numbers
func TestHooksWithRetry(t *testing.T) {
	var mu sync.Mutex
	var retries []int

	wp := pool.NewWorkerPool[int, string](
		pool.WithWorkerCount(1),
		pool.WithRetryPolicy(3, time.Millisecond),
		pool.WithOnRetry(func(task int, attempt int, err error) {
			mu.Lock()
			retries = append(retries, attempt)
			mu.Unlock()
		}),
	)

	attemptCount := 0
	_, err := wp.Process(context.Background(), []int{1}, func(ctx context.Context, task int) (string, error) {
		attemptCount++
		if attemptCount < 3 {
			return "", errors.New("temporary error")
		}
		return "success", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if fmt.Sprint(retries) != "[1 2]" {
		t.Errorf("expected retry attempts [1 2], got %v", retries)
	}
}

// TestHooksWithError checks that the end hook receives the task error
func TestHooksWithError(t *testing.T) {
	var mu sync.Mutex
	var lastError error

	wp := pool.NewWorkerPool[int, string](
		pool.WithWorkerCount(1),
		pool.WithOnTaskEnd(func(task int, result string, err error) {
			mu.Lock()
			if err != nil {
				lastError = err
			}
			mu.Unlock()
		}),
	)

	_, err := wp.Process(context.Background(), []int{1, 2, 3}, func(ctx context.Context, task int) (string, error) {
		if task == 2 {
			return "", errors.New("task 2 failed")
		}
		return fmt.Sprintf("result-%d", task), nil
	})
	if err == nil {
		t.Fatal("expected error from task 2")
	}

	mu.Lock()
	defer mu.Unlock()

	if lastError == nil || lastError.Error() != "task 2 failed" {
		t.Errorf("expected hook to see 'task 2 failed', got %v", lastError)
	}
}

// TestHooksTypeMismatch checks that hooks for the wrong task or result type are rejected at construction
func TestHooksTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		opt  pool.WorkerPoolOption
	}{
		{"before start task type", pool.WithBeforeTaskStart(func(string) {})},
		{"end task type", pool.WithOnTaskEnd(func(string, string, error) {})},
		{"end result type", pool.WithOnTaskEnd(func(int, int, error) {})},
		{"retry task type", pool.WithOnRetry(func(float64, int, error) {})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic for mismatched hook type")
				}
			}()
			pool.NewWorkerPool[int, string](tt.opt)
		})
	}
}

// TestHooksOnScheduler checks hooks also apply to a long-running scheduler
func TestHooksOnScheduler(t *testing.T) {
	var mu sync.Mutex
	started := 0

	sched := pool.NewScheduler[int, int](
		pool.WithWorkerCount(2),
		pool.WithBeforeTaskStart(func(int) {
			mu.Lock()
			started++
			mu.Unlock()
		}),
	)
	if err := sched.Start(context.Background(), func(ctx context.Context, n int) (int, error) { return n, nil }); err != nil {
		t.Fatal(err)
	}

	for i := range 5 {
		f, err := sched.Submit(context.Background(), i)
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := f.Get(); err != nil {
			t.Fatal(err)
		}
	}
	if err := sched.Shutdown(time.Second); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if started != 5 {
		t.Errorf("expected 5 start hooks, got %d", started)
	}
}
