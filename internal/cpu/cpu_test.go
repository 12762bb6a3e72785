package cpu

import (
	"testing"
)

func TestWrap(t *testing.T) {
	n := NumCPU()
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{n, 0},
		{n + 1, 1 % n},
		{-1, 1 % n},
	}

	for _, tt := range tests {
		if got := wrap(tt.in); got != tt.want {
			t.Errorf("wrap(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPinWorker(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		release, err := PinWorker(3)
		defer release()
		if err != nil {
			// Restricted sandboxes may refuse affinity changes.
			t.Logf("PinWorker: %v", err)
		}
	}()
	<-done
}
