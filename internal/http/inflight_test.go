package http

import (
	"context"
	"testing"
	"time"
)

func TestInFlightTracker_Counts(t *testing.T) {
	tr := &inFlightTracker{}
	if tr.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", tr.Count())
	}
	tr.Increment()
	tr.Increment()
	tr.Decrement()
	if tr.Count() != 1 {
		t.Errorf("Count() = %d, want 1", tr.Count())
	}
}

func TestWaitForZero_ReturnsWhenDrained(t *testing.T) {
	tr := &inFlightTracker{}
	tr.Increment()

	go func() {
		time.Sleep(20 * time.Millisecond)
		tr.Decrement()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := tr.waitForZero(ctx, 5*time.Millisecond); err != nil {
		t.Errorf("waitForZero() error = %v, want nil", err)
	}
}

func TestWaitForZero_ContextExpires(t *testing.T) {
	tr := &inFlightTracker{}
	tr.Increment()
	defer tr.Decrement()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := tr.waitForZero(ctx, 5*time.Millisecond); err != context.DeadlineExceeded {
		t.Errorf("waitForZero() error = %v, want DeadlineExceeded", err)
	}
}
