// internal/ratelimit/pacer_test.go
package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestPacerEnforcesInterval(t *testing.T) {
	p := NewPacer(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	// First event is free, the next two wait one interval each.
	if elapsed < 100*time.Millisecond {
		t.Errorf("three events completed in %v, expected at least 100ms", elapsed)
	}
}

func TestPacerZeroIntervalDoesNotBlock(t *testing.T) {
	p := NewPacer(0)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 100; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
}

func TestPacerCancellation(t *testing.T) {
	p := NewPacer(time.Hour)
	ctx := context.Background()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first wait should be free: %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(cancelled); err == nil {
		t.Error("expected error from cancelled context")
	}
}
