package portal

import (
	"testing"
	"time"
)

func TestRandomDelayReturnsWithinBounds(t *testing.T) {
	start := time.Now()
	randomDelay(5, 15)
	elapsed := time.Since(start)
	if elapsed < 5*time.Millisecond {
		t.Fatalf("randomDelay returned too early: %v", elapsed)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("randomDelay took implausibly long: %v", elapsed)
	}
}

func TestRandomDelayHandlesEqualBounds(t *testing.T) {
	start := time.Now()
	randomDelay(5, 5)
	elapsed := time.Since(start)
	if elapsed < 5*time.Millisecond {
		t.Fatalf("randomDelay returned too early: %v", elapsed)
	}
}
