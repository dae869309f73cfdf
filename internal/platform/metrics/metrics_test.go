package metrics

import (
	"testing"
	"time"
)

func TestCollectorClassifiesStatuses(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(404, 20*time.Millisecond)
	c.Record(429, 0)
	c.Record(500, 30*time.Millisecond)

	snap := c.Snapshot()
	if got := snap["requestsTotal"].(uint64); got != 4 {
		t.Fatalf("expected 4 requests, got %d", got)
	}
	if got := snap["clientErrorsTotal"].(uint64); got != 2 {
		t.Fatalf("expected 2 client errors, got %d", got)
	}
	if got := snap["serverErrorsTotal"].(uint64); got != 1 {
		t.Fatalf("expected 1 server error, got %d", got)
	}
	if got := snap["rateLimitedTotal"].(uint64); got != 1 {
		t.Fatalf("expected 1 rate-limited request, got %d", got)
	}
	if got := snap["avgDurationMs"].(float64); got != 15 {
		t.Fatalf("expected average duration 15ms, got %v", got)
	}
}
