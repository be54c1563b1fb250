package metrics

import (
	"testing"
	"time"
)

func TestCollectorSplitsOutcomes(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(403, 5*time.Millisecond)
	c.Record(401, 5*time.Millisecond)
	c.Record(429, 1*time.Millisecond)
	c.Record(500, 20*time.Millisecond)

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(5) {
		t.Fatalf("requestsTotal = %v, want 5", snap["requestsTotal"])
	}
	if snap["deniedTotal"] != uint64(2) {
		t.Fatalf("deniedTotal = %v, want 2", snap["deniedTotal"])
	}
	if snap["serverErrorsTotal"] != uint64(1) {
		t.Fatalf("serverErrorsTotal = %v, want 1", snap["serverErrorsTotal"])
	}
	if snap["rateLimitedTotal"] != uint64(1) {
		t.Fatalf("rateLimitedTotal = %v, want 1", snap["rateLimitedTotal"])
	}
	if snap["totalDurationMs"] != uint64(41) {
		t.Fatalf("totalDurationMs = %v, want 41", snap["totalDurationMs"])
	}
}
