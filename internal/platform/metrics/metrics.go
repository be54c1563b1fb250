package metrics

import (
	"sync/atomic"
	"time"
)

// Collector counts request outcomes for the /metrics endpoint. Denied is
// split out because 401/403 volume is the first thing to look at when a
// client misbehaves against the permission map.
type Collector struct {
	totalRequests   uint64
	deniedRequests  uint64
	serverErrors    uint64
	rateLimited     uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status == 401 || status == 403:
		atomic.AddUint64(&c.deniedRequests, 1)
	case status == 429:
		atomic.AddUint64(&c.rateLimited, 1)
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	denied := atomic.LoadUint64(&c.deniedRequests)
	errs := atomic.LoadUint64(&c.serverErrors)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"deniedTotal":       denied,
		"serverErrorsTotal": errs,
		"rateLimitedTotal":  limited,
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
	}
}
