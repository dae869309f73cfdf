// Package metrics keeps cheap in-process request counters for the admin
// /metrics endpoint. Counters are atomic so the logging middleware can
// record from every request without locking.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"
)

type Collector struct {
	started         time.Time
	requests        uint64
	clientErrors    uint64
	serverErrors    uint64
	rateLimited     uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{started: time.Now()}
}

// Record tallies one completed request by its response status class.
func (c *Collector) Record(status int, elapsed time.Duration) {
	atomic.AddUint64(&c.requests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status == http.StatusTooManyRequests:
		atomic.AddUint64(&c.rateLimited, 1)
		atomic.AddUint64(&c.clientErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(elapsed.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	requests := atomic.LoadUint64(&c.requests)
	avg := float64(0)
	if requests > 0 {
		avg = float64(atomic.LoadUint64(&c.totalDurationMs)) / float64(requests)
	}
	return map[string]any{
		"uptimeSeconds":     int64(time.Since(c.started).Seconds()),
		"requestsTotal":     requests,
		"clientErrorsTotal": atomic.LoadUint64(&c.clientErrors),
		"serverErrorsTotal": atomic.LoadUint64(&c.serverErrors),
		"rateLimitedTotal":  atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":     avg,
	}
}
