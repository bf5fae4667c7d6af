package metrics

import (
	"sync/atomic"
	"time"
)

// Collector accumulates request counters without locks so the logging
// middleware can record on every request.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	deniedRequests  uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 401 || status == 403 {
		atomic.AddUint64(&c.deniedRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	denied := atomic.LoadUint64(&c.deniedRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":   total,
		"errorsTotal":     errs,
		"deniedTotal":     denied,
		"avgDurationMs":   avg,
		"totalDurationMs": totalMs,
	}
}
