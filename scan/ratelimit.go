package scan

import (
	"sync"
	"time"

	"github.com/fwojciec/leadscan"
	"golang.org/x/time/rate"
)

var _ leadscan.ClientLimiter = (*ClientLimiter)(nil)

// DefaultIdleTimeout is the minimum time a key must go unused before its
// limiter is dropped.
const DefaultIdleTimeout = 10 * time.Minute

// ClientLimiter provides per-client rate limiting using token buckets.
// It creates a separate rate limiter for each key, so one noisy client
// cannot use up the shared scan window for everyone else. Keys idle for
// longer than the idle timeout are evicted.
type ClientLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientEntry
	rps       float64
	burst     int
	idle      time.Duration
	lastSweep time.Time

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a new ClientLimiter allowing rps requests per
// second per key with the given burst. A burst below 1 is treated as 1.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}

	// An evicted key starts with a full bucket, so keys are kept at least
	// until their bucket would have refilled anyway.
	idle := DefaultIdleTimeout
	if rps > 0 {
		if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > idle {
			idle = refill
		}
	}

	return &ClientLimiter{
		limiters: make(map[string]*clientEntry),
		rps:      rps,
		burst:    burst,
		idle:     idle,
		Now:      time.Now,
	}
}

// Allow reports whether a request for key may proceed now.
func (c *ClientLimiter) Allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.Now()
	c.sweep(now)

	entry, ok := c.limiters[key]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(rate.Limit(c.rps), c.burst)}
		c.limiters[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (c *ClientLimiter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.limiters)
}

// sweep drops idle keys, at most once per idle period.
func (c *ClientLimiter) sweep(now time.Time) {
	if now.Sub(c.lastSweep) < c.idle {
		return
	}
	c.lastSweep = now
	for key, entry := range c.limiters {
		if now.Sub(entry.lastSeen) >= c.idle {
			delete(c.limiters, key)
		}
	}
}
