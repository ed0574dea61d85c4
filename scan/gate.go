package scan

import (
	"sync"
	"time"

	"github.com/fwojciec/leadscan"
)

var _ leadscan.Throttle = (*Gate)(nil)

// DefaultInterval is the minimum time between accepted scans.
const DefaultInterval = 5 * time.Second

// Gate enforces a minimum interval between scans. A new Gate has never
// been armed, so its first call always passes. Construct with NewGate.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewGate returns a Gate with the given interval.
// A non-positive interval uses DefaultInterval.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Gate{interval: interval}
}

// Interval returns the minimum time between accepted calls.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// Arm accepts the call and records now, or rejects it with
// *leadscan.RateLimitError if fewer than Interval has passed since the last
// accepted call. Rejected calls do not move the window.
func (g *Gate) Arm(now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() {
		if elapsed := now.Sub(g.last); elapsed < g.interval {
			return leadscan.NewRateLimitError(g.interval - elapsed)
		}
	}
	g.last = now
	return nil
}
