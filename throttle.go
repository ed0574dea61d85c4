package leadscan

import "time"

// Throttle enforces a minimum interval between scans.
type Throttle interface {
	// Arm records now as the latest accepted call and returns nil, or
	// returns *RateLimitError without recording anything when the previous
	// accepted call was too recent.
	Arm(now time.Time) error
}

// ClientLimiter limits request rates per client key, such as a user ID or
// remote address.
type ClientLimiter interface {
	// Allow reports whether a request for key may proceed now.
	Allow(key string) bool
}
