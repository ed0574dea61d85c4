package mock

import (
	"context"
	"time"

	"github.com/fwojciec/leadscan"
)

var (
	_ leadscan.Scanner       = (*Scanner)(nil)
	_ leadscan.Throttle      = (*Throttle)(nil)
	_ leadscan.ClientLimiter = (*ClientLimiter)(nil)
	_ leadscan.Preprocessor  = (*Preprocessor)(nil)
)

// Scanner is a mock implementation of leadscan.Scanner.
type Scanner struct {
	ScanFn func(ctx context.Context, rawURL string) (*leadscan.Result, error)
}

func (s *Scanner) Scan(ctx context.Context, rawURL string) (*leadscan.Result, error) {
	return s.ScanFn(ctx, rawURL)
}

// Throttle is a mock implementation of leadscan.Throttle.
type Throttle struct {
	ArmFn func(now time.Time) error
}

func (t *Throttle) Arm(now time.Time) error {
	return t.ArmFn(now)
}

// ClientLimiter is a mock implementation of leadscan.ClientLimiter.
type ClientLimiter struct {
	AllowFn func(key string) bool
}

func (l *ClientLimiter) Allow(key string) bool {
	return l.AllowFn(key)
}

// Preprocessor is a mock implementation of leadscan.Preprocessor.
type Preprocessor struct {
	ProcessFn func(html string) (string, error)
}

func (p *Preprocessor) Process(html string) (string, error) {
	return p.ProcessFn(html)
}
