package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/leadscan"
)

// Ensure LoggingScanner implements leadscan.Scanner.
var _ leadscan.Scanner = (*LoggingScanner)(nil)

// LoggingScanner wraps a Scanner with logging.
type LoggingScanner struct {
	next   leadscan.Scanner
	logger *slog.Logger
}

// NewLoggingScanner creates a new LoggingScanner.
func NewLoggingScanner(next leadscan.Scanner, logger *slog.Logger) *LoggingScanner {
	return &LoggingScanner{next: next, logger: logger}
}

// Scan delegates to the wrapped scanner and logs the outcome.
// Rate limited calls are logged at warn level with the wait time.
func (s *LoggingScanner) Scan(ctx context.Context, rawURL string) (result *leadscan.Result, err error) {
	defer func(begin time.Time) {
		switch {
		case leadscan.ErrorCode(err) == leadscan.ERATELIMIT:
			s.logger.Warn("scan rate limited", "url", rawURL, "err", err)
		case err != nil:
			s.logger.Error("scan failed",
				"url", rawURL,
				"code", leadscan.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
		default:
			s.logger.Info("scan",
				"url", result.URL,
				"emails", len(result.Emails),
				"phones", len(result.PhoneNumbers),
				"duration", time.Since(begin),
			)
		}
	}(time.Now())
	return s.next.Scan(ctx, rawURL)
}
