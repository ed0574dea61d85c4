// Package slog provides log/slog decorators for leadscan services.
package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/leadscan"
)

// Ensure LoggingFetcher implements leadscan.Fetcher.
var _ leadscan.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   leadscan.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next leadscan.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
// Failed fetches are logged at warn level, with the HTTP status when the
// target answered.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		if err == nil {
			f.logger.Info("fetch",
				"url", url,
				"bytes", len(body),
				"duration", time.Since(begin),
			)
			return
		}

		args := []any{"url", url, "duration", time.Since(begin)}
		var fe *leadscan.FetchError
		if errors.As(err, &fe) && fe.Status != 0 {
			args = append(args, "status", fe.Status)
		}
		f.logger.Warn("fetch failed", append(args, "err", err)...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
