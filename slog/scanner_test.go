package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/leadscan"
	"github.com/fwojciec/leadscan/mock"
	leadslog "github.com/fwojciec/leadscan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("logs counts for successful scans", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Scanner{
			ScanFn: func(_ context.Context, rawURL string) (*leadscan.Result, error) {
				return &leadscan.Result{
					URL:          "https://" + rawURL,
					Emails:       []string{"a@example.com", "b@example.com"},
					PhoneNumbers: []string{"555-123-4567"},
				}, nil
			},
		}

		scanner := leadslog.NewLoggingScanner(inner, logger)
		result, err := scanner.Scan(context.Background(), "example.com")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", result.URL)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "url=https://example.com")
		assert.Contains(t, output, "emails=2")
		assert.Contains(t, output, "phones=1")
	})

	t.Run("logs rate limited scans as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Scanner{
			ScanFn: func(_ context.Context, _ string) (*leadscan.Result, error) {
				return nil, leadscan.NewRateLimitError(3 * time.Second)
			},
		}

		scanner := leadslog.NewLoggingScanner(inner, logger)
		_, err := scanner.Scan(context.Background(), "example.com")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "please wait 3 seconds")
	})

	t.Run("logs fetch failures as errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Scanner{
			ScanFn: func(_ context.Context, _ string) (*leadscan.Result, error) {
				return nil, &leadscan.FetchError{URL: "https://example.com", Status: 502}
			},
		}

		scanner := leadslog.NewLoggingScanner(inner, logger)
		_, err := scanner.Scan(context.Background(), "example.com")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "code=fetch_failed")
		assert.Contains(t, output, "HTTP 502")
	})
}
