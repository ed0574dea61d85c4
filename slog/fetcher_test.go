package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/leadscan"
	"github.com/fwojciec/leadscan/mock"
	leadslog "github.com/fwojciec/leadscan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs page size for successful fetch", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufferLogger()
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<a href="mailto:info@example.com">`, nil
			},
		}

		body, err := leadslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, `<a href="mailto:info@example.com">`, body)
		output := buf.String()
		assert.Contains(t, output, "level=INFO msg=fetch")
		assert.Contains(t, output, "url=https://example.com")
		assert.Contains(t, output, "bytes=34")
		assert.NotContains(t, output, "err=")
	})

	t.Run("logs HTTP status of rejected fetch", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufferLogger()
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", &leadscan.FetchError{URL: url, Status: 403}
			},
		}

		_, err := leadslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://example.com")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, `level=WARN msg="fetch failed"`)
		assert.Contains(t, output, "status=403")
		assert.Contains(t, output, `err="failed to fetch https://example.com: HTTP 403"`)
	})

	t.Run("omits status for transport failures", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufferLogger()
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", &leadscan.FetchError{URL: url, Err: errors.New("connection refused")}
			},
		}

		_, err := leadslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://example.com")

		require.Error(t, err)
		output := buf.String()
		assert.NotContains(t, output, "status=")
		assert.Contains(t, output, "connection refused")
	})

	t.Run("returns the fetch error unchanged", func(t *testing.T) {
		t.Parallel()

		logger, _ := newBufferLogger()
		want := &leadscan.FetchError{URL: "https://example.com", Status: 502}
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", want
			},
		}

		_, err := leadslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://example.com")

		var fe *leadscan.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Same(t, want, fe)
		assert.Equal(t, leadscan.EFETCH, leadscan.ErrorCode(err))
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	logger, _ := newBufferLogger()
	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	require.NoError(t, leadslog.NewLoggingFetcher(inner, logger).Close())
	assert.True(t, closed)
}
