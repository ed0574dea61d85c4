package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/leadscan"
	main "github.com/fwojciec/leadscan/cmd/leadscan"
	"github.com/fwojciec/leadscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScanner() *mock.Scanner {
	return &mock.Scanner{
		ScanFn: func(_ context.Context, rawURL string) (*leadscan.Result, error) {
			return &leadscan.Result{
				URL:          leadscan.NormalizeURL(rawURL),
				Emails:       []string{"contact@example.com"},
				PhoneNumbers: []string{"(555) 123-4567"},
			}, nil
		},
	}
}

func TestScanCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints contacts as text", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Scanner: sampleScanner(),
		}

		cmd := &main.ScanCmd{URL: "example.com", Format: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "URL: https://example.com")
		assert.Contains(t, output, "contact@example.com")
		assert.Contains(t, output, "(555) 123-4567")
		assert.Empty(t, stderr.String())
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scanner: sampleScanner(),
		}

		cmd := &main.ScanCmd{URL: "example.com", Format: "json"}
		require.NoError(t, cmd.Run(deps))

		var result leadscan.Result
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		assert.Equal(t, []string{"contact@example.com"}, result.Emails)
	})

	t.Run("prints CSV", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scanner: sampleScanner(),
		}

		cmd := &main.ScanCmd{URL: "example.com", Format: "csv"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "type,value,url\n"+
			"email,contact@example.com,https://example.com\n"+
			"phone,(555) 123-4567,https://example.com\n", stdout.String())
	})

	t.Run("writes CSV export to directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Scanner: sampleScanner(),
		}

		cmd := &main.ScanCmd{URL: "example.com", Format: "text", Export: dir}
		require.NoError(t, cmd.Run(deps))

		matches, err := filepath.Glob(filepath.Join(dir, "emails_*.csv"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Contains(t, stderr.String(), "Exported to "+matches[0])

		content, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		assert.Contains(t, string(content), "email,contact@example.com,https://example.com")
	})

	t.Run("saves result for user", func(t *testing.T) {
		t.Parallel()

		var saved *leadscan.Result
		results := &mock.ResultService{
			CreateResultFn: func(_ context.Context, r *leadscan.Result) error {
				r.ID = "result-1"
				saved = r
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scanner: sampleScanner(),
			Results: results,
		}

		cmd := &main.ScanCmd{URL: "example.com", Format: "text", Save: true, User: "alice"}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, saved)
		assert.Equal(t, "alice", saved.UserID)
		assert.Contains(t, stdout.String(), "Saved as result-1")
	})

	t.Run("reports wait time when rate limited", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Scanner: &mock.Scanner{
				ScanFn: func(_ context.Context, _ string) (*leadscan.Result, error) {
					return nil, leadscan.NewRateLimitError(4 * time.Second)
				},
			},
		}

		cmd := &main.ScanCmd{URL: "example.com", Format: "text"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, leadscan.ERATELIMIT, leadscan.ErrorCode(err))
		assert.Contains(t, stderr.String(), "please wait 4 seconds")
	})

	t.Run("reports generic message on fetch failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Scanner: &mock.Scanner{
				ScanFn: func(_ context.Context, _ string) (*leadscan.Result, error) {
					return nil, &leadscan.FetchError{URL: "https://example.com", Err: errors.New("dial tcp: timeout")}
				},
			},
		}

		cmd := &main.ScanCmd{URL: "example.com", Format: "text"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: failed to fetch website")
	})

	t.Run("returns save errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Scanner: sampleScanner(),
			Results: &mock.ResultService{
				CreateResultFn: func(_ context.Context, _ *leadscan.Result) error {
					return leadscan.Errorf(leadscan.EINVALID, "result user ID required")
				},
			},
		}

		cmd := &main.ScanCmd{URL: "example.com", Format: "text", Save: true}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "result user ID required")
	})
}
