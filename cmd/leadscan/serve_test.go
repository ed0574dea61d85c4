package main_test

import (
	"bytes"
	"context"
	"testing"

	main "github.com/fwojciec/leadscan/cmd/leadscan"
	leadhttp "github.com/fwojciec/leadscan/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shuts down when context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		server := leadhttp.NewServer()
		server.Addr = "127.0.0.1:0"

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Server: server,
		}

		cmd := &main.ServeCmd{Addr: server.Addr}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Listening on http://127.0.0.1:")
	})

	t.Run("reports listen failure", func(t *testing.T) {
		t.Parallel()

		server := leadhttp.NewServer()
		server.Addr = "invalid-address"

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Server: server,
		}

		cmd := &main.ServeCmd{Addr: server.Addr}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "failed to listen")
	})
}
