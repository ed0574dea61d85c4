package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until the context is cancelled
// or an interrupt is received, then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := deps.Server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to listen on %s: %v\n", c.Addr, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", deps.Server.URL())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(deps.Server.Serve)
	g.Go(func() error {
		<-gctx.Done()
		return deps.Server.Shutdown(context.Background())
	})

	return g.Wait()
}
