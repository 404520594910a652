// Package main is the entry point for the lrucache binary. It
// supports three subcommands:
//
//   - serve: shares one LRU cache over HTTP, with Prometheus metrics
//   - demo:  walks through eviction on a capacity-2 cache
//   - bench: replays a skewed workload and reports hit ratios
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lrucache/internal/cmd"
	"lrucache/internal/config"
)

// version is injected at build time via -ldflags
// (e.g. -ldflags "-X main.version=v1.2.3").
var version = "devel"

func main() {
	// Signal-aware context is the root of ownership for long-lived background work.
	// When SIGINT/SIGTERM arrives, ctx is canceled and we initiate a clean shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Cobra is configured with SilenceErrors: true, so we
		// print the error here for consistent formatting.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	conf, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rootCmd, err := cmd.NewRootCommand(conf, version)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return rootCmd.ExecuteContext(ctx)
}
