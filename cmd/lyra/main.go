// Package main is the entry point for the lyra demo CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-mizu/blueprints/lyra/internal/clidemo"
)

// Version information (set at build time via ldflags).
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	clidemo.Version = Version
	clidemo.Commit = Commit

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := clidemo.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
