package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/toumakido/todolist/internal/config"
	"github.com/toumakido/todolist/internal/server"
	"github.com/toumakido/todolist/internal/store"
)

func main() {
	os.Exit(run())
}

// run returns an exit code (0 ok, 1 runtime error, 2 usage).
func run() int {
	cfg, err := config.Load("server", os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 2
	}

	logger := newLogger(cfg, os.Stderr)

	// Create in-memory store
	var opts []store.Option
	if cfg.Seed {
		opts = append(opts, store.WithSeed(store.DefaultSeed(time.Now())...))
	}
	todos := store.NewMemoryStore(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, todos, logger).ListenAndServe(ctx); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		return 1
	}
	return 0
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
