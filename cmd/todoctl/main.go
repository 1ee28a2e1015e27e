package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/toumakido/todolist/internal/cli"
	"github.com/toumakido/todolist/internal/client"
	"github.com/toumakido/todolist/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaultAPI := os.Getenv("TODO_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:3000"
	}

	// Root flags (apply to every subcommand)
	api := flag.String("api", defaultAPI, "todo server base URL (env TODO_API)")
	groupPending := flag.Bool("group", false, "group output by pending/done")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := cli.NewRunner(client.New(*api, nil), ui.New(os.Stdout, os.Stderr), os.Stdout)
	return runner.Run(ctx, flag.Args(), cli.Options{
		Group: *groupPending,
	})
}
