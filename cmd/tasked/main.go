// Package main is the entry point for the tasked CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasked/internal/cli"
	"tasked/internal/commands"
	"tasked/internal/config"
	"tasked/internal/remote"
	"tasked/internal/remote/googletasks"
	"tasked/internal/remote/httpsync"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create remote factory: gtasks: origins use the Google Tasks API,
	// everything else is a plain HTTP resource.
	remotes := func(ctx context.Context, cfg *config.Config, origin string) (remote.Transport, error) {
		if list, ok := remote.GoogleTasksList(origin); ok {
			c, err := googletasks.New(ctx, cfg, list)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
		c, err := httpsync.New(origin,
			httpsync.WithTimeout(cfg.HTTPTimeout),
			httpsync.WithLogger(cfg.Log),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, remotes)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
