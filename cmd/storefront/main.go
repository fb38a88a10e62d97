package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"storefront/pkg/config"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

func main() {
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, errors.MessageOf(err))
		os.Exit(1)
	}
}
