package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BruksfildServices01/visit-tracker/internal/cli"
	"github.com/BruksfildServices01/visit-tracker/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(config.Load()).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
