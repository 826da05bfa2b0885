// Command assetsearch-query runs one asset search against the configured store and prints the page
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"assetsearch/internal/platform/config"
	"assetsearch/internal/platform/logger"
	"assetsearch/internal/platform/store"
)

func main() {
	if _, err := config.LoadEnvFiles(); err != nil {
		logger.Get().Fatal().Err(err).Msg("reading env files failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		out: os.Stdout,
		open: func(ctx context.Context) (*store.Store, error) {
			return store.Open(ctx, store.ConfigFromEnv(config.New(), "assetsearch-query"), store.WithLogger(*logger.Get()))
		},
	}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
