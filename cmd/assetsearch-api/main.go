// @title         assetsearch API
// @version       1.0
// @description   VRChat asset search over the avatar libraries
// @BasePath      /api/v1

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"assetsearch/internal/core/version"
	"assetsearch/internal/modkit/repokit"
	"assetsearch/internal/platform/config"
	"assetsearch/internal/platform/logger"
	phttp "assetsearch/internal/platform/net/http"
	"assetsearch/internal/platform/store"

	"assetsearch/internal/services/api"
)

const serviceName = "assetsearch-api"

func main() {
	// env files first so LOG_* reaches the logger
	loaded, envErr := config.LoadEnvFiles()

	l := logger.Get()
	if envErr != nil {
		l.Fatal().Err(envErr).Msg("reading env files failed")
	}
	l.Info().Strs("env_files", loaded).Str("build", version.Info(serviceName).String()).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// MySQL or Postgres per SERVICE_DB_DRIVER, ClickHouse when SERVICE_CLICKHOUSE_ENABLED
	st, err := store.Open(ctx, store.ConfigFromEnv(root, serviceName), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// reads CORE_API_PORT / CORE_API_WRITE_TIMEOUT
	srv := phttp.NewServer(root.Prefix("CORE_"))

	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		ServiceName:    serviceName,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
