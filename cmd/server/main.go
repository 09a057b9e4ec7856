package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-api-gateway/internal/adapter"
	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/handler"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/internal/policy"
	"github.com/MKhiriev/go-api-gateway/internal/ratelimit"
	"github.com/MKhiriev/go-api-gateway/internal/server"
	"github.com/MKhiriev/go-api-gateway/internal/service"
	"github.com/MKhiriev/go-api-gateway/internal/store"
	"github.com/MKhiriev/go-api-gateway/internal/workers"
	"github.com/MKhiriev/go-api-gateway/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("api-gateway")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Int("rate_limit", cfg.RateLimit.Limit).
		Dur("rate_limit_reset_interval", cfg.RateLimit.ResetInterval).
		Dur("rate_limit_block_duration", cfg.RateLimit.BlockDuration).
		Str("log_sink_url", cfg.Adapter.LogSink.URL).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := run(ctx, cfg, buildInfo, log); err != nil {
		log.Fatal().Err(err).Msg("gateway stopped with error")
	}
}

func run(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	m := metrics.New()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	adapters, err := adapter.NewAdapters(cfg.Adapter, log)
	if err != nil {
		return fmt.Errorf("error creating adapters: %w", err)
	}

	services, err := service.NewServices(storages, adapters.IdentityProvider, cfg, buildInfo, m, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	limiter := ratelimit.New(int64(cfg.RateLimit.Limit), cfg.RateLimit.BlockDuration)

	handlers, err := handler.NewHandlers(services, limiter, policy.NewDefaultTable(), m, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	background := workers.NewWorkers(
		workers.NewRateLimitResetWorker(limiter, cfg.RateLimit.ResetInterval, m, log),
		workers.NewAccessLogWorker(services.AccessLogService.Records(), adapters.LogSink, cfg.Adapter.LogSink.RequestTimeout, m, log),
	)

	// workers outlive the server so that records of drained requests are
	// still forwarded
	workersCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		background.Run(workersCtx)
	}()

	runErr := srv.RunServer(ctx)

	stopWorkers()
	<-workersDone

	return runErr
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
