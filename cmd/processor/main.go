package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"paymux/internal/conf"
	"paymux/internal/core"
	"paymux/internal/health"
	"paymux/internal/server"
	"paymux/internal/service/provider"
)

func main() {
	cfg, err := conf.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error parsing envs")
	}
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	processorDefault := provider.NewPaymentProviderService(cfg.ProcessorDefaultBaseUrl)
	processorFallback := provider.NewPaymentProviderService(cfg.ProcessorFallbackBaseUrl)

	app := core.NewApp(processorDefault, processorFallback, cfg.QueueBufferSize)

	monitor := health.NewHealthMonitor(processorDefault, processorFallback, app.Health)
	monitor.Start(ctx)

	dispatcher := core.NewDispatcher(app)
	dispatcher.Start(ctx, cfg.DispatchGoroutines)

	listener, err := server.Listen(cfg.UdsPath)
	if err != nil {
		log.Fatal().Err(err).Str("udsPath", cfg.UdsPath).Msg("Failed to bind socket")
	}

	log.Info().Str("udsPath", cfg.UdsPath).Msg("paymux processor listening")
	if err := server.NewCommandServer(app).Serve(ctx, listener); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
	log.Info().Msg("paymux processor shutdown complete")
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
