package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finbook/internal/shared/config"
	"finbook/internal/shared/logging"
	"finbook/internal/shared/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("application error", logging.FieldError, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}))
	log := logging.Component(logging.ComponentApp)

	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Init(context.Background(), telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Telemetry.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTelemetry(ctx); err != nil {
				log.Error("telemetry shutdown failed", logging.FieldError, err)
			}
		}()
		log.Info("telemetry enabled", slog.String("metrics_port", cfg.Telemetry.MetricsPort))
	}

	deps, err := NewDependencies(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	handler := SetupRoutes(deps, cfg)
	srv, redirectSrv, serverErr := StartServers(NewServerConfigFromConfig(handler, cfg))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("received signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		GracefulShutdown(srv, redirectSrv, shutdownTimeout)
		return err
	}

	GracefulShutdown(srv, redirectSrv, shutdownTimeout)
	return nil
}
