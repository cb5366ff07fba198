package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/table-facts/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/table-facts/internal/adapter/kafka"
	"github.com/couchcryptid/table-facts/internal/adapter/table"
	"github.com/couchcryptid/table-facts/internal/config"
	"github.com/couchcryptid/table-facts/internal/domain"
	"github.com/couchcryptid/table-facts/internal/observability"
	"github.com/couchcryptid/table-facts/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	var loader pipeline.TableLoader = table.NewLoader(logger)
	if cfg.TableCacheSize > 0 {
		loader = table.NewCachedLoader(loader, cfg.TableCacheSize)
	}

	analyzer := pipeline.NewAnalyzer(
		loader,
		domain.Source{Path: cfg.WeatherPath, Delimiter: cfg.WeatherDelimiter},
		domain.Source{Path: cfg.CountriesPath, Delimiter: cfg.CountriesDelimiter},
		cfg.ParseWorkers,
		logger,
		metrics,
	)

	// Report publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var (
		publisher pipeline.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("report publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("report publishing disabled")
	}

	svc := pipeline.New(analyzer, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh scheduler.
	go func() {
		if err := svc.Run(ctx, cfg.RefreshSchedule); err != nil {
			logger.Error("scheduler error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
