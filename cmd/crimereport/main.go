package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/crime-report-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/crime-report-service/internal/adapter/kafka"
	"github.com/couchcryptid/crime-report-service/internal/adapter/spotcrime"
	"github.com/couchcryptid/crime-report-service/internal/config"
	"github.com/couchcryptid/crime-report-service/internal/domain"
	"github.com/couchcryptid/crime-report-service/internal/observability"
	"github.com/couchcryptid/crime-report-service/internal/service"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Upstream client, optionally cached (CRIME_CACHE_TTL=0 disables).
	var source service.IncidentSource = spotcrime.NewClient(
		cfg.CrimeAPIURL, cfg.CrimeAPIKey, cfg.CrimeResultKey, cfg.CrimeAPITimeout, metrics, logger,
	)
	if cfg.CacheTTL > 0 {
		source = spotcrime.NewCachedSource(source, cfg.CacheSize, cfg.CacheTTL, clockwork.NewRealClock(), metrics)
		logger.Info("upstream cache enabled", "cache_size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	}

	// Report publishing (feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS).
	var publisher service.ReportPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("report publishing enabled", "topic", cfg.KafkaReportTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("report publishing disabled")
	}

	aggregator := domain.NewAggregator(domain.FieldKeys{
		Address:    cfg.FieldAddress,
		Category:   cfg.FieldCategory,
		OccurredAt: cfg.FieldDate,
	})
	svc := service.New(source, aggregator, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
