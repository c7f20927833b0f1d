package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erikadonato/to-do-list/internal/api"
	"github.com/erikadonato/to-do-list/internal/config"
	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/logging"
	"github.com/erikadonato/to-do-list/internal/observability"
	"github.com/erikadonato/to-do-list/internal/outbox"
	"github.com/erikadonato/to-do-list/internal/persistence"
	"github.com/erikadonato/to-do-list/internal/persistence/postgres"
	httptransport "github.com/erikadonato/to-do-list/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open activity store", slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	var dispatcher *outbox.Dispatcher
	if pg, ok := store.(*postgres.Repository); ok && cfg.OutboxEnabled {
		producer := outbox.NewKafkaProducer(cfg.KafkaBrokers)
		defer producer.Close()

		dispatcher = outbox.NewDispatcher(pg.Pool(), producer, cfg.OutboxPollInterval, cfg.OutboxBatchSize, outbox.WithLogger(logger))
		go dispatcher.Start(ctx)
	}

	service := domain.NewService(store,
		domain.WithLogger(logger),
		domain.WithObserver(observability.ServiceObserver{}),
	)

	handler := api.NewHandler(service, logger)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, httptransport.Chain(mux,
		httptransport.RequestID,
		httptransport.AccessLog(logger),
		httptransport.Metrics(api.RouteSearch, api.RouteSave, api.RouteUpdate, api.RouteDelete, api.RouteHealth),
		httptransport.CORS(cfg.CORSAllowedOrigin),
	))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("activity api listening", slog.String("address", cfg.HTTPAddress), slog.String("driver", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			shutdownCh <- syscall.SIGTERM
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}

	if dispatcher != nil {
		dispatcher.Wait()
	}
}
