package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"etching/cmd"
	httpadapter "etching/internal/adapters/in/http"
	kafka_adapter "etching/internal/adapters/out/kafka"
	redis_adapter "etching/internal/adapters/out/redis"
	"etching/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// serveCmd runs the API until SIGINT or SIGTERM, then drains requests and
// stops the jobs.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the scheduled jobs",
	RunE: func(_ *cobra.Command, _ []string) error {
		configs, err := cmd.LoadConfig(envFile)
		if err != nil {
			return err
		}
		logger := newLogger()

		db, err := openDB(configs)
		if err != nil {
			return err
		}

		var publisher interface {
			ports.EventPublisher
			Close() error
		}
		if len(configs.KafkaBrokers) == 0 {
			logger.Warn("no kafka brokers configured, domain events will be dropped")
			publisher = kafka_adapter.NewNoopPublisher(logger)
		} else {
			publisher = kafka_adapter.NewPublisher(
				kafka_adapter.NewWriter(configs.KafkaBrokers),
				kafka_adapter.Topics{Order: configs.KafkaOrderTopic, Quote: configs.KafkaQuoteTopic},
				configs.KafkaProducer,
				logger,
			)
		}
		defer func() { _ = publisher.Close() }()

		var cache ports.StatusCache
		if configs.RedisAddr != "" {
			rdb := redis_adapter.NewClient(configs.RedisAddr)
			defer func() { _ = rdb.Close() }()
			cache = redis_adapter.NewStatusCache(rdb, configs.StatusCacheTTL)
		}

		app := cmd.NewCompositionRoot(configs, db, publisher, cache, logger)

		jobManager := app.CreateJobManager()
		if err = jobManager.StartAll(); err != nil {
			return err
		}
		defer jobManager.StopAll()

		doc, err := httpadapter.LoadOpenAPI()
		if err != nil {
			return fmt.Errorf("load openapi: %w", err)
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := httpadapter.NewMetrics(registry)

		e := httpadapter.NewRouter(httpadapter.NewServer(app.HTTPHandlers(), metrics), doc, metrics)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				e.Logger.Fatal(startErr)
			}
		}()

		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}
