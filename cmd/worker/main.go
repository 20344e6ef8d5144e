// Standalone outbox worker. Deployments that scale the API horizontally run
// exactly one of these instead of the in-process worker, so each pending
// event is claimed once.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/config"
	"storefront/infrastructure/messaging"
	"storefront/infrastructure/persistence/mysql"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !cfg.Worker.Enabled {
		logger.Info("Outbox worker is disabled by config; exiting")
		return nil
	}
	if cfg.Database.Type != "mysql" {
		return fmt.Errorf("outbox worker requires the mysql persistence layer")
	}

	db, err := mysql.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	var publisher mysql.OutboxPublisher = &mysql.LoggingOutboxPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaPublisher := messaging.NewKafkaPublisher(&cfg.Kafka)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	worker, err := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(db),
		publisher,
		cfg.Worker.PollInterval,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxRetries,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox worker: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Outbox worker started",
		zap.Duration("poll_interval", cfg.Worker.PollInterval),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("outbox worker exited with error: %w", err)
	}

	logger.Info("Outbox worker stopped")
	return nil
}
