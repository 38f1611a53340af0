package main

import (
	"context"
	"errors"
	"os"

	"budget/internal/cli"
	"budget/internal/events"
	"budget/internal/log"
	"budget/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if !cfg.EventsEnabled() {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to connect to message broker", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	audit := worker.NewAuditWorker(logger)

	logger.Info("Starting budget worker",
		log.FieldOperation, log.OpStartup,
		"queue", cfg.AMQPQueue)
	if err := client.Consume(ctx, audit.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
