package main

import (
	"context"
	"os"
	"time"

	"payslip/internal/amqp"
	"payslip/internal/cli"
	"payslip/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting payslip-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	// Journal is the worker's only job: every dispatch outcome published
	// by the server lands in the SQLite audit trail.
	journal := cli.InitJournal(logger, cfg.SQLiteDBPath)
	defer journal.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	journalWorker := worker.NewJournalWorker(journal)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	go func() {
		handler := func(msg *amqp.SlipDispatchedMessage) error {
			return journalWorker.HandleDispatchedMessage(ctx, msg)
		}
		if err := amqpClient.ConsumeSlipDispatched(ctx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
