package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/mirror"
	"fintrack/internal/remote"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentWorker)
	logger.Info("Starting fintrack-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	if !cfg.SyncEnabled() {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	if cfg.RemoteAPIBaseURL == "" {
		logger.Error("REMOTE_API_BASE_URL is required for the worker")
		os.Exit(1)
	}

	// The worker reads the same store the server writes to.
	adapter, kv := cli.OpenStore(logger, cfg)
	defer kv.Close()

	remoteClient := remote.New(cfg.RemoteAPIBaseURL, nil)

	var sheetsMirror worker.Mirror
	if cfg.MirrorEnabled() {
		m, err := mirror.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Sheets mirror", "error", err)
			os.Exit(1)
		}
		sheetsMirror = m
		logger.Info("Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Sheets mirror disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(adapter, remoteClient, sheetsMirror)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, done := cli.GracefulShutdown(logger, 30*time.Second, cancel)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeSync(gctx, func(msg *amqp.SyncMessage) error {
			return syncWorker.HandleSyncMessage(gctx, msg)
		})
	})

	g.Go(func() error {
		c := cron.New()
		_, err := c.AddFunc(cfg.ReconcileSchedule, func() {
			if err := syncWorker.Reconcile(gctx); err != nil {
				logger.Error("Scheduled reconcile failed", "error", err)
			}
		})
		if err != nil {
			return err
		}
		c.Start()
		<-gctx.Done()
		stopCtx := c.Stop()
		<-stopCtx.Done()
		return gctx.Err()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	<-done
	logger.Info("Worker shutdown complete")
}
