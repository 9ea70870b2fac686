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

	app "github.com/mohammadpnp/asset-import/internal/application/importjob"
	"github.com/mohammadpnp/asset-import/internal/bootstrap"
	"github.com/mohammadpnp/asset-import/internal/config"
	"github.com/mohammadpnp/asset-import/internal/logging"
)

func main() {
	cfg, err := config.Load(true)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	storage, err := bootstrap.OpenStorage(context.Background(), cfg.DatabaseURL, cfg.AutoMigrate)
	if err != nil {
		logger.Error("open storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	processor := app.NewProcessor(storage.Jobs, storage.Targets, app.ProcessorConfig{ChunkSize: cfg.ChunkSize}, logger)
	runner := app.NewRunner(processor, app.RunnerConfig{Workers: cfg.Workers, QueueSize: cfg.QueueSize}, logger)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	runner.Start(workerCtx)

	server := bootstrap.NewHTTPServer(storage.Jobs, processor, runner, bootstrap.ServerOptions{
		BodyLimit: cfg.BodyLimit,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})

	go func() {
		logger.Info("http server listening", "port", cfg.Port, "workers", cfg.Workers, "chunk_size", cfg.ChunkSize)
		if err := server.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	// Jobs still running stop before their next chunk and stay in processing.
	stopWorkers()
	if err := runner.Wait(); err != nil {
		logger.Error("import workers stopped", "error", err)
	}
}
