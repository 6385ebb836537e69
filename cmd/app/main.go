package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logistics/cmd"
	postgresadapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/jobs"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Errorf("Invalid configuration: %v", err)
		return 1
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Errorf("Error connecting to database: %v", err)
		return 1
	}
	if err = gormDB.AutoMigrate(postgresadapter.Models()...); err != nil {
		log.Errorf("Error migrating database: %v", err)
		return 1
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close outbound adapters", "error", closeErr)
		}
	}()

	scheduler, err := app.CreateAllocationScheduler(ctx)
	if err != nil {
		logger.Error("Allocation scheduler could not be created", "error", err)
		return 1
	}

	e, err := app.CreateWebServer(ctx, scheduler)
	if err != nil {
		logger.Error("Web server could not be created", "error", err)
		return 1
	}

	jobManager := jobs.NewJobManager(scheduler, logger)
	schedulerDone := jobManager.StartAll(ctx)

	serverErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("HTTP server listening", "addr", addr)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			serverErr <- startErr
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err = <-schedulerDone:
		// the scheduler only returns early when the next run cannot be computed
		if err != nil {
			logger.Error("Allocation scheduler stopped", "error", err)
			exitCode = 1
		}
	case err = <-serverErr:
		logger.Error("HTTP server failed", "error", err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	jobManager.StopAll()

	logger.Info("Service stopped")
	return exitCode
}
