package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/mailloop/sendonce/config"
	"github.com/mailloop/sendonce/internal/app"
	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/pkg/logger"
)

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

func main() {
	dryRun := flag.Bool("dry-run", false, "show what would be done without making changes")
	loop := flag.Bool("loop", false, "keep running on the configured interval instead of a single pass")
	reconcile := flag.Bool("reconcile", false, "repair partial finalizations (record exists but campaign still published) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		osExit(1)
		return
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)

	if err := run(cfg, appLogger, *dryRun, *loop, *reconcile); err != nil {
		osExit(1)
	}
}

func run(cfg *config.Config, appLogger logger.Logger, dryRun, loop, reconcile bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	appInstance := app.NewApp(cfg, app.WithLogger(appLogger))
	if err := appInstance.Initialize(ctx); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to initialize")
		return err
	}
	defer func() { _ = appInstance.Shutdown() }()

	if reconcile {
		repaired, err := appInstance.Reconcile(ctx)
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Reconciliation failed")
			return err
		}
		appLogger.WithField("repaired", repaired).Info("Reconciliation complete")
		return nil
	}

	mode := domain.RunModeApply
	if dryRun {
		mode = domain.RunModePreview
	}

	if loop {
		err := appInstance.RunLoop(ctx, mode)
		if err == context.Canceled {
			appLogger.Info("Shutdown signal received, stopping")
			return nil
		}
		return err
	}

	// Exit status reflects process-level success only; individual campaign
	// failures are reported in the summary.
	if _, err := appInstance.RunOnce(ctx, mode); err != nil {
		appLogger.WithField("error", err.Error()).Error("Finalization pass failed")
		return err
	}

	return nil
}
