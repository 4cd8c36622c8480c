package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mailloop/sendonce/config"
	"github.com/mailloop/sendonce/internal/database/schema"
	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/internal/repository"
	"github.com/mailloop/sendonce/internal/service"
	"github.com/mailloop/sendonce/pkg/logger"
)

// App wires config, database, repositories and services together for the
// finalizer process.
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB

	runner            *service.Runner
	finalizer         *service.Finalizer
	broadcastComplete *service.BroadcastCompleteService
}

// AppOption configures the App
type AppOption func(*App)

// WithLogger sets a custom logger
func WithLogger(l logger.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	a := &App{
		config: cfg,
		logger: logger.NewLoggerWithLevel(cfg.LogLevel),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialize opens the database, ensures the side tables exist, and builds
// the service graph.
func (a *App) Initialize(ctx context.Context) error {
	db, err := sql.Open("postgres", a.config.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db

	if err := schema.EnsureSendOnceTables(ctx, db); err != nil {
		return err
	}

	campaignRepo := repository.NewCampaignRepository(db)
	finalizationRepo := repository.NewFinalizationRepository(db)
	recipientRepo := repository.NewRecipientRepository(db)
	sendOnceRepo := repository.NewSendOnceRepository(db)

	resolver := service.NewVariantResolver(campaignRepo, a.logger)
	detector := service.NewCompletionDetector(resolver, campaignRepo, recipientRepo, a.logger)
	a.finalizer = service.NewFinalizer(campaignRepo, finalizationRepo, a.logger)
	a.runner = service.NewRunner(campaignRepo, detector, a.finalizer, a.config.Runner.CandidatePageSize, a.logger)
	a.broadcastComplete = service.NewBroadcastCompleteService(
		campaignRepo, sendOnceRepo, finalizationRepo, recipientRepo, a.finalizer, a.logger,
	)

	return nil
}

// RunOnce executes a single finalization pass.
func (a *App) RunOnce(ctx context.Context, mode domain.RunMode) (domain.RunSummary, error) {
	return a.runner.RunOnce(ctx, mode)
}

// RunLoop executes passes on the configured interval until the context is
// cancelled. A failed pass is logged and the loop continues; the scheduler
// cadence is the retry.
func (a *App) RunLoop(ctx context.Context, mode domain.RunMode) error {
	interval := time.Duration(a.config.Runner.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := a.runner.RunOnce(ctx, mode); err != nil {
			a.logger.WithField("error", err.Error()).Error("Finalization pass failed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Reconcile repairs partial finalizations (record exists, campaign still
// published) by re-running only the disable step.
func (a *App) Reconcile(ctx context.Context) (int, error) {
	return a.finalizer.ReconcilePartial(ctx)
}

// OnDeliveryBatchComplete exposes the event-triggered finalization path.
func (a *App) OnDeliveryBatchComplete(ctx context.Context, campaignID int64) {
	a.broadcastComplete.OnDeliveryBatchComplete(ctx, campaignID)
}

// Shutdown releases the database connection.
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
