// Package scheduler runs the periodic stock sweeps. It owns the timers
// only; the operations it invokes are idempotent inventory service
// methods that are equally callable from HTTP handlers.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
)

type Service struct {
	cfg          config.Scheduler
	logger       *slog.Logger
	inventorySvc service.InventoryService

	stopChan chan struct{}
}

func NewService(
	cfg config.Scheduler,
	logger *slog.Logger,
	inventorySvc service.InventoryService,
) *Service {
	return &Service{
		cfg:          cfg,
		logger:       logger.With(slog.String("service", "scheduler")),
		inventorySvc: inventorySvc,
		stopChan:     make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
		}
	}
}

func (s *Service) run(ctx context.Context) {
	sweepTicker := time.NewTicker(s.cfg.SweepInterval)
	defer sweepTicker.Stop()

	now := time.Now()
	dailySweepTimer := time.NewTimer(time.Until(s.cfg.DailySweepAt.Next(now)))
	defer dailySweepTimer.Stop()

	reconcileTimer := time.NewTimer(time.Until(s.cfg.AlertReconcileAt.Next(now)))
	defer reconcileTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return

		case <-sweepTicker.C:
			s.sweep(ctx, "interval")

		case <-dailySweepTimer.C:
			s.sweep(ctx, "daily")
			dailySweepTimer.Reset(time.Until(s.cfg.DailySweepAt.Next(time.Now())))

		case <-reconcileTimer.C:
			s.reconcile(ctx)
			reconcileTimer.Reset(time.Until(s.cfg.AlertReconcileAt.Next(time.Now())))
		}
	}
}

func (s *Service) sweep(ctx context.Context, kind string) {
	s.logger.InfoContext(ctx, "running scheduled stock sweep", slog.String("kind", kind))

	lowCount, err := s.inventorySvc.CheckAllForLowStock(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "error running stock sweep",
			slog.String("kind", kind), slog.Any("error", err))
		return
	}

	s.logger.InfoContext(ctx, "stock sweep finished",
		slog.String("kind", kind), slog.Int("low_stock_count", lowCount))
}

func (s *Service) reconcile(ctx context.Context) {
	s.logger.InfoContext(ctx, "running alert reconcile")

	removed, err := s.inventorySvc.ReconcileAlerts(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "error reconciling alerts", slog.Any("error", err))
		return
	}

	s.logger.InfoContext(ctx, "alert reconcile finished", slog.Int("removed", removed))
}
