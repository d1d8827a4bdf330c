package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/inventory-service/internal/alert"
	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	"github.com/tuanvumaihuynh/inventory-service/internal/exporter"
	"github.com/tuanvumaihuynh/inventory-service/internal/http"
	"github.com/tuanvumaihuynh/inventory-service/internal/log"
	"github.com/tuanvumaihuynh/inventory-service/internal/notifier"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
	"github.com/tuanvumaihuynh/inventory-service/internal/scheduler"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-service/internal/telemetry"
	"github.com/tuanvumaihuynh/inventory-service/pkg/cmdutil"
	"github.com/tuanvumaihuynh/inventory-service/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running api application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log       config.Log
		Postgres  config.Postgres
		HTTP      config.HTTP
		Alert     config.Alert
		Mail      config.Mail
		Sheets    config.Sheets
		Scheduler config.Scheduler
		Otel      config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	var notify notifier.Notifier
	if cfg.Mail.Enabled() {
		mailer, err := notifier.NewMailer(cfg.Mail, logger)
		if err != nil {
			return fmt.Errorf("error creating mailer: %w", err)
		}
		notify = mailer
	} else {
		notify = notifier.NewNoop(logger)
	}

	var export exporter.Exporter
	if cfg.Sheets.Enabled() {
		sheetsExporter, err := exporter.NewSheetsExporter(ctx, cfg.Sheets)
		if err != nil {
			return fmt.Errorf("error creating sheets exporter: %w", err)
		}
		export = sheetsExporter
	} else {
		export = exporter.NewDisabled()
	}

	productRepository := repository.NewProductRepository(dbClient)
	adminRepository := repository.NewAdminRepository(dbClient)
	staffRepository := repository.NewStaffRepository(dbClient)
	userRepository := repository.NewUserRepository(dbClient)

	tracker := alert.NewTracker()

	inventoryService := service.NewInventoryService(
		dbClient, productRepository, tracker, notify, export, cfg.Alert.StockThreshold, logger)
	orderService := service.NewOrderService(inventoryService, notify, logger)
	adminService := service.NewAdminService(dbClient, adminRepository, logger)
	staffService := service.NewStaffService(dbClient, staffRepository, logger)
	userService := service.NewUserService(dbClient, userRepository, logger)
	authService := service.NewAuthService(adminRepository, staffRepository, userRepository, logger)

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, v, dbClient,
			inventoryService, orderService, adminService, staffService, userService, authService)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := scheduler.NewService(cfg.Scheduler, logger, inventoryService)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "scheduler service started")

		<-interruptChan

		logger.InfoContext(ctx, "scheduler service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "scheduler service is stopped")
	})

	wg.Wait()

	return nil
}
