package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sulayman101/puntrms/internal/application/service"
	"github.com/sulayman101/puntrms/internal/config"
	"github.com/sulayman101/puntrms/internal/infrastructure/database"
	"github.com/sulayman101/puntrms/internal/infrastructure/notify"
	"github.com/sulayman101/puntrms/internal/infrastructure/repository"
	"github.com/sulayman101/puntrms/internal/presentation/http/handler"
	"github.com/sulayman101/puntrms/internal/presentation/http/routes"
	"github.com/sulayman101/puntrms/pkg/printer"
	"github.com/sulayman101/puntrms/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	var zapLogger *zap.Logger
	var err error
	if cfg.App.Env == "production" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatalw("database connection failed", "err", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatalw("migrations failed", "err", err)
	}

	if err := database.SeedDefaultData(db, cfg.Seed.AdminPhone, cfg.Seed.AdminPIN); err != nil {
		logger.Warnw("seeding default data failed", "err", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Repositories
	staffRepo := repository.NewStaffRepository(db)
	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Expired idempotency keys pile up otherwise; sweep them hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				logger.Warnw("idempotency cleanup failed", "err", err)
			}
		}
	}()

	// Change notifier: redis when configured, otherwise a no-op
	notifier := notify.NewNoop()
	if cfg.Redis.Enabled {
		n, err := notify.NewRedis(cfg.Redis.Addr, logger)
		if err != nil {
			logger.Warnw("redis unavailable, change notifications disabled", "err", err)
		} else {
			notifier = n
		}
	}
	defer notifier.Close()

	// Thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		logger.Warnw("printer initialization failed, using null printer", "err", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Services
	authService := service.NewAuthService(staffRepo, jwtManager)
	staffService := service.NewStaffService(staffRepo)
	itemService := service.NewItemService(itemRepo)
	orderService := service.NewOrderService(orderRepo, itemRepo, staffRepo, counterRepo, notifier)
	settlementService := service.NewSettlementService(orderRepo, loanRepo, itemRepo, notifier, logger)
	loanService := service.NewLoanService(loanRepo, notifier)
	reportService := service.NewReportService(orderRepo, itemRepo, loanRepo)
	printerService := service.NewPrinterService(thermalPrinter, orderRepo, itemRepo, cfg.App.Name, cfg.Printer.Width, logger)

	// Handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Order:   handler.NewOrderHandler(orderService, settlementService),
		Item:    handler.NewItemHandler(itemService),
		Loan:    handler.NewLoanHandler(loanService),
		Report:  handler.NewReportHandler(reportService),
		Staff:   handler.NewStaffHandler(staffService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
	})

	logger.Infow("server starting", "port", cfg.App.Port, "env", cfg.App.Env)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatalw("server exited", "err", err)
	}
}
