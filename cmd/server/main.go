package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/meta"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/scheduler"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/server/router"
	"github.com/mamadbah2/stockroom/internal/service/receiving"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/pkg/clients/webhook"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	connectCtx, cancelConnect := context.WithTimeout(ctx, 15*time.Second)
	client, err := mongodb.Connect(connectCtx, cfg.MongoDB.URI)
	cancelConnect()
	if err != nil {
		baseLogger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	db := client.Database(cfg.MongoDB.DBName)
	orderRepo := mongodb.NewOrderRepository(db)
	receiptRepo := mongodb.NewReceiptRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	txn := mongodb.NewTxn(client, cfg.MongoDB.TxnDisabled)

	metaSvc := meta.NewService(metaFromConfig(cfg.Meta), baseLogger.Named("svc.meta"))

	var notifier receiving.Notifier
	if cfg.Webhook.URL != "" {
		notifier = webhook.NewClient(cfg.Webhook.URL, baseLogger.Named("clients.webhook"))
		baseLogger.Info("webhook notifications enabled")
	}

	receivingSvc := receiving.NewService(receiving.Deps{
		Orders:    orderRepo,
		Receipts:  receiptRepo,
		Inventory: inventoryRepo,
		Txn:       txn,
		Units:     metaSvc,
		Notifier:  notifier,
		Logger:    baseLogger.Named("svc.receiving"),
	})

	var exporter reporting.RowAppender
	if cfg.Sheets.Enabled() {
		sheetExporter, err := sheets.NewExporter(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("sheet export enabled")
	}

	reportingSvc := reporting.NewService(receiptRepo, reportRepo, exporter, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Inventory: handlers.NewInventoryHandler(inventoryRepo, baseLogger.Named("handlers.inventory")),
		Order:     handlers.NewOrderHandler(orderRepo, receivingSvc, baseLogger.Named("handlers.order")),
		Receipt:   handlers.NewReceiptHandler(receiptRepo, receivingSvc, baseLogger.Named("handlers.receipt")),
		Meta:      handlers.NewMetaHandler(metaSvc, baseLogger.Named("handlers.meta")),
		Report:    handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.report")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// metaFromConfig merges environment overrides over the built-in defaults.
func metaFromConfig(cfg config.MetaConfig) models.Meta {
	m := meta.Default()
	if len(cfg.Units) > 0 {
		m.Units = cfg.Units
	}
	if len(cfg.IntegerUnits) > 0 {
		m.IntegerUnits = cfg.IntegerUnits
	}
	if len(cfg.Categories) > 0 {
		m.Categories = cfg.Categories
	}
	return m
}
