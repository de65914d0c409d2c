package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockscan/internal/commons"
	"stockscan/internal/infrastructure/logger"
	"stockscan/internal/infrastructure/metrics"
	"stockscan/internal/infrastructure/mysql"
	"stockscan/internal/scanlog"
	"stockscan/internal/server"
	"stockscan/internal/session"
	"stockscan/internal/stock"
	"stockscan/internal/stock/usecase"

	"go.uber.org/zap"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := commons.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.SAP.BaseURL == "" {
		zapLogger.Warn("SAP_BASE_API_URL is not set; every lookup will fail")
	}

	reg := metrics.NewRegistry()
	deps := server.RouterDeps{
		Metrics:        reg.Handler(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	var recorder usecase.ScanRecorder
	if cfg.ScanLog.Enabled {
		db, err := mysql.NewConnection(context.Background(), cfg.Database)
		if err != nil {
			zapLogger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		zapLogger.Info("database connected")

		scansCtrl, scanSvc, err := scanlog.NewModule(context.Background(), db, zapLogger)
		if err != nil {
			zapLogger.Fatal("preparing scan log", zap.Error(err))
		}
		deps.Scans = scansCtrl
		recorder = scanSvc
	}

	if auth := session.NewAPIKeyAuthenticator(cfg.Auth.APIKeys); auth != nil {
		deps.Auth = auth
		zapLogger.Info("API key authentication enabled", zap.Int("keys", len(cfg.Auth.APIKeys)))
	}

	deps.Stock = stock.NewModule(cfg, nil, reg, recorder, zapLogger)

	router := server.NewRouter(deps, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
