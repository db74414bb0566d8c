package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gigworks/ledgerd/internal/config"
	"github.com/gigworks/ledgerd/internal/contracts"
	"github.com/gigworks/ledgerd/internal/database"
	"github.com/gigworks/ledgerd/internal/ledger"
	"github.com/gigworks/ledgerd/internal/reporting"
	"github.com/gigworks/ledgerd/internal/server"
	"github.com/gigworks/ledgerd/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to open database", zap.Error(err))
	}

	if cfg.Database.Seed {
		if err := database.Seed(db); err != nil {
			zapLogger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	stopMetrics := make(chan struct{})
	go database.CollectPoolMetrics(db, 30*time.Second, stopMetrics)

	ledgerSvc := ledger.NewService(zapLogger, db)
	contractsSvc := contracts.NewService(zapLogger, db)
	reportingSvc := reporting.NewService(zapLogger, db)

	router := server.New(zapLogger, ledgerSvc, contractsSvc, reportingSvc)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		zapLogger.Info("ledgerd listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down")

	close(stopMetrics)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("forced shutdown", zap.Error(err))
	}
}
