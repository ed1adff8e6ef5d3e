// Package main provides the main entry point for the Despensa pantry API server
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	pantryapp "github.com/despensa/v1/internal/application/pantry"
	"github.com/despensa/v1/internal/infrastructure/config"
	httpserver "github.com/despensa/v1/internal/infrastructure/http/server"
	"github.com/despensa/v1/internal/infrastructure/monitoring"
	"github.com/despensa/v1/internal/infrastructure/persistence/memory"
	"github.com/despensa/v1/internal/infrastructure/persistence/postgres"
	"github.com/despensa/v1/internal/ports/outbound"
	"github.com/despensa/v1/pkg/healthcheck"
	"github.com/despensa/v1/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
		Service:     cfg.App.Name,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	health := healthcheck.New(cfg.App.Name, cfg.App.Version, zapLogger)

	var repo outbound.StockRepository
	switch cfg.Database.Driver {
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		repo = postgres.NewStockRepository(pool, zapLogger)
		health.Register("database", healthcheck.NewDatabaseChecker(pool))
	default:
		zapLogger.Info("Using in-memory stock repository")
		repo = memory.NewStockRepository()
	}

	pantryService := pantryapp.NewService(repo, zapLogger)
	metrics := monitoring.NewMetricsCollector()
	srv := httpserver.NewServer(cfg, zapLogger, pantryService, metrics, health)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		zapLogger.Fatal("Server failed", zap.Error(err))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}

	zapLogger.Info("Server stopped")
}
