package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/user/trending-service/internal/api"
	"github.com/user/trending-service/internal/config"
	"github.com/user/trending-service/internal/crawler"
	"github.com/user/trending-service/internal/monitoring"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Initialize Monitoring
	metrics := monitoring.NewMetrics()

	// Initialize Core Crawler
	trendingCrawler, err := crawler.New(cfg, metrics, logger)
	if err != nil {
		logger.Fatal("could not build crawler", zap.Error(err))
	}

	// Initialize API Server
	server := api.NewServer(cfg, trendingCrawler, logger)

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
