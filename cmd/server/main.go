// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invensight/backend-go/internal/api"
	"github.com/invensight/backend-go/internal/cache"
	"github.com/invensight/backend-go/internal/config"
	"github.com/invensight/backend-go/internal/engine"
	"github.com/invensight/backend-go/internal/repository/postgres"
	"github.com/invensight/backend-go/internal/service"
	"github.com/invensight/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize cache (noop when disabled)
	analyticsCache, err := cache.NewAnalyticsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		analyticsCache = cache.NewNoopAnalyticsCache()
	}

	// Initialize repositories and services
	productRepo := postgres.NewProductRepository(db)
	saleRepo := postgres.NewSaleRepository(db)
	locationRepo := postgres.NewLocationRepository(db)

	params := engineParams(cfg.Engine)
	insightService := service.NewInsightService(productRepo, saleRepo, locationRepo, analyticsCache, nil, params)
	forecastService := service.NewForecastService(productRepo, saleRepo, locationRepo, analyticsCache, nil, params)

	router := api.NewRouter(&api.Services{
		InsightService:  insightService,
		ForecastService: forecastService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func engineParams(cfg config.EngineConfig) engine.Params {
	params := engine.DefaultParams()
	if cfg.VelocityWindowDays > 0 {
		params.VelocityWindowDays = cfg.VelocityWindowDays
	}
	if cfg.DeadStockThresholdDays > 0 {
		params.DeadStockThresholdDays = cfg.DeadStockThresholdDays
	}
	if cfg.TopInsights > 0 {
		params.TopInsights = cfg.TopInsights
	}
	return params
}
