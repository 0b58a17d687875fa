package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"semnet-explorer/backend/internal/api"
	"semnet-explorer/backend/internal/cache"
	"semnet-explorer/backend/internal/services"
	"semnet-explorer/backend/pkg/config"
	"semnet-explorer/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.InitWithOptions(cfg.Env, logger.Options{FilePath: cfg.LogFile}); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...", zap.String("store", cfg.StoreBackend))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := services.OpenStore(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatal("Failed to open sentence store", zap.Error(err))
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Warn("Failed to ensure schema", zap.Error(err))
	}
	cancel()
	defer store.Close()

	embedder := services.EmbedderFromConfig(cfg)
	if embedder == nil {
		log.Info("Embeddings disabled, sentences are stored without vectors")
	}

	svc := services.NewSentenceService(store, embedder, cache.NewNetworkCache(cfg.NetworkCacheTTL))

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(svc, log)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
