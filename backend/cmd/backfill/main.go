package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"semnet-explorer/backend/internal/cache"
	"semnet-explorer/backend/internal/services"
	"semnet-explorer/backend/pkg/config"
	"semnet-explorer/backend/pkg/logger"
)

func main() {
	batch := flag.Int("batch", 50, "Sentences to load and embed per page")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting vector backfill...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	embedder := services.EmbedderFromConfig(cfg)
	if embedder == nil {
		log.Fatal("EMBEDDING_URL is required for backfill")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := services.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open sentence store", zap.Error(err))
	}
	defer store.Close()

	svc := services.NewSentenceService(store, embedder, cache.NewNetworkCache(0))

	total, err := svc.BackfillVectors(ctx, *batch)
	if err != nil {
		log.Error("Backfill stopped", zap.Int("embedded", total), zap.Error(err))
		return
	}

	log.Info("Backfill complete", zap.Int("embedded", total))
}
