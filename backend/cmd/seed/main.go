package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"semnet-explorer/backend/internal/cache"
	"semnet-explorer/backend/internal/services"
	"semnet-explorer/backend/pkg/config"
	"semnet-explorer/backend/pkg/logger"
)

// sampleSentences give a fresh database something to draw
var sampleSentences = []string{
	"The dog is happy",
	"The cat is sleepy",
	"She went home after a joyful evening",
	"We have a creative idea",
	"They ate delicious soup",
	"The children were curious about the noisy street",
	"I feel hopeful today",
	"He says the plan is ambitious",
}

func main() {
	reset := flag.Bool("reset", false, "Delete all stored sentences before seeding")
	skipConfirm := flag.Bool("y", false, "Skip confirmation prompt")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	store, err := services.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open sentence store", zap.Error(err))
	}
	defer store.Close()

	if *reset {
		if !*skipConfirm {
			log.Warn("This will DELETE ALL stored sentences", zap.String("store", cfg.StoreBackend))
			fmt.Print("Are you sure you want to continue? (yes/no): ")
			var response string
			fmt.Scanln(&response)
			if response != "yes" && response != "y" {
				log.Info("Aborted.")
				os.Exit(0)
			}
		}

		log.Info("Resetting database...")
		if err := store.Reset(ctx); err != nil {
			log.Fatal("Failed to reset database", zap.Error(err))
		}
	}

	log.Info("Creating schema...")
	if err := store.EnsureSchema(ctx); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	svc := services.NewSentenceService(store, services.EmbedderFromConfig(cfg), cache.NewNetworkCache(0))
	added, err := seed(ctx, svc, sampleSentences)
	if err != nil {
		log.Fatal("Failed to seed sentences", zap.Int("added", added), zap.Error(err))
	}

	log.Info("Seeding complete", zap.Int("sentences", added))
}

// seed stores each sentence through the normal input pipeline
func seed(ctx context.Context, svc *services.SentenceService, sentences []string) (int, error) {
	added := 0
	for _, s := range sentences {
		if _, err := svc.AddSentence(ctx, s); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

