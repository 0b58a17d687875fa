package services

import (
	"context"

	"semnet-explorer/backend/internal/adapter"
	"semnet-explorer/backend/internal/graph"
	"semnet-explorer/backend/internal/sqlstore"
	"semnet-explorer/backend/internal/state"
	"semnet-explorer/backend/pkg/config"
	apperrors "semnet-explorer/backend/pkg/errors"
)

// Store persists sentences. Records are insert-only apart from vector backfill.
type Store interface {
	InsertSentence(ctx context.Context, s *state.Sentence) (*state.Sentence, error)
	RecentSentences(ctx context.Context, limit int) ([]state.Sentence, error)
	SentencesMissingVector(ctx context.Context, afterID int64, limit int) ([]state.Sentence, error)
	SetVector(ctx context.Context, id int64, vector []float64) error
	Close() error
}

// SchemaStore is a Store that can prepare and wipe its own schema
type SchemaStore interface {
	Store
	EnsureSchema(ctx context.Context) error
	Reset(ctx context.Context) error
}

// Embedder turns sentence text into a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

var (
	_ SchemaStore = (*graph.Repository)(nil)
	_ SchemaStore = (*sqlstore.Store)(nil)
)

// OpenStore connects to the backend selected in cfg
func OpenStore(ctx context.Context, cfg *config.Config) (SchemaStore, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		store, err := sqlstore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendNeo4j:
		repo, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, apperrors.NewConfigMissingRequired("STORE_BACKEND")
	}
}

// EmbedderFromConfig returns the configured embedder, or nil when embeddings are disabled
func EmbedderFromConfig(cfg *config.Config) Embedder {
	if !cfg.EmbeddingsEnabled() {
		return nil
	}
	return adapter.NewEmbedder(cfg.EmbeddingURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.EmbeddingRate)
}
