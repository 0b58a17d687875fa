package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"semnet-explorer/backend/internal/analysis"
	"semnet-explorer/backend/internal/cache"
	"semnet-explorer/backend/internal/constants"
	"semnet-explorer/backend/internal/network"
	"semnet-explorer/backend/internal/state"
	apperrors "semnet-explorer/backend/pkg/errors"
	"semnet-explorer/backend/pkg/logger"
)

// ErrSaveFailed is what callers see when a sentence could not be stored
var ErrSaveFailed = errors.New("error saving")

// SentenceService runs the input and visualization pipelines over a Store
type SentenceService struct {
	store    Store
	embedder Embedder
	networks *cache.NetworkCache
	logger   *zap.Logger
}

// NewSentenceService creates a service. embedder may be nil to store sentences without vectors.
func NewSentenceService(store Store, embedder Embedder, networks *cache.NetworkCache) *SentenceService {
	return &SentenceService{
		store:    store,
		embedder: embedder,
		networks: networks,
		logger:   logger.Get(),
	}
}

// Analyze runs the sentence heuristics without storing anything
func (s *SentenceService) Analyze(_ context.Context, text string) (*state.Analysis, error) {
	return analysis.Analyze(text)
}

// AddSentence analyzes text, embeds it when an embedder is configured and stores the record
func (s *SentenceService) AddSentence(ctx context.Context, text string) (*state.Sentence, error) {
	result, err := analysis.Analyze(text)
	if err != nil {
		return nil, err
	}

	record := state.FromAnalysis(result)

	if s.embedder != nil {
		vector, err := s.embedder.Embed(ctx, record.Sentence)
		if err != nil {
			// The sentence is still worth keeping; backfill can embed it later
			s.logger.Warn("Failed to embed sentence, storing without vector", zap.Error(err))
		} else {
			record.Vector = vector
		}
	}

	saved, err := s.store.InsertSentence(ctx, record)
	if err != nil {
		s.logger.Error("Failed to store sentence", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	s.networks.Invalidate()
	return saved, nil
}

// Recent lists the newest sentences. Failures are logged and yield an empty list.
func (s *SentenceService) Recent(ctx context.Context, limit int) []state.Sentence {
	sentences, err := s.store.RecentSentences(ctx, clampLimit(limit))
	if err != nil {
		s.logger.Error("Failed to load recent sentences", zap.Error(err))
		return []state.Sentence{}
	}
	return sentences
}

// SimilarityNetwork links recent sentences by the cosine similarity of their vectors
func (s *SentenceService) SimilarityNetwork(ctx context.Context) *network.SimilarityNetwork {
	if cached, ok := s.networks.Get(cache.KeySimilarityNetwork); ok {
		return cached.(*network.SimilarityNetwork)
	}

	// An insert landing while records load bumps the generation and the result is not cached
	generation := s.networks.Generation()
	sentences, err := s.store.RecentSentences(ctx, constants.NetworkFetchLimit)
	if err != nil {
		s.logger.Error("Failed to load sentences for similarity network", zap.Error(err))
		return network.BuildSimilarityNetwork(nil)
	}

	net := network.BuildSimilarityNetwork(sentences)
	s.networks.SetIfCurrent(cache.KeySimilarityNetwork, net, generation)

	s.logger.Debug("Similarity network built",
		zap.Int("nodes", len(net.Nodes)),
		zap.Int("links", len(net.Links)),
		zap.Int("comparisons", net.Comparisons),
	)
	return net
}

// GrammarNetwork links recent sentences through shared subject, verb, object and adjective nodes
func (s *SentenceService) GrammarNetwork(ctx context.Context) *network.GrammarNetwork {
	if cached, ok := s.networks.Get(cache.KeyGrammarNetwork); ok {
		return cached.(*network.GrammarNetwork)
	}

	generation := s.networks.Generation()
	sentences, err := s.store.RecentSentences(ctx, constants.NetworkFetchLimit)
	if err != nil {
		s.logger.Error("Failed to load sentences for grammar network", zap.Error(err))
		return network.BuildGrammarNetwork(nil)
	}

	net := network.BuildGrammarNetwork(sentences)
	s.networks.SetIfCurrent(cache.KeyGrammarNetwork, net, generation)

	s.logger.Debug("Grammar network built",
		zap.Int("nodes", len(net.Nodes)),
		zap.Int("links", len(net.Links)),
	)
	return net
}

// IsUserError reports whether err was caused by bad input rather than a failing dependency
func IsUserError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeAnalysis)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultRecentLimit
	}
	if limit > constants.MaxRecentLimit {
		return constants.MaxRecentLimit
	}
	return limit
}
