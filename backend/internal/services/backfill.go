package services

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"semnet-explorer/backend/internal/constants"
	"semnet-explorer/backend/internal/state"
	apperrors "semnet-explorer/backend/pkg/errors"
)

// BackfillVectors embeds every stored sentence that has no vector, batch at a time.
// Sentences that fail to embed are logged and skipped; the id cursor moves past them
// so later sentences are still reached. It returns how many were updated.
func (s *SentenceService) BackfillVectors(ctx context.Context, batch int) (int, error) {
	if s.embedder == nil {
		return 0, apperrors.NewConfigMissingRequired("EMBEDDING_URL")
	}
	if batch <= 0 {
		batch = constants.MaxRecentLimit
	}

	var (
		total   int
		skipped int
		afterID int64
	)
	for {
		pending, err := s.store.SentencesMissingVector(ctx, afterID, batch)
		if err != nil {
			return total, err
		}
		if len(pending) == 0 {
			break
		}
		afterID = pending[len(pending)-1].ID

		updated, err := s.embedBatch(ctx, pending)
		total += updated
		skipped += len(pending) - updated
		if err != nil {
			return total, err
		}

		s.logger.Debug("Vector backfill page done",
			zap.Int("pending", len(pending)),
			zap.Int("updated", updated),
			zap.Int64("after_id", afterID),
		)
	}

	s.logger.Info("Vector backfill finished",
		zap.Int("updated", total),
		zap.Int("skipped", skipped),
	)
	return total, nil
}

// embedBatch embeds one page of sentences with bounded concurrency
func (s *SentenceService) embedBatch(ctx context.Context, pending []state.Sentence) (int, error) {
	var updated atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.BackfillConcurrency)

	for _, sentence := range pending {
		g.Go(func() error {
			vector, err := s.embedder.Embed(gctx, sentence.Sentence)
			if err != nil {
				if apperrors.IsErrorType(err, apperrors.ErrorTypeContext) {
					return err
				}
				s.logger.Warn("Skipping sentence, embedding failed",
					zap.Int64("sentence_id", sentence.ID),
					zap.Error(err),
				)
				return nil
			}

			if err := s.store.SetVector(gctx, sentence.ID, vector); err != nil {
				return err
			}
			updated.Add(1)
			return nil
		})
	}

	err := g.Wait()
	if updated.Load() > 0 {
		s.networks.Invalidate()
	}
	return int(updated.Load()), err
}
