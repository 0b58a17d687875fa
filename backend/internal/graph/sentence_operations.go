package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"semnet-explorer/backend/internal/state"
	apperrors "semnet-explorer/backend/pkg/errors"
)

// ============================================================================
// Sentence Operations
// ============================================================================

// sentenceReturn projects a Sentence node onto the columns of the sentences table
const sentenceReturn = `
		s.id AS id,
		s.sentence AS sentence,
		s.subject AS subject,
		s.verb AS verb,
		s.objects AS objects,
		s.adjectives AS adjectives,
		s.vector AS vector,
		s.analysis AS analysis,
		s.created_at AS created_at
`

// InsertSentence stores a new sentence, assigning the next integer id, and
// links it to its subject, verb, object and adjective terms.
func (r *Repository) InsertSentence(ctx context.Context, s *state.Sentence) (*state.Sentence, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	analysis, err := encodeAnalysis(s.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	insertQuery := `
		MERGE (seq:Sequence {name: 'sentence'})
		ON CREATE SET seq.value = 0
		SET seq.value = seq.value + 1
		WITH seq.value AS id
		CREATE (s:Sentence {
			id: id,
			sentence: $sentence,
			subject: $subject,
			verb: $verb,
			objects: $objects,
			adjectives: $adjectives,
			vector: $vector,
			analysis: $analysis,
			created_at: datetime($createdAt)
		})
		RETURN s.id AS id, s.created_at AS created_at
	`

	terms := TermsFor(s)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, insertQuery, map[string]interface{}{
			"sentence":   s.Sentence,
			"subject":    nullable(s.Subject),
			"verb":       nullable(s.Verb),
			"objects":    nullable(s.Objects),
			"adjectives": nullable(s.Adjectives),
			"vector":     nullableVector(s.Vector),
			"analysis":   analysis,
			"createdAt":  createdAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, err
		}

		id := getInt64FromRecord(record, "id")
		if err := linkTerms(ctx, tx, id, terms); err != nil {
			return nil, err
		}
		return record, nil
	})
	if err != nil {
		return nil, queryFailed("insert sentence", err)
	}

	record := out.(*neo4j.Record)
	saved := *s
	saved.ID = getInt64FromRecord(record, "id")
	saved.CreatedAt = getTimeFromRecord(record, "created_at")
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = createdAt
	}

	r.logger.Info("Sentence stored",
		zap.Int64("sentence_id", saved.ID),
		zap.Int("terms", len(terms)),
		zap.Bool("has_vector", len(saved.Vector) > 0),
	)
	return &saved, nil
}

// RecentSentences returns up to limit sentences, newest first
func (r *Repository) RecentSentences(ctx context.Context, limit int) ([]state.Sentence, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (s:Sentence)
		RETURN ` + sentenceReturn + `
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $limit
	`

	return r.collectSentences(ctx, session, "recent sentences", query, map[string]interface{}{
		"limit": int64(limit),
	})
}

// SentencesMissingVector returns up to limit sentences with id > afterID stored without an embedding, oldest first
func (r *Repository) SentencesMissingVector(ctx context.Context, afterID int64, limit int) ([]state.Sentence, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (s:Sentence)
		WHERE s.vector IS NULL AND s.id > $afterID
		RETURN ` + sentenceReturn + `
		ORDER BY s.id ASC
		LIMIT $limit
	`

	return r.collectSentences(ctx, session, "sentences missing vector", query, map[string]interface{}{
		"afterID": afterID,
		"limit":   int64(limit),
	})
}

// SetVector attaches an embedding to an existing sentence
func (r *Repository) SetVector(ctx context.Context, id int64, vector []float64) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (s:Sentence {id: $id})
		SET s.vector = $vector
		RETURN s.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"id":     id,
		"vector": nullableVector(vector),
	})
	if err != nil {
		return queryFailed("set vector", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return queryFailed("set vector", err)
		}
		return apperrors.NewSentenceNotFound(id)
	}

	return nil
}

func (r *Repository) collectSentences(ctx context.Context, session neo4j.SessionWithContext, operation, query string, params map[string]interface{}) ([]state.Sentence, error) {
	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, queryFailed(operation, err)
	}

	sentences := []state.Sentence{}
	for result.Next(ctx) {
		sentences = append(sentences, recordToSentence(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, queryFailed(operation, err)
	}

	return sentences, nil
}
