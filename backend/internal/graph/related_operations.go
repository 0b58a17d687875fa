package graph

import (
	"context"

	apperrors "semnet-explorer/backend/pkg/errors"
)

// ============================================================================
// Related Sentence Operations
// ============================================================================

// RelatedSentences finds sentences sharing subject, verb, object or adjective terms with sentenceID.
// Verb and subject matches weigh more than objects and adjectives.
func (r *Repository) RelatedSentences(ctx context.Context, sentenceID int64, limit int) ([]RelatedSentence, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	if limit < 1 {
		limit = 10
	}

	query := `
		MATCH (s:Sentence {id: $id})
		OPTIONAL MATCH (s)-[:TAGGED]->(t:Term)<-[rel:TAGGED]-(other:Sentence)
		WHERE other <> s
		WITH other, collect(DISTINCT t.label) AS shared_terms,
		     sum(CASE rel.role WHEN 'verb' THEN 0.4 WHEN 'subject' THEN 0.3 ELSE 0.15 END) AS score
		WHERE other IS NOT NULL
		RETURN other.id AS id, other.sentence AS sentence, shared_terms, score
		ORDER BY score DESC, id DESC
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"id":    sentenceID,
		"limit": int64(limit),
	})
	if err != nil {
		return nil, queryFailed("related sentences", err)
	}

	related := []RelatedSentence{}
	found := false
	for result.Next(ctx) {
		found = true
		record := result.Record()
		related = append(related, RelatedSentence{
			ID:          getInt64FromRecord(record, "id"),
			Sentence:    getStringFromRecord(record, "sentence"),
			SharedTerms: getStringSliceFromRecord(record, "shared_terms"),
			Score:       getFloat64FromRecord(record, "score"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, queryFailed("related sentences", err)
	}

	if !found {
		exists, err := r.sentenceExists(ctx, sentenceID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewSentenceNotFound(sentenceID)
		}
	}

	return related, nil
}

func (r *Repository) sentenceExists(ctx context.Context, id int64) (bool, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `MATCH (s:Sentence {id: $id}) RETURN count(s) AS n`, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		return false, queryFailed("sentence exists", err)
	}
	if !result.Next(ctx) {
		return false, result.Err()
	}
	return getInt64FromRecord(result.Record(), "n") > 0, nil
}
