package graph

import (
	"context"

	"go.uber.org/zap"
)

// ============================================================================
// Schema Operations
// ============================================================================

// EnsureSchema creates the constraints and indexes sentences rely on
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	statements := []string{
		"CREATE CONSTRAINT sentence_id_unique IF NOT EXISTS FOR (s:Sentence) REQUIRE s.id IS UNIQUE",
		"CREATE CONSTRAINT sequence_name_unique IF NOT EXISTS FOR (q:Sequence) REQUIRE q.name IS UNIQUE",
		"CREATE CONSTRAINT term_key_unique IF NOT EXISTS FOR (t:Term) REQUIRE t.key IS UNIQUE",
		"CREATE INDEX sentence_created_at IF NOT EXISTS FOR (s:Sentence) ON (s.created_at)",
		"CREATE INDEX term_role IF NOT EXISTS FOR (t:Term) ON (t.role)",
	}

	for _, stmt := range statements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			// Older servers reject IF NOT EXISTS; the schema may already be in place
			r.logger.Warn("Schema statement failed", zap.String("statement", stmt), zap.Error(err))
			continue
		}
	}

	return nil
}

// Reset removes every sentence, term and id sequence
func (r *Repository) Reset(ctx context.Context) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (n)
		WHERE n:Sentence OR n:Term OR n:Sequence
		DETACH DELETE n
	`

	if _, err := session.Run(ctx, query, nil); err != nil {
		return queryFailed("reset", err)
	}

	r.logger.Warn("Sentence graph reset")
	return nil
}
