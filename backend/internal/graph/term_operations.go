package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"semnet-explorer/backend/internal/network"
	"semnet-explorer/backend/internal/state"
	"semnet-explorer/backend/internal/utils"
)

// ============================================================================
// Term Operations
// ============================================================================

// TermsFor lists the terms a sentence is tagged with, keyed like grammar network nodes
func TermsFor(s *state.Sentence) []Term {
	var terms []Term
	if s.Subject != "" {
		terms = append(terms, Term{Key: network.SubjectKey(s.Subject), Label: s.Subject, Role: RoleSubject})
	}
	if s.Verb != "" {
		terms = append(terms, Term{Key: network.VerbKey(s.Verb), Label: s.Verb, Role: RoleVerb})
	}
	if s.Objects != "" {
		terms = append(terms, Term{Key: network.ObjectKey(s.Objects), Label: s.Objects, Role: RoleObject})
	}
	for _, adj := range utils.SplitList(s.Adjectives) {
		terms = append(terms, Term{Key: network.AdjectiveKey(adj), Label: adj, Role: RoleAdjective})
	}
	return terms
}

func linkTerms(ctx context.Context, tx neo4j.ManagedTransaction, sentenceID int64, terms []Term) error {
	if len(terms) == 0 {
		return nil
	}

	rows := make([]interface{}, len(terms))
	for i, t := range terms {
		rows[i] = map[string]interface{}{
			"key":   t.Key,
			"label": t.Label,
			"role":  t.Role,
		}
	}

	query := `
		MATCH (s:Sentence {id: $id})
		UNWIND $terms AS term
		MERGE (t:Term {key: term.key})
		ON CREATE SET t.label = term.label, t.role = term.role
		MERGE (s)-[:TAGGED {role: term.role}]->(t)
	`

	_, err := tx.Run(ctx, query, map[string]interface{}{
		"id":    sentenceID,
		"terms": rows,
	})
	return err
}

// TopTerms returns the terms shared by the most sentences
func (r *Repository) TopTerms(ctx context.Context, limit int) ([]TermUsage, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	if limit < 1 {
		limit = 10
	}

	query := `
		MATCH (t:Term)<-[:TAGGED]-(s:Sentence)
		WITH t, count(DISTINCT s) AS sentences
		RETURN t.key AS key, t.label AS label, t.role AS role, sentences
		ORDER BY sentences DESC, key ASC
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"limit": int64(limit),
	})
	if err != nil {
		return nil, queryFailed("top terms", err)
	}

	usages := []TermUsage{}
	for result.Next(ctx) {
		record := result.Record()
		usages = append(usages, TermUsage{
			Term: Term{
				Key:   getStringFromRecord(record, "key"),
				Label: getStringFromRecord(record, "label"),
				Role:  getStringFromRecord(record, "role"),
			},
			Sentences: getInt64FromRecord(record, "sentences"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, queryFailed("top terms", err)
	}

	return usages, nil
}
