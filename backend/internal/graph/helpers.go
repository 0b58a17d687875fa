package graph

import (
	"encoding/json"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"semnet-explorer/backend/internal/state"
)

// ============================================================================
// Helper Functions
// ============================================================================

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getInt64FromRecord(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return i
	}
	if i, ok := val.(int); ok {
		return int64(i)
	}
	return 0
}

func getFloat64FromRecord(record *neo4j.Record, key string) float64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch n := val.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func getStringSliceFromRecord(record *neo4j.Record, key string) []string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return []string{}
	}
	list, ok := val.([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(list))
	for _, item := range list {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}

func getFloat64SliceFromRecord(record *neo4j.Record, key string) []float64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	switch v := val.(type) {
	case []float64:
		return v
	case []interface{}:
		result := make([]float64, 0, len(v))
		for _, item := range v {
			switch n := item.(type) {
			case float64:
				result = append(result, n)
			case int64:
				result = append(result, float64(n))
			}
		}
		return result
	}
	return nil
}

func getTimeFromRecord(record *neo4j.Record, key string) time.Time {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return time.Time{}
	}
	// Neo4j datetime values come as time.Time
	if t, ok := val.(time.Time); ok {
		return t
	}
	return time.Time{}
}

// nullable maps absent tags to nil so Neo4j leaves the property unset
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableVector(v []float64) interface{} {
	if len(v) == 0 {
		return nil
	}
	return v
}

func encodeAnalysis(a *state.Analysis) (interface{}, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// recordToSentence maps a row produced by sentenceReturn onto a Sentence
func recordToSentence(record *neo4j.Record) state.Sentence {
	s := state.Sentence{
		ID:         getInt64FromRecord(record, "id"),
		Sentence:   getStringFromRecord(record, "sentence"),
		Subject:    getStringFromRecord(record, "subject"),
		Verb:       getStringFromRecord(record, "verb"),
		Objects:    getStringFromRecord(record, "objects"),
		Adjectives: getStringFromRecord(record, "adjectives"),
		Vector:     getFloat64SliceFromRecord(record, "vector"),
		CreatedAt:  getTimeFromRecord(record, "created_at"),
	}

	if raw := getStringFromRecord(record, "analysis"); raw != "" {
		var a state.Analysis
		if err := json.Unmarshal([]byte(raw), &a); err == nil {
			s.Analysis = &a
		}
	}

	return s
}
