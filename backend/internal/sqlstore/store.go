// Package sqlstore keeps sentences in an embedded SQLite database.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"go.uber.org/zap"

	"semnet-explorer/backend/internal/state"
	apperrors "semnet-explorer/backend/pkg/errors"
	"semnet-explorer/backend/pkg/logger"
)

// timeLayout is fixed-width so created_at sorts chronologically as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sentences (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		sentence   TEXT NOT NULL,
		subject    TEXT,
		verb       TEXT,
		objects    TEXT,
		adjectives TEXT,
		vector     TEXT,
		analysis   TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sentences_created_at ON sentences(created_at)`,
}

const selectColumns = `id, sentence, subject, verb, objects, adjectives, vector, analysis, created_at`

// Store is a SQLite-backed sentence store
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open opens (creating if needed) the database at path and applies the schema
func Open(ctx context.Context, path string) (*Store, error) {
	// Use file: prefix as required by ncruces/go-sqlite3 driver
	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, apperrors.NewStoreConnectionFailed("sqlite", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.NewStoreConnectionFailed("sqlite", path, err)
	}

	s := &Store{db: db, path: path, logger: logger.Get()}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the sentences table if it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return apperrors.NewStoreQueryFailed("create schema", err)
		}
	}
	return nil
}

// Reset removes every sentence
func (s *Store) Reset(ctx context.Context) error {
	for _, stmt := range []string{
		`DELETE FROM sentences`,
		`DELETE FROM sqlite_sequence WHERE name = 'sentences'`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return apperrors.NewStoreQueryFailed("reset", err)
		}
	}
	s.logger.Warn("Sentence table reset", zap.String("path", s.path))
	return nil
}

// InsertSentence stores a new sentence and returns it with its id
func (s *Store) InsertSentence(ctx context.Context, in *state.Sentence) (*state.Sentence, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	vector, err := encodeJSON(in.Vector, len(in.Vector) > 0)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vector: %w", err)
	}
	analysis, err := encodeJSON(in.Analysis, in.Analysis != nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sentences (sentence, subject, verb, objects, adjectives, vector, analysis, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Sentence,
		nullable(in.Subject),
		nullable(in.Verb),
		nullable(in.Objects),
		nullable(in.Adjectives),
		vector,
		analysis,
		createdAt.Format(timeLayout),
	)
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("insert sentence", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("insert sentence", err)
	}

	saved := *in
	saved.ID = id
	saved.CreatedAt = createdAt

	s.logger.Info("Sentence stored",
		zap.Int64("sentence_id", id),
		zap.Bool("has_vector", len(saved.Vector) > 0),
	)
	return &saved, nil
}

// RecentSentences returns up to limit sentences, newest first
func (s *Store) RecentSentences(ctx context.Context, limit int) ([]state.Sentence, error) {
	return s.query(ctx, "recent sentences",
		`SELECT `+selectColumns+` FROM sentences ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// SentencesMissingVector returns up to limit sentences with id > afterID stored without an embedding, oldest first
func (s *Store) SentencesMissingVector(ctx context.Context, afterID int64, limit int) ([]state.Sentence, error) {
	return s.query(ctx, "sentences missing vector",
		`SELECT `+selectColumns+` FROM sentences WHERE vector IS NULL AND id > ? ORDER BY id ASC LIMIT ?`, afterID, limit)
}

// SetVector attaches an embedding to an existing sentence
func (s *Store) SetVector(ctx context.Context, id int64, vector []float64) error {
	encoded, err := encodeJSON(vector, len(vector) > 0)
	if err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `UPDATE sentences SET vector = ? WHERE id = ?`, encoded, id)
	if err != nil {
		return apperrors.NewStoreQueryFailed("set vector", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStoreQueryFailed("set vector", err)
	}
	if n == 0 {
		return apperrors.NewSentenceNotFound(id)
	}
	return nil
}

func (s *Store) query(ctx context.Context, operation, query string, args ...any) ([]state.Sentence, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed(operation, err)
	}
	defer rows.Close()

	sentences := []state.Sentence{}
	for rows.Next() {
		sentence, err := scanSentence(rows)
		if err != nil {
			return nil, apperrors.NewStoreQueryFailed(operation, err)
		}
		sentences = append(sentences, sentence)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed(operation, err)
	}
	return sentences, nil
}

func scanSentence(rows *sql.Rows) (state.Sentence, error) {
	var (
		out                                state.Sentence
		subject, verb, objects, adjectives sql.NullString
		vector, analysis                   sql.NullString
		createdAt                          string
	)
	if err := rows.Scan(&out.ID, &out.Sentence, &subject, &verb, &objects, &adjectives, &vector, &analysis, &createdAt); err != nil {
		return out, err
	}

	out.Subject = subject.String
	out.Verb = verb.String
	out.Objects = objects.String
	out.Adjectives = adjectives.String

	if vector.Valid && vector.String != "" {
		if err := json.Unmarshal([]byte(vector.String), &out.Vector); err != nil {
			return out, fmt.Errorf("sentence %d: bad vector: %w", out.ID, err)
		}
	}
	if analysis.Valid && analysis.String != "" {
		var a state.Analysis
		if err := json.Unmarshal([]byte(analysis.String), &a); err == nil {
			out.Analysis = &a
		}
	}

	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return out, fmt.Errorf("sentence %d: bad created_at: %w", out.ID, err)
	}
	out.CreatedAt = t
	return out, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func encodeJSON(v any, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
