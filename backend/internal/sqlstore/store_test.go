package sqlstore

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semnet-explorer/backend/internal/state"
	apperrors "semnet-explorer/backend/pkg/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "semnet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_InsertAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first, err := s.InsertSentence(ctx, &state.Sentence{
		Sentence:   "The dog is happy",
		Subject:    "The",
		Verb:       "is",
		Objects:    "happy",
		Adjectives: "happy",
		Vector:     []float64{0.25, -1, 3},
		Analysis:   &state.Analysis{Text: "The dog is happy", Subject: "The", Verb: "is"},
		CreatedAt:  base,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	second, err := s.InsertSentence(ctx, &state.Sentence{Sentence: "Hello", Subject: "Hello", CreatedAt: base.Add(time.Second)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	recent, err := s.RecentSentences(ctx, 20)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, int64(2), recent[0].ID)
	assert.Empty(t, recent[0].Verb)
	assert.Nil(t, recent[0].Vector)
	assert.Nil(t, recent[0].Analysis)

	got := recent[1]
	assert.Equal(t, "The dog is happy", got.Sentence)
	assert.Equal(t, "The", got.Subject)
	assert.Equal(t, "is", got.Verb)
	assert.Equal(t, "happy", got.Objects)
	assert.Equal(t, "happy", got.Adjectives)
	assert.Equal(t, []float64{0.25, -1, 3}, got.Vector)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, "is", got.Analysis.Verb)
	assert.True(t, got.CreatedAt.Equal(base))
}

func TestStore_RecentOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// sub-second offsets would misorder with a variable-width layout
	offsets := []time.Duration{100 * time.Millisecond, 120 * time.Millisecond, 2 * time.Second, 0}
	for i, off := range offsets {
		_, err := s.InsertSentence(ctx, &state.Sentence{Sentence: fmt.Sprintf("s%d", i), CreatedAt: base.Add(off)})
		require.NoError(t, err)
	}

	recent, err := s.RecentSentences(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"s2", "s1", "s0"}, []string{recent[0].Sentence, recent[1].Sentence, recent[2].Sentence})
}

func TestStore_InsertDefaultsCreatedAt(t *testing.T) {
	s := openTestStore(t)

	before := time.Now().UTC()
	saved, err := s.InsertSentence(context.Background(), &state.Sentence{Sentence: "now"})
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.Before(before))
}

func TestStore_InsertRejectsInvalid(t *testing.T) {
	s := openTestStore(t)

	_, err := s.InsertSentence(context.Background(), &state.Sentence{})
	assert.ErrorAs(t, err, &state.ErrInvalidSentence{})
}

func TestStore_VectorBackfill(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a, err := s.InsertSentence(ctx, &state.Sentence{Sentence: "a"})
	require.NoError(t, err)
	_, err = s.InsertSentence(ctx, &state.Sentence{Sentence: "b", Vector: []float64{1}})
	require.NoError(t, err)
	c, err := s.InsertSentence(ctx, &state.Sentence{Sentence: "c"})
	require.NoError(t, err)

	missing, err := s.SentencesMissingVector(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, missing, 2)
	assert.Equal(t, a.ID, missing[0].ID)
	assert.Equal(t, c.ID, missing[1].ID)

	missing, err = s.SentencesMissingVector(ctx, a.ID, 10)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, c.ID, missing[0].ID)

	require.NoError(t, s.SetVector(ctx, a.ID, []float64{0, 1}))

	missing, err = s.SentencesMissingVector(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, c.ID, missing[0].ID)

	err = s.SetVector(ctx, 999, []float64{1})
	var notFound *apperrors.ErrSentenceNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(999), notFound.ID)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.InsertSentence(ctx, &state.Sentence{Sentence: "a"})
	require.NoError(t, err)
	require.NoError(t, s.Reset(ctx))

	recent, err := s.RecentSentences(ctx, 20)
	require.NoError(t, err)
	assert.Empty(t, recent)

	saved, err := s.InsertSentence(ctx, &state.Sentence{Sentence: "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
}
