package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"semnet-explorer/backend/internal/cache"
	"semnet-explorer/backend/internal/network"
	"semnet-explorer/backend/internal/services"
	"semnet-explorer/backend/internal/sqlstore"
	"semnet-explorer/backend/internal/state"
)

// brokenStore fails every operation, like an unreachable database
type brokenStore struct{}

var errOffline = errors.New("database offline")

func (brokenStore) InsertSentence(context.Context, *state.Sentence) (*state.Sentence, error) {
	return nil, errOffline
}
func (brokenStore) RecentSentences(context.Context, int) ([]state.Sentence, error) {
	return nil, errOffline
}
func (brokenStore) SentencesMissingVector(context.Context, int64, int) ([]state.Sentence, error) {
	return nil, errOffline
}
func (brokenStore) SetVector(context.Context, int64, []float64) error { return errOffline }
func (brokenStore) Close() error { return nil }

func newTestRouter(t *testing.T, store services.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := services.NewSentenceService(store, nil, cache.NewNetworkCache(time.Minute))
	return NewRouter(svc, zap.NewNop())
}

func newSQLiteRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store, err := sqlstore.Open(context.Background(), filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return newTestRouter(t, store)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, brokenStore{})

	w := doJSON(router, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagates(t *testing.T) {
	router := newTestRouter(t, brokenStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, brokenStore{})

	w := doJSON(router, "OPTIONS", "/api/sentences", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestRouter(t, brokenStore{})

	w := doJSON(router, "POST", "/api/analyze", `{"sentence":"The dog is happy"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got state.Analysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "The", got.Subject)
	assert.Equal(t, "is", got.Verb)
	assert.Contains(t, got.Adjectives, "happy")
}

func TestAnalyzeEndpoint_InvalidRequest(t *testing.T) {
	router := newTestRouter(t, brokenStore{})

	for _, body := range []string{`{}`, `{"sentence":"   "}`, `not json`} {
		w := doJSON(router, "POST", "/api/analyze", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestAddSentenceEndpoint(t *testing.T) {
	router := newSQLiteRouter(t)

	w := doJSON(router, "POST", "/api/sentences", `{"sentence":"The dog is happy"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var saved state.Sentence
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "The dog is happy", saved.Sentence)
	assert.Equal(t, "is", saved.Verb)
	assert.False(t, saved.CreatedAt.IsZero())

	w = doJSON(router, "GET", "/api/sentences", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Sentences []state.Sentence `json:"sentences"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Sentences, 1)
	assert.Equal(t, "The dog is happy", list.Sentences[0].Sentence)
}

func TestAddSentenceEndpoint_InvalidRequest(t *testing.T) {
	router := newSQLiteRouter(t)

	w := doJSON(router, "POST", "/api/sentences", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/api/sentences", `{"sentence":" "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddSentenceEndpoint_StoreFailure(t *testing.T) {
	router := newTestRouter(t, brokenStore{})

	w := doJSON(router, "POST", "/api/sentences", `{"sentence":"The dog is happy"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"error saving"}`, w.Body.String())
}

func TestReadEndpoints_FailSilently(t *testing.T) {
	router := newTestRouter(t, brokenStore{})

	w := doJSON(router, "GET", "/api/sentences?limit=5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sentences":[]}`, w.Body.String())

	w = doJSON(router, "GET", "/api/network/grammar", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"nodes":[],"links":[]}`, w.Body.String())

	w = doJSON(router, "GET", "/api/network/similarity", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"nodes":[],"links":[],"comparisons":0}`, w.Body.String())
}

func TestNetworkEndpoints(t *testing.T) {
	router := newSQLiteRouter(t)

	for _, text := range []string{"The dog is happy", "the cat is sleepy"} {
		w := doJSON(router, "POST", "/api/sentences", `{"sentence":"`+text+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(router, "GET", "/api/network/grammar", "")
	require.Equal(t, http.StatusOK, w.Code)
	var gram network.GrammarNetwork
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gram))
	// s:1 s:2 subject:the verb:is obj:happy adj:happy obj:sleepy adj:sleepy
	assert.Len(t, gram.Nodes, 8)
	assert.Len(t, gram.Links, 8)

	w = doJSON(router, "GET", "/api/network/similarity", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sim network.SimilarityNetwork
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sim))
	require.Len(t, sim.Nodes, 2)
	assert.Equal(t, 1, sim.Comparisons)
	require.Len(t, sim.Links, 1)
	assert.InDelta(t, 1.0, sim.Links[0].Value, 1e-9)
}
