package adapter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"semnet-explorer/backend/internal/constants"
	apperrors "semnet-explorer/backend/pkg/errors"
	"semnet-explorer/backend/pkg/logger"
)

// EmbeddingClient is the subset of the OpenAI client used for embeddings
type EmbeddingClient interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Embedder turns sentences into vectors via an OpenAI-compatible endpoint
type Embedder struct {
	client  EmbeddingClient
	model   string
	limiter *rate.Limiter
	backoff time.Duration
	logger  *zap.Logger
}

// NewEmbedder creates an embedder talking to baseURL (e.g. http://localhost:4000/v1)
func NewEmbedder(baseURL, apiKey, model string, requestsPerSecond float64) *Embedder {
	// Local gateways accept any key
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return NewEmbedderWithClient(openai.NewClientWithConfig(config), model, requestsPerSecond)
}

// NewEmbedderWithClient creates an embedder around an existing client
func NewEmbedderWithClient(client EmbeddingClient, model string, requestsPerSecond float64) *Embedder {
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Embedder{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		backoff: time.Second,
		logger:  logger.Get(),
	}
}

// Embed returns the embedding vector for text
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	model := e.model
	req := openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(model),
	}

	// Retry logic with linear backoff
	var resp openai.EmbeddingResponse
	var failure error
	for attempt := 0; attempt < constants.EmbeddingMaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * e.backoff
			e.logger.Warn("Retrying embedding request",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, apperrors.NewContextCancelled("embed sentence", ctx.Err())
			case <-time.After(backoff):
			}
		}

		if werr := e.limiter.Wait(ctx); werr != nil {
			return nil, apperrors.NewContextCancelled("embed sentence", werr)
		}

		var err error
		resp, err = e.client.CreateEmbeddings(ctx, req)
		if err == nil {
			failure = nil
			break
		}

		e.logger.Error("Embedding request failed",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.String("model", model),
		)

		failure = apperrors.NewEmbeddingFailed(model, attempt+1, retryableStatus(err), err)
		if !apperrors.IsRetryable(failure) {
			break
		}
	}

	if failure != nil {
		return nil, failure
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, apperrors.ErrEmbeddingEmpty
	}

	raw := resp.Data[0].Embedding
	vector := make([]float64, len(raw))
	for i, v := range raw {
		vector[i] = float64(v)
	}

	e.logger.Debug("Sentence embedded",
		zap.String("model", model),
		zap.Int("dimensions", len(vector)),
	)

	return vector, nil
}

// retryableStatus treats rate limiting, server errors and transport failures as transient.
// Other HTTP errors (bad key, unknown model) fail the same way on every attempt.
func retryableStatus(err error) bool {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		return true
	}
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
