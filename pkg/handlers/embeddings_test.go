package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/llm"
)

func newTestEmbeddingsHandler() (*EmbeddingsHandler, *llm.MockClientFactory) {
	factory := llm.NewMockClientFactory()
	handler := NewEmbeddingsHandler(factory, zap.NewNop())
	return handler, factory
}

func TestEmbed_SingleText(t *testing.T) {
	handler, factory := newTestEmbeddingsHandler()
	factory.Embedding.CreateEmbeddingFunc = func(ctx context.Context, input string) ([]float32, error) {
		return []float32{0.1, 0.2, 0.3, 0.4}, nil
	}

	rec := httptest.NewRecorder()
	handler.Embed(rec, postJSON(t, "/api/ai/embed", EmbedRequest{Text: "hello world"}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp EmbedResponse
	decodeBody(t, rec, &resp)
	assert.Len(t, resp.Embedding, 4)
	assert.Equal(t, 4, resp.Dimensions)
	assert.Equal(t, "mock-embedding-model", resp.Model)
}

func TestEmbed_Batch(t *testing.T) {
	handler, factory := newTestEmbeddingsHandler()

	rec := httptest.NewRecorder()
	handler.Embed(rec, postJSON(t, "/api/ai/embed", EmbedRequest{
		Texts: []string{"one", "two", "three"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp BatchEmbedResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Embeddings, 3)
	assert.Equal(t, len(resp.Embeddings[0]), resp.Dimensions)
	assert.Equal(t, 1, factory.Embedding.CreateEmbeddingsCalls)
}

func TestEmbed_SingleTakesPrecedenceOverBatch(t *testing.T) {
	handler, factory := newTestEmbeddingsHandler()

	rec := httptest.NewRecorder()
	handler.Embed(rec, postJSON(t, "/api/ai/embed", EmbedRequest{
		Text:  "hello",
		Texts: []string{"one", "two"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, factory.Embedding.CreateEmbeddingCalls)
	assert.Equal(t, 0, factory.Embedding.CreateEmbeddingsCalls)

	var resp EmbedResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, len(resp.Embedding), resp.Dimensions)
}

func TestEmbed_NeitherInput(t *testing.T) {
	handler, factory := newTestEmbeddingsHandler()

	rec := httptest.NewRecorder()
	handler.Embed(rec, postJSON(t, "/api/ai/embed", EmbedRequest{}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, factory.Embedding.CreateEmbeddingCalls)
	assert.Equal(t, 0, factory.Embedding.CreateEmbeddingsCalls)
}

func TestEmbed_EmptyBatch(t *testing.T) {
	handler, factory := newTestEmbeddingsHandler()

	rec := httptest.NewRecorder()
	handler.Embed(rec, postJSON(t, "/api/ai/embed", EmbedRequest{Texts: []string{}}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, factory.Embedding.CreateEmbeddingsCalls)
}

func TestEmbed_BatchOverCap(t *testing.T) {
	handler, factory := newTestEmbeddingsHandler()

	texts := make([]string, MaxBatchEmbeddings+1)
	for i := range texts {
		texts[i] = "text"
	}

	rec := httptest.NewRecorder()
	handler.Embed(rec, postJSON(t, "/api/ai/embed", EmbedRequest{Texts: texts}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, factory.Embedding.CreateEmbeddingsCalls)
}

func TestEmbed_BatchAtCap(t *testing.T) {
	handler, _ := newTestEmbeddingsHandler()

	texts := make([]string, MaxBatchEmbeddings)
	for i := range texts {
		texts[i] = "text"
	}

	rec := httptest.NewRecorder()
	handler.Embed(rec, postJSON(t, "/api/ai/embed", EmbedRequest{Texts: texts}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp BatchEmbedResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, MaxBatchEmbeddings, resp.Count)
}

func TestEmbed_ProviderNotConfigured(t *testing.T) {
	handler, factory := newTestEmbeddingsHandler()
	factory.EmbeddingErr = llm.NewNotConfiguredError("OpenAI API key not configured")

	rec := httptest.NewRecorder()
	handler.Embed(rec, postJSON(t, "/api/ai/embed", EmbedRequest{Text: "hello"}))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "provider_not_configured", body["error"])
}
