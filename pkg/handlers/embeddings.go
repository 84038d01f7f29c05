package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/llm"
)

// MaxBatchEmbeddings caps the number of texts per batch request.
const MaxBatchEmbeddings = 100

// EmbedRequest accepts exactly one of a single text or a batch of texts.
// When both are supplied the single text takes precedence.
type EmbedRequest struct {
	Text  string   `json:"text,omitempty"`
	Texts []string `json:"texts,omitempty"`
}

// EmbedResponse is the single-embedding response shape.
type EmbedResponse struct {
	Embedding  []float32 `json:"embedding"`
	Model      string    `json:"model"`
	Dimensions int       `json:"dimensions"`
}

// BatchEmbedResponse is the batch-embedding response shape.
type BatchEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Model      string      `json:"model"`
	Dimensions int         `json:"dimensions"`
	Count      int         `json:"count"`
}

// EmbeddingsHandler handles embedding requests.
type EmbeddingsHandler struct {
	factory llm.ClientFactory
	logger  *zap.Logger
}

// NewEmbeddingsHandler creates a new embeddings handler.
func NewEmbeddingsHandler(factory llm.ClientFactory, logger *zap.Logger) *EmbeddingsHandler {
	return &EmbeddingsHandler{factory: factory, logger: logger}
}

// RegisterRoutes registers the embeddings handler's routes on the given mux.
func (h *EmbeddingsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ai/embed", h.Embed)
}

// Embed handles POST /api/ai/embed.
func (h *EmbeddingsHandler) Embed(w http.ResponseWriter, r *http.Request) {
	var req EmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, h.logger, "invalid_request", "Invalid request body")
		return
	}

	switch {
	case req.Text != "":
		h.embedSingle(w, r, req.Text)
	case req.Texts != nil:
		if len(req.Texts) == 0 {
			writeClientError(w, h.logger, "empty_texts", "texts must not be empty")
			return
		}
		if len(req.Texts) > MaxBatchEmbeddings {
			writeClientError(w, h.logger, "too_many_texts",
				fmt.Sprintf("texts is capped at %d items", MaxBatchEmbeddings))
			return
		}
		h.embedBatch(w, r, req.Texts)
	default:
		writeClientError(w, h.logger, "missing_input", "Either text or texts is required")
	}
}

func (h *EmbeddingsHandler) embedSingle(w http.ResponseWriter, r *http.Request, text string) {
	client, err := h.factory.EmbeddingClient()
	if err != nil {
		writeProviderError(w, h.logger, err)
		return
	}

	embedding, err := client.CreateEmbedding(r.Context(), text)
	if err != nil {
		h.logger.Error("Embedding failed", zap.Error(err))
		writeProviderError(w, h.logger, err)
		return
	}

	response := EmbedResponse{
		Embedding:  embedding,
		Model:      client.Model(),
		Dimensions: len(embedding),
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *EmbeddingsHandler) embedBatch(w http.ResponseWriter, r *http.Request, texts []string) {
	client, err := h.factory.EmbeddingClient()
	if err != nil {
		writeProviderError(w, h.logger, err)
		return
	}

	embeddings, err := client.CreateEmbeddings(r.Context(), texts)
	if err != nil {
		h.logger.Error("Batch embedding failed",
			zap.Int("count", len(texts)),
			zap.Error(err))
		writeProviderError(w, h.logger, err)
		return
	}

	dimensions := 0
	if len(embeddings) > 0 {
		dimensions = len(embeddings[0])
	}

	response := BatchEmbedResponse{
		Embeddings: embeddings,
		Model:      client.Model(),
		Dimensions: dimensions,
		Count:      len(embeddings),
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
