package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/llm"
)

// ServiceName identifies this service in health responses.
const ServiceName = "ai-services"

// HealthResponse contains liveness information.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// StatusResponse reports provider-key presence and the default model.
type StatusResponse struct {
	AnthropicConfigured bool   `json:"anthropic_configured"`
	OpenAIConfigured    bool   `json:"openai_configured"`
	DefaultModel        string `json:"default_model"`
}

// HealthHandler handles the liveness probe and the AI status endpoint.
type HealthHandler struct {
	factory llm.ClientFactory
	logger  *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(factory llm.ClientFactory, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{factory: factory, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /api/ai/status", h.Status)
}

// Health handles GET /health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Service:   ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write health response", zap.Error(err))
	}
}

// Status handles GET /api/ai/status requests.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	response := StatusResponse{
		AnthropicConfigured: h.factory.TextConfigured(),
		OpenAIConfigured:    h.factory.EmbeddingConfigured(),
		DefaultModel:        h.factory.DefaultModel(),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write status response", zap.Error(err))
	}
}
