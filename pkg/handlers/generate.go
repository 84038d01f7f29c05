package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/llm"
	"github.com/crane-ceeshar/ai-services/pkg/prompts"
)

// GenerateRequest is the payload for POST /api/ai/generate.
type GenerateRequest struct {
	Type      string         `json:"type"`
	Prompt    string         `json:"prompt"`
	Context   map[string]any `json:"context,omitempty"`
	MaxTokens int            `json:"max_tokens,omitempty"`
}

// GenerateResponse is the content generation response.
type GenerateResponse struct {
	Content    string `json:"content"`
	Type       string `json:"type"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used,omitempty"`
}

// GenerateHandler handles content generation requests.
type GenerateHandler struct {
	factory          llm.ClientFactory
	defaultMaxTokens int
	logger           *zap.Logger
}

// NewGenerateHandler creates a new generation handler.
func NewGenerateHandler(factory llm.ClientFactory, defaultMaxTokens int, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		factory:          factory,
		defaultMaxTokens: defaultMaxTokens,
		logger:           logger,
	}
}

// RegisterRoutes registers the generation handler's routes on the given mux.
func (h *GenerateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ai/generate", h.Generate)
	mux.HandleFunc("POST /api/ai/generate/{$}", h.Generate)
}

// Generate handles POST /api/ai/generate.
// An unknown generation type falls back to the "custom" instruction.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, h.logger, "invalid_request", "Invalid request body")
		return
	}

	if req.Prompt == "" {
		writeClientError(w, h.logger, "missing_prompt", "Prompt is required")
		return
	}

	client, err := h.factory.TextClient()
	if err != nil {
		writeProviderError(w, h.logger, err)
		return
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = h.defaultMaxTokens
	}

	result, err := client.CreateCompletion(r.Context(), &llm.CompletionRequest{
		System:    prompts.BuildGenerationSystemPrompt(req.Type, req.Context),
		Messages:  []llm.ChatMessage{{Role: llm.RoleUser, Content: req.Prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		h.logger.Error("Content generation failed",
			zap.String("type", req.Type),
			zap.Error(err))
		writeProviderError(w, h.logger, err)
		return
	}

	response := GenerateResponse{
		Content:    result.Content,
		Type:       req.Type,
		Model:      result.Model,
		TokensUsed: result.TokensUsed,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
