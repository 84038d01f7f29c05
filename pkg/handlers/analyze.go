package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/llm"
	"github.com/crane-ceeshar/ai-services/pkg/prompts"
)

// AnalyzeRequest is the payload for POST /api/ai/analyze.
type AnalyzeRequest struct {
	Text     string         `json:"text"`
	Analyses []string       `json:"analyses"`
	Context  map[string]any `json:"context,omitempty"`
}

// AnalyzeResponse maps each recognized analysis kind to its result. When the
// provider reply is not the expected JSON shape, Results degrades to a single
// "raw" key carrying the verbatim reply text.
type AnalyzeResponse struct {
	Results    map[string]any `json:"results"`
	Model      string         `json:"model"`
	TokensUsed int            `json:"tokens_used,omitempty"`
}

// AnalyzeHandler handles text analysis requests.
type AnalyzeHandler struct {
	factory          llm.ClientFactory
	defaultMaxTokens int
	logger           *zap.Logger
}

// NewAnalyzeHandler creates a new analysis handler.
func NewAnalyzeHandler(factory llm.ClientFactory, defaultMaxTokens int, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		factory:          factory,
		defaultMaxTokens: defaultMaxTokens,
		logger:           logger,
	}
}

// RegisterRoutes registers the analysis handler's routes on the given mux.
func (h *AnalyzeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ai/analyze", h.Analyze)
	mux.HandleFunc("POST /api/ai/analyze/{$}", h.Analyze)
}

// Analyze handles POST /api/ai/analyze.
// A request may combine several analysis kinds in one call; unrecognized
// kinds are dropped, and a request naming zero recognized kinds is rejected.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, h.logger, "invalid_request", "Invalid request body")
		return
	}

	if req.Text == "" {
		writeClientError(w, h.logger, "missing_text", "Text is required")
		return
	}

	system, recognized := prompts.BuildAnalysisSystemPrompt(req.Analyses)
	if len(recognized) == 0 {
		writeClientError(w, h.logger, "unknown_analyses", "No recognized analysis kind requested")
		return
	}

	if len(req.Context) > 0 {
		if data, err := json.Marshal(req.Context); err == nil {
			system += fmt.Sprintf("\n\nAdditional context: %s", data)
		}
	}

	client, err := h.factory.TextClient()
	if err != nil {
		writeProviderError(w, h.logger, err)
		return
	}

	result, err := client.CreateCompletion(r.Context(), &llm.CompletionRequest{
		System:    system,
		Messages:  []llm.ChatMessage{{Role: llm.RoleUser, Content: req.Text}},
		MaxTokens: h.defaultMaxTokens,
	})
	if err != nil {
		h.logger.Error("Text analysis failed",
			zap.Strings("analyses", recognized),
			zap.Error(err))
		writeProviderError(w, h.logger, err)
		return
	}

	response := AnalyzeResponse{
		Results:    h.parseResults(result.Content, recognized),
		Model:      result.Model,
		TokensUsed: result.TokensUsed,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// parseResults parses the provider reply into one value per recognized kind.
// Keys the provider added beyond the recognized set are dropped; a reply that
// is not the expected JSON shape degrades to {"raw": <verbatim text>}.
func (h *AnalyzeHandler) parseResults(reply string, recognized []string) map[string]any {
	parsed, err := llm.ParseJSONResponse[map[string]any](reply)
	if err != nil {
		h.logger.Warn("Analysis reply was not valid JSON, returning raw text", zap.Error(err))
		return map[string]any{"raw": reply}
	}

	results := make(map[string]any, len(recognized))
	for _, kind := range recognized {
		if value, ok := parsed[kind]; ok {
			results[kind] = value
		}
	}
	return results
}
