package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/llm"
	"github.com/crane-ceeshar/ai-services/pkg/prompts"
)

// AutomationRunRequest is the payload for POST /api/ai/automation/run.
type AutomationRunRequest struct {
	AutomationType   string         `json:"automation_type"`
	AutomationConfig map[string]any `json:"automation_config,omitempty"`
	TenantID         string         `json:"tenant_id"`
}

// AutomationResult carries the automation output.
type AutomationResult struct {
	Output         string `json:"output"`
	AutomationType string `json:"automation_type"`
}

// AutomationRunResponse is the automation execution response.
type AutomationRunResponse struct {
	Result         AutomationResult `json:"result"`
	TokensUsed     int              `json:"tokens_used"`
	ItemsProcessed int              `json:"items_processed"`
	Model          string           `json:"model"`
}

// AutomationHandler handles automation execution requests.
type AutomationHandler struct {
	factory          llm.ClientFactory
	defaultMaxTokens int
	logger           *zap.Logger
}

// NewAutomationHandler creates a new automation handler.
func NewAutomationHandler(factory llm.ClientFactory, defaultMaxTokens int, logger *zap.Logger) *AutomationHandler {
	return &AutomationHandler{
		factory:          factory,
		defaultMaxTokens: defaultMaxTokens,
		logger:           logger,
	}
}

// RegisterRoutes registers the automation handler's routes on the given mux.
func (h *AutomationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ai/automation/run", h.Run)
}

// Run handles POST /api/ai/automation/run.
// An unrecognized automation type is rejected before any provider use.
func (h *AutomationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req AutomationRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, h.logger, "invalid_request", "Invalid request body")
		return
	}

	system, ok := prompts.AutomationPrompts[req.AutomationType]
	if !ok {
		writeClientError(w, h.logger, "unknown_automation_type",
			"Unknown automation type: "+req.AutomationType)
		return
	}

	if req.TenantID == "" {
		writeClientError(w, h.logger, "missing_tenant_id", "tenant_id is required")
		return
	}

	client, err := h.factory.TextClient()
	if err != nil {
		writeProviderError(w, h.logger, err)
		return
	}

	result, err := client.CreateCompletion(r.Context(), &llm.CompletionRequest{
		System: system,
		Messages: []llm.ChatMessage{{
			Role:    llm.RoleUser,
			Content: prompts.BuildAutomationUserMessage(req.AutomationType, req.AutomationConfig),
		}},
		MaxTokens: h.defaultMaxTokens,
	})
	if err != nil {
		h.logger.Error("Automation run failed",
			zap.String("automation_type", req.AutomationType),
			zap.Error(err))
		writeProviderError(w, h.logger, err)
		return
	}

	response := AutomationRunResponse{
		Result: AutomationResult{
			Output:         result.Content,
			AutomationType: req.AutomationType,
		},
		TokensUsed:     result.TokensUsed,
		ItemsProcessed: 1,
		Model:          result.Model,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
