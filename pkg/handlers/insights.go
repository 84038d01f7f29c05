package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/llm"
	"github.com/crane-ceeshar/ai-services/pkg/prompts"
	"github.com/crane-ceeshar/ai-services/pkg/store"
)

// insightsMaxTokens is the fixed output ceiling for insight synthesis.
const insightsMaxTokens = 2048

// InsightsRequest is the payload for POST /api/ai/insights/generate.
type InsightsRequest struct {
	TenantID          string `json:"tenant_id"`
	Category          string `json:"category"`
	AdditionalContext string `json:"additional_context,omitempty"`
}

// Insight is one synthesized business observation.
type Insight struct {
	Title   string         `json:"title"`
	Summary string         `json:"summary"`
	Type    string         `json:"type"`
	Details map[string]any `json:"details"`
}

// InsightsResponse is the insight synthesis response.
type InsightsResponse struct {
	Insights   []Insight `json:"insights"`
	Category   string    `json:"category"`
	Model      string    `json:"model"`
	TokensUsed int       `json:"tokens_used,omitempty"`
}

// InsightsHandler handles data-driven insight synthesis requests.
// Supporting-data enrichment is best-effort: a store failure degrades to a
// placeholder context, the provider call itself does not degrade.
type InsightsHandler struct {
	factory llm.ClientFactory
	store   store.Querier // nil when the data store is not configured
	logger  *zap.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(factory llm.ClientFactory, querier store.Querier, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		factory: factory,
		store:   querier,
		logger:  logger,
	}
}

// RegisterRoutes registers the insights handler's routes on the given mux.
func (h *InsightsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ai/insights/generate", h.Generate)
}

// Generate handles POST /api/ai/insights/generate.
func (h *InsightsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req InsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, h.logger, "invalid_request", "Invalid request body")
		return
	}

	if req.TenantID == "" {
		writeClientError(w, h.logger, "missing_tenant_id", "tenant_id is required")
		return
	}
	if req.Category == "" {
		writeClientError(w, h.logger, "missing_category", "category is required")
		return
	}

	client, err := h.factory.TextClient()
	if err != nil {
		writeProviderError(w, h.logger, err)
		return
	}

	dataContext := h.fetchDataContext(r, req.TenantID, req.Category)

	result, err := client.CreateCompletion(r.Context(), &llm.CompletionRequest{
		System: prompts.InsightSystemPrompt,
		Messages: []llm.ChatMessage{{
			Role:    llm.RoleUser,
			Content: prompts.BuildInsightsUserMessage(req.Category, dataContext, req.AdditionalContext),
		}},
		MaxTokens: insightsMaxTokens,
	})
	if err != nil {
		h.logger.Error("Insight generation failed",
			zap.String("category", req.Category),
			zap.Error(err))
		writeProviderError(w, h.logger, err)
		return
	}

	response := InsightsResponse{
		Insights:   h.parseInsights(result.Content),
		Category:   req.Category,
		Model:      result.Model,
		TokensUsed: result.TokensUsed,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// fetchDataContext fetches the category's supporting rows scoped to the
// tenant and serializes them for the prompt. Any fetch failure substitutes
// the data-unavailable placeholder; an unknown category proceeds with the
// no-data placeholder.
func (h *InsightsHandler) fetchDataContext(r *http.Request, tenantID, category string) string {
	query, ok := prompts.InsightDataQueries[category]
	if !ok {
		return prompts.InsightNoCategoryData
	}

	if h.store == nil {
		h.logger.Warn("Data store not configured, generating general insights",
			zap.String("category", category))
		return prompts.InsightDataUnavailable
	}

	// Tenant isolation: every enrichment query filters on the tenant column.
	rows, err := h.store.Query(r.Context(), query.Table, store.QueryOptions{
		Select:  query.Select,
		Filters: map[string]string{"tenant_id": "eq." + tenantID},
		Order:   query.Order,
		Limit:   query.Limit,
	})
	if err != nil {
		h.logger.Warn("Supporting-data fetch failed, generating general insights",
			zap.String("category", category),
			zap.Error(err))
		return prompts.InsightDataUnavailable
	}

	data, err := json.Marshal(rows)
	if err != nil {
		h.logger.Warn("Failed to serialize supporting data", zap.Error(err))
		return prompts.InsightDataUnavailable
	}
	return string(data)
}

// parseInsights parses the provider reply as a JSON array of insights, also
// accepting an {"insights": [...]} wrapper object. A reply that cannot be
// parsed degrades to a single synthetic "general" insight wrapping the text.
func (h *InsightsHandler) parseInsights(reply string) []Insight {
	if insights, err := llm.ParseJSONResponse[[]Insight](reply); err == nil && len(insights) > 0 {
		return insights
	}

	var wrapper struct {
		Insights []Insight `json:"insights"`
	}
	if jsonStr, err := llm.ExtractJSON(reply); err == nil {
		if err := json.Unmarshal([]byte(jsonStr), &wrapper); err == nil && len(wrapper.Insights) > 0 {
			return wrapper.Insights
		}
	}

	h.logger.Warn("Insight reply was not the expected JSON shape, returning synthetic insight")
	return []Insight{{
		Title:   "AI Analysis",
		Summary: truncateRunes(reply, 200),
		Type:    "general",
		Details: map[string]any{"raw_response": reply},
	}}
}

// truncateRunes shortens s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
