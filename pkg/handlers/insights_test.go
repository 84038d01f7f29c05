package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/llm"
	"github.com/crane-ceeshar/ai-services/pkg/prompts"
	"github.com/crane-ceeshar/ai-services/pkg/store"
)

const insightsJSON = `[
	{"title": "Pipeline concentration", "summary": "Most value sits in two deals.", "type": "deal_score", "details": {"deal_count": 2}},
	{"title": "Stalled deals", "summary": "Three deals have not moved in 30 days.", "type": "anomaly_detection", "details": {"stalled": 3}}
]`

func newTestInsightsHandler(querier store.Querier) (*InsightsHandler, *llm.MockClientFactory) {
	factory := llm.NewMockClientFactory()
	factory.Text.CreateCompletionFunc = func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResult, error) {
		return &llm.CompletionResult{Content: insightsJSON, Model: "claude-sonnet-4-20250514", TokensUsed: 99}, nil
	}
	handler := NewInsightsHandler(factory, querier, zap.NewNop())
	return handler, factory
}

func TestInsights_EnrichedWithTenantScopedData(t *testing.T) {
	querier := &mockQuerier{
		QueryFunc: func(ctx context.Context, table string, opts store.QueryOptions) ([]store.Row, error) {
			return []store.Row{{"id": "d1", "title": "Acme renewal", "value": 12000}}, nil
		},
	}
	handler, factory := newTestInsightsHandler(querier)

	var captured *llm.CompletionRequest
	inner := factory.Text.CreateCompletionFunc
	factory.Text.CreateCompletionFunc = func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResult, error) {
		captured = req
		return inner(ctx, req)
	}

	rec := httptest.NewRecorder()
	handler.Generate(rec, postJSON(t, "/api/ai/insights/generate", InsightsRequest{
		TenantID: "tenant-1",
		Category: "crm",
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	// Tenant isolation: the enrichment query must filter on the tenant column.
	require.Equal(t, 1, querier.QueryCalls)
	assert.Equal(t, "deals", querier.LastTable)
	assert.Equal(t, "eq.tenant-1", querier.LastOpts.Filters["tenant_id"])
	assert.Equal(t, prompts.InsightDataQueries["crm"].Select, querier.LastOpts.Select)
	assert.Equal(t, prompts.InsightDataQueries["crm"].Limit, querier.LastOpts.Limit)

	require.NotNil(t, captured)
	assert.Equal(t, prompts.InsightSystemPrompt, captured.System)
	assert.Contains(t, captured.Messages[0].Content, "Acme renewal")

	var resp InsightsResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Insights, 2)
	assert.Equal(t, "Pipeline concentration", resp.Insights[0].Title)
	assert.Equal(t, "crm", resp.Category)
	assert.Equal(t, 99, resp.TokensUsed)
}

func TestInsights_StoreFailureDegradesToGeneralInsights(t *testing.T) {
	querier := &mockQuerier{
		QueryFunc: func(ctx context.Context, table string, opts store.QueryOptions) ([]store.Row, error) {
			return nil, errors.New("store returned 500")
		},
	}
	handler, factory := newTestInsightsHandler(querier)

	var captured *llm.CompletionRequest
	inner := factory.Text.CreateCompletionFunc
	factory.Text.CreateCompletionFunc = func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResult, error) {
		captured = req
		return inner(ctx, req)
	}

	rec := httptest.NewRecorder()
	handler.Generate(rec, postJSON(t, "/api/ai/insights/generate", InsightsRequest{
		TenantID: "tenant-1",
		Category: "finance",
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp InsightsResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Insights)

	require.NotNil(t, captured)
	assert.Contains(t, captured.Messages[0].Content, prompts.InsightDataUnavailable)
}

func TestInsights_UnknownCategorySkipsStore(t *testing.T) {
	querier := &mockQuerier{}
	handler, factory := newTestInsightsHandler(querier)

	var captured *llm.CompletionRequest
	inner := factory.Text.CreateCompletionFunc
	factory.Text.CreateCompletionFunc = func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResult, error) {
		captured = req
		return inner(ctx, req)
	}

	rec := httptest.NewRecorder()
	handler.Generate(rec, postJSON(t, "/api/ai/insights/generate", InsightsRequest{
		TenantID: "tenant-1",
		Category: "astrology",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, querier.QueryCalls)
	require.NotNil(t, captured)
	assert.Contains(t, captured.Messages[0].Content, prompts.InsightNoCategoryData)
}

func TestInsights_NilStoreDegrades(t *testing.T) {
	handler, _ := newTestInsightsHandler(nil)

	rec := httptest.NewRecorder()
	handler.Generate(rec, postJSON(t, "/api/ai/insights/generate", InsightsRequest{
		TenantID: "tenant-1",
		Category: "crm",
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp InsightsResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Insights)
}

func TestInsights_WrapperObjectUnwrapped(t *testing.T) {
	handler, factory := newTestInsightsHandler(&mockQuerier{})
	factory.Text.CreateCompletionFunc = func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResult, error) {
		return &llm.CompletionResult{
			Content: `{"insights": [{"title": "Spend spike", "summary": "Travel doubled.", "type": "anomaly_detection", "details": {}}]}`,
		}, nil
	}

	rec := httptest.NewRecorder()
	handler.Generate(rec, postJSON(t, "/api/ai/insights/generate", InsightsRequest{
		TenantID: "tenant-1",
		Category: "finance",
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp InsightsResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Insights, 1)
	assert.Equal(t, "Spend spike", resp.Insights[0].Title)
}

func TestInsights_UnparseableReplyFallsBackToSyntheticInsight(t *testing.T) {
	handler, factory := newTestInsightsHandler(&mockQuerier{})

	longReply := strings.Repeat("Key observation: expenses keep rising. ", 20)
	factory.Text.CreateCompletionFunc = func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResult, error) {
		return &llm.CompletionResult{Content: longReply, Model: "claude-sonnet-4-20250514"}, nil
	}

	rec := httptest.NewRecorder()
	handler.Generate(rec, postJSON(t, "/api/ai/insights/generate", InsightsRequest{
		TenantID: "tenant-1",
		Category: "finance",
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp InsightsResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Insights, 1)

	insight := resp.Insights[0]
	assert.Equal(t, "AI Analysis", insight.Title)
	assert.Equal(t, "general", insight.Type)
	assert.LessOrEqual(t, len([]rune(insight.Summary)), 200)
	assert.Equal(t, longReply, insight.Details["raw_response"])
}

func TestInsights_MissingFields(t *testing.T) {
	handler, factory := newTestInsightsHandler(&mockQuerier{})

	rec := httptest.NewRecorder()
	handler.Generate(rec, postJSON(t, "/api/ai/insights/generate", InsightsRequest{Category: "crm"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	handler.Generate(rec, postJSON(t, "/api/ai/insights/generate", InsightsRequest{TenantID: "tenant-1"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 0, factory.Text.CreateCompletionCalls)
}
