package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crane-ceeshar/ai-services/pkg/store"
)

// mockQuerier is a configurable store mock for insights tests.
type mockQuerier struct {
	QueryFunc func(ctx context.Context, table string, opts store.QueryOptions) ([]store.Row, error)

	QueryCalls int
	LastTable  string
	LastOpts   store.QueryOptions
}

func (m *mockQuerier) Query(ctx context.Context, table string, opts store.QueryOptions) ([]store.Row, error) {
	m.QueryCalls++
	m.LastTable = table
	m.LastOpts = opts
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, table, opts)
	}
	return []store.Row{}, nil
}

var _ store.Querier = (*mockQuerier)(nil)

// postJSON builds a POST request with a JSON-encoded body.
func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes a recorded JSON response body into target.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(target))
}
