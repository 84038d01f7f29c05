// Package store provides a minimal REST client for the tenant-partitioned
// relational data store (Supabase/PostgREST interface).
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Row is one record fetched from the store, column name to value.
type Row map[string]any

// QueryOptions controls a filtered read.
type QueryOptions struct {
	// Select is the comma-separated column list; empty selects all columns.
	Select string
	// Filters are column -> comparison-expression pairs (e.g. "tenant_id" ->
	// "eq.<id>"); the store ANDs them.
	Filters map[string]string
	// Order is a PostgREST ordering expression (e.g. "created_at.desc").
	Order string
	// Limit caps the row count; zero means no limit.
	Limit int
}

// Querier is the read-side interface of the store, for dependency injection.
type Querier interface {
	Query(ctx context.Context, table string, opts QueryOptions) ([]Row, error)
}

// Client is a REST client for the data store. All operations are single
// round trips authenticated with the service-level key; any non-success
// status is surfaced as an error to the caller.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new store client.
func NewClient(baseURL, serviceKey string, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("store base URL is required")
	}
	if serviceKey == "" {
		return nil, fmt.Errorf("store service key is required")
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.Named("store"),
	}, nil
}

// Query performs a filtered read of the named table.
func (c *Client) Query(ctx context.Context, table string, opts QueryOptions) ([]Row, error) {
	params := url.Values{}
	if opts.Select != "" {
		params.Set("select", opts.Select)
	}
	for column, expr := range opts.Filters {
		params.Set(column, expr)
	}
	if opts.Order != "" {
		params.Set("order", opts.Order)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	body, err := c.do(ctx, http.MethodGet, table, params, nil)
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return rows, nil
}

// Insert adds a row to the named table and returns the inserted row.
func (c *Client) Insert(ctx context.Context, table string, row Row) (Row, error) {
	body, err := c.do(ctx, http.MethodPost, table, nil, row)
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows(body)
	if err != nil {
		return nil, fmt.Errorf("decode insert response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no row", table)
	}
	return rows[0], nil
}

// Update modifies rows matching the filters and returns the first updated
// row, or nil when no row matched.
func (c *Client) Update(ctx context.Context, table string, filters map[string]string, row Row) (Row, error) {
	params := url.Values{}
	for column, expr := range filters {
		params.Set(column, expr)
	}

	body, err := c.do(ctx, http.MethodPatch, table, params, row)
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows(body)
	if err != nil {
		return nil, fmt.Errorf("decode update response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// do performs one authenticated round trip and returns the response body.
func (c *Client) do(ctx context.Context, method, table string, params url.Values, payload any) ([]byte, error) {
	endpoint := c.baseURL + "/rest/v1/" + table
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("store request failed",
			zap.String("method", method),
			zap.String("table", table),
			zap.Error(err))
		return nil, fmt.Errorf("store request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read store response: %w", err)
	}

	c.logger.Debug("store request completed",
		zap.String("method", method),
		zap.String("table", table),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("store returned status %d for %s %s: %s",
			resp.StatusCode, method, table, truncate(string(body), 200))
	}

	return body, nil
}

// decodeRows handles both array and single-object response bodies.
func decodeRows(body []byte) ([]Row, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' {
		var row Row
		if err := json.Unmarshal(trimmed, &row); err != nil {
			return nil, err
		}
		return []Row{row}, nil
	}

	var rows []Row
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Ensure Client implements Querier at compile time.
var _ Querier = (*Client)(nil)
