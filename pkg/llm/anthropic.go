package llm

import (
	"context"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// AnthropicClient provides access to the Anthropic messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient creates a new text-completion client.
func NewAnthropicClient(apiKey, model string, logger *zap.Logger) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, NewNotConfiguredError("Anthropic API key not configured (set AI_ANTHROPIC_API_KEY)")
	}

	return &AnthropicClient{
		client: anthropic.NewClient(apiKey),
		model:  model,
		logger: logger.Named("anthropic"),
	}, nil
}

// CreateCompletion performs a single blocking completion.
func (c *AnthropicClient) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	start := time.Now()

	c.logger.Debug("completion request",
		zap.String("model", c.model),
		zap.Int("messages", len(req.Messages)),
		zap.Int("max_tokens", req.MaxTokens))

	resp, err := c.client.CreateMessages(ctx, c.buildRequest(req))
	if err != nil {
		c.logger.Error("completion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, NewProviderError("completion failed", err)
	}

	result := c.buildResult(resp)

	c.logger.Info("completion request completed",
		zap.Int("tokens_used", result.TokensUsed),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// StreamCompletion performs a streaming completion. Text fragments are sent
// to events in provider-emission order, followed by exactly one terminal
// event: done with the aggregated result, or error with the failure message.
// The channel is closed before returning.
func (c *AnthropicClient) StreamCompletion(ctx context.Context, req *CompletionRequest, events chan<- StreamEvent) error {
	defer close(events)

	start := time.Now()

	resp, err := c.client.CreateMessagesStream(ctx, anthropic.MessagesStreamRequest{
		MessagesRequest: c.buildRequest(req),
		OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
			if text := data.Delta.GetText(); text != "" {
				events <- StreamEvent{Type: StreamEventText, Content: text}
			}
		},
	})
	if err != nil {
		c.logger.Error("streaming completion failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		events <- StreamEvent{Type: StreamEventError, Content: err.Error()}
		return NewProviderError("streaming completion failed", err)
	}

	result := c.buildResult(resp)

	c.logger.Info("streaming completion completed",
		zap.Int("tokens_used", result.TokensUsed),
		zap.Duration("elapsed", time.Since(start)))

	events <- StreamEvent{Type: StreamEventDone, Result: result}
	return nil
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string {
	return c.model
}

func (c *AnthropicClient) buildRequest(req *CompletionRequest) anthropic.MessagesRequest {
	messages := make([]anthropic.Message, len(req.Messages))
	for i, m := range req.Messages {
		content := m.Content
		messages[i] = anthropic.Message{
			Role:    anthropic.ChatRole(m.Role),
			Content: []anthropic.MessageContent{{Type: "text", Text: &content}},
		}
	}

	return anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: req.MaxTokens,
		System:    req.System,
		Messages:  messages,
	}
}

func (c *AnthropicClient) buildResult(resp anthropic.MessagesResponse) *CompletionResult {
	return &CompletionResult{
		Content:    extractText(resp),
		Model:      string(resp.Model),
		TokensUsed: resp.Usage.InputTokens + resp.Usage.OutputTokens,
		StopReason: string(resp.StopReason),
	}
}

// extractText returns the first text block of a messages response.
func extractText(resp anthropic.MessagesResponse) string {
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			return *block.Text
		}
	}
	return ""
}
