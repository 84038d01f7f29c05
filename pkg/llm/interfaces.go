// Package llm provides clients for the text-completion and embedding providers.
package llm

import "context"

// ChatMessage is one turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message role constants.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// CompletionRequest carries everything needed for one provider completion.
// Every request has exactly one system instruction and the user-supplied
// conversation turns.
type CompletionRequest struct {
	System    string
	Messages  []ChatMessage
	MaxTokens int
}

// CompletionResult is the typed wrapper around a provider completion reply.
type CompletionResult struct {
	Content    string
	Model      string
	TokensUsed int
	StopReason string
}

// StreamEventType defines types of streaming events.
type StreamEventType string

const (
	StreamEventText  StreamEventType = "text"
	StreamEventDone  StreamEventType = "done"
	StreamEventError StreamEventType = "error"
)

// StreamEvent is one incremental event from a streaming completion.
// Text events carry a fragment in Content; the done event carries the final
// CompletionResult in Result; the error event carries a message in Content.
type StreamEvent struct {
	Type    StreamEventType
	Content string
	Result  *CompletionResult
}

// TextClient defines the interface for chat/text completion operations.
// Use this interface for dependency injection to enable mocking in tests.
type TextClient interface {
	// CreateCompletion performs a single blocking completion.
	CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// StreamCompletion performs a streaming completion, sending events to the
	// channel in provider-emission order. Exactly one terminal event (done or
	// error) is sent; the channel is closed before returning.
	StreamCompletion(ctx context.Context, req *CompletionRequest, events chan<- StreamEvent) error

	// Model returns the configured model name.
	Model() string
}

// EmbeddingClient defines the interface for embedding operations.
type EmbeddingClient interface {
	// CreateEmbedding generates an embedding vector for a single input.
	CreateEmbedding(ctx context.Context, input string) ([]float32, error)

	// CreateEmbeddings generates embeddings for multiple inputs.
	CreateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error)

	// Model returns the configured model name.
	Model() string
}

// Ensure the concrete clients implement the interfaces at compile time.
var (
	_ TextClient      = (*AnthropicClient)(nil)
	_ EmbeddingClient = (*OpenAIClient)(nil)
)
