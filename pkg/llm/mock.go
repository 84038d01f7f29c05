package llm

import "context"

// MockTextClient is a configurable mock for testing completion functionality.
// Set the function fields to control behavior in tests.
type MockTextClient struct {
	// CreateCompletionFunc is called when CreateCompletion is invoked.
	// If nil, returns an empty result and nil error.
	CreateCompletionFunc func(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// StreamCompletionFunc is called when StreamCompletion is invoked.
	// If nil, sends a single done event. Implementations must close events.
	StreamCompletionFunc func(ctx context.Context, req *CompletionRequest, events chan<- StreamEvent) error

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	CreateCompletionCalls int
	StreamCompletionCalls int
}

// NewMockTextClient creates a new mock with sensible defaults.
func NewMockTextClient() *MockTextClient {
	return &MockTextClient{ModelName: "mock-model"}
}

// CreateCompletion implements TextClient.
func (m *MockTextClient) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	m.CreateCompletionCalls++
	if m.CreateCompletionFunc != nil {
		return m.CreateCompletionFunc(ctx, req)
	}
	return &CompletionResult{Model: m.Model()}, nil
}

// StreamCompletion implements TextClient.
func (m *MockTextClient) StreamCompletion(ctx context.Context, req *CompletionRequest, events chan<- StreamEvent) error {
	m.StreamCompletionCalls++
	if m.StreamCompletionFunc != nil {
		return m.StreamCompletionFunc(ctx, req, events)
	}
	events <- StreamEvent{Type: StreamEventDone, Result: &CompletionResult{Model: m.Model()}}
	close(events)
	return nil
}

// Model implements TextClient.
func (m *MockTextClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Ensure MockTextClient implements TextClient at compile time.
var _ TextClient = (*MockTextClient)(nil)

// MockEmbeddingClient is a configurable mock for testing embedding functionality.
type MockEmbeddingClient struct {
	// CreateEmbeddingFunc is called when CreateEmbedding is invoked.
	// If nil, returns a fixed three-dimensional vector.
	CreateEmbeddingFunc func(ctx context.Context, input string) ([]float32, error)

	// CreateEmbeddingsFunc is called when CreateEmbeddings is invoked.
	// If nil, returns one fixed vector per input.
	CreateEmbeddingsFunc func(ctx context.Context, inputs []string) ([][]float32, error)

	// ModelName is returned by Model. Defaults to "mock-embedding-model".
	ModelName string

	// Call tracking for verification
	CreateEmbeddingCalls  int
	CreateEmbeddingsCalls int
}

// NewMockEmbeddingClient creates a new mock with sensible defaults.
func NewMockEmbeddingClient() *MockEmbeddingClient {
	return &MockEmbeddingClient{ModelName: "mock-embedding-model"}
}

// CreateEmbedding implements EmbeddingClient.
func (m *MockEmbeddingClient) CreateEmbedding(ctx context.Context, input string) ([]float32, error) {
	m.CreateEmbeddingCalls++
	if m.CreateEmbeddingFunc != nil {
		return m.CreateEmbeddingFunc(ctx, input)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// CreateEmbeddings implements EmbeddingClient.
func (m *MockEmbeddingClient) CreateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error) {
	m.CreateEmbeddingsCalls++
	if m.CreateEmbeddingsFunc != nil {
		return m.CreateEmbeddingsFunc(ctx, inputs)
	}
	embeddings := make([][]float32, len(inputs))
	for i := range inputs {
		embeddings[i] = []float32{0.1, 0.2, 0.3}
	}
	return embeddings, nil
}

// Model implements EmbeddingClient.
func (m *MockEmbeddingClient) Model() string {
	if m.ModelName == "" {
		return "mock-embedding-model"
	}
	return m.ModelName
}

// Ensure MockEmbeddingClient implements EmbeddingClient at compile time.
var _ EmbeddingClient = (*MockEmbeddingClient)(nil)

// MockClientFactory is a configurable factory mock for handler tests.
type MockClientFactory struct {
	Text      *MockTextClient
	Embedding *MockEmbeddingClient

	// TextErr / EmbeddingErr are returned instead of a client when set.
	TextErr      error
	EmbeddingErr error

	Model string
}

// NewMockClientFactory creates a factory serving the given mocks.
func NewMockClientFactory() *MockClientFactory {
	return &MockClientFactory{
		Text:      NewMockTextClient(),
		Embedding: NewMockEmbeddingClient(),
		Model:     "mock-model",
	}
}

// TextClient implements ClientFactory.
func (f *MockClientFactory) TextClient() (TextClient, error) {
	if f.TextErr != nil {
		return nil, f.TextErr
	}
	return f.Text, nil
}

// EmbeddingClient implements ClientFactory.
func (f *MockClientFactory) EmbeddingClient() (EmbeddingClient, error) {
	if f.EmbeddingErr != nil {
		return nil, f.EmbeddingErr
	}
	return f.Embedding, nil
}

// TextConfigured implements ClientFactory.
func (f *MockClientFactory) TextConfigured() bool { return f.TextErr == nil }

// EmbeddingConfigured implements ClientFactory.
func (f *MockClientFactory) EmbeddingConfigured() bool { return f.EmbeddingErr == nil }

// DefaultModel implements ClientFactory.
func (f *MockClientFactory) DefaultModel() string { return f.Model }

// Ensure MockClientFactory implements ClientFactory at compile time.
var _ ClientFactory = (*MockClientFactory)(nil)
