package llm

import (
	"go.uber.org/zap"
)

// FactoryConfig holds the provider credentials and model defaults.
type FactoryConfig struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	DefaultModel    string
	EmbeddingModel  string
}

// ClientFactory is the interface for creating provider clients.
// Use this interface for dependency injection and testing.
type ClientFactory interface {
	// TextClient returns a ready-to-use completion client, or a
	// not-configured error when the Anthropic key is absent.
	TextClient() (TextClient, error)

	// EmbeddingClient returns a ready-to-use embeddings client, or a
	// not-configured error when the OpenAI key is absent.
	EmbeddingClient() (EmbeddingClient, error)

	// TextConfigured reports whether the completion provider key is present.
	TextConfigured() bool

	// EmbeddingConfigured reports whether the embedding provider key is present.
	EmbeddingConfigured() bool

	// DefaultModel returns the configured default completion model.
	DefaultModel() string
}

// Factory creates provider clients from process-wide configuration.
// Clients are constructed per invocation and carry no shared state.
type Factory struct {
	cfg    FactoryConfig
	logger *zap.Logger
}

// NewFactory creates a new factory.
func NewFactory(cfg FactoryConfig, logger *zap.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// TextClient implements ClientFactory.
func (f *Factory) TextClient() (TextClient, error) {
	return NewAnthropicClient(f.cfg.AnthropicAPIKey, f.cfg.DefaultModel, f.logger)
}

// EmbeddingClient implements ClientFactory.
func (f *Factory) EmbeddingClient() (EmbeddingClient, error) {
	return NewOpenAIClient(f.cfg.OpenAIAPIKey, f.cfg.EmbeddingModel, f.logger)
}

// TextConfigured implements ClientFactory.
func (f *Factory) TextConfigured() bool {
	return f.cfg.AnthropicAPIKey != ""
}

// EmbeddingConfigured implements ClientFactory.
func (f *Factory) EmbeddingConfigured() bool {
	return f.cfg.OpenAIAPIKey != ""
}

// DefaultModel implements ClientFactory.
func (f *Factory) DefaultModel() string {
	return f.cfg.DefaultModel
}

// Ensure Factory implements ClientFactory at compile time.
var _ ClientFactory = (*Factory)(nil)
