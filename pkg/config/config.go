package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for ai-services.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys, service credentials) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8001"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Debug    bool   `yaml:"debug" env:"AI_DEBUG" env-default:"false"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// AI provider configuration
	AI AIConfig `yaml:"ai"`

	// External data store (Supabase REST interface)
	Supabase SupabaseConfig `yaml:"supabase"`
}

// AIConfig holds LLM and embedding provider settings.
// Missing API keys are not a startup error: endpoints that need an
// unconfigured provider respond with 503 when invoked.
type AIConfig struct {
	AnthropicAPIKey string `yaml:"-" env:"AI_ANTHROPIC_API_KEY"` // Secret - not in YAML
	OpenAIAPIKey    string `yaml:"-" env:"AI_OPENAI_API_KEY"`    // Secret - not in YAML
	DefaultModel    string `yaml:"default_model" env:"AI_DEFAULT_MODEL" env-default:"claude-sonnet-4-20250514"`
	EmbeddingModel  string `yaml:"embedding_model" env:"AI_EMBEDDING_MODEL" env-default:"text-embedding-3-small"`
	MaxTokens       int    `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"1024"`
}

// SupabaseConfig holds the tenant data store connection settings.
type SupabaseConfig struct {
	URL        string `yaml:"url" env:"SUPABASE_URL" env-default:""`
	ServiceKey string `yaml:"-" env:"SUPABASE_SERVICE_KEY"` // Secret - not in YAML
}

// Load reads configuration from config.yaml with environment variable overrides.
// When config.yaml does not exist, configuration comes from the environment only.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	err := cleanenv.ReadConfig("config.yaml", cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate checks constraints that cleanenv tags cannot express.
func (c *Config) validate() error {
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("ai.max_tokens must be positive, got %d", c.AI.MaxTokens)
	}
	// A service key without a URL (or vice versa) is a misconfiguration
	// worth failing on; both absent just disables insights enrichment.
	urlSet := c.Supabase.URL != ""
	keySet := c.Supabase.ServiceKey != ""
	if urlSet != keySet {
		return fmt.Errorf("supabase url and service key must be provided together")
	}
	return nil
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.BindAddr + ":" + c.Port
}
