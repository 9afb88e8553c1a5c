// Package embeddings turns short phrases into fixed-length vectors for the
// semantic matching signal. Scoring only ever sees the Provider interface,
// so a stub provider keeps unit tests deterministic and offline.
package embeddings

import (
	"context"
	"fmt"

	"summon-cli/internal/config"
)

// Provider embeds text into a fixed-length float vector.
//
// Implementations must be deterministic for the same input text and model.
type Provider interface {
	ModelID() string
	Dim() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config contains the resolved embeddings configuration.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// LoadConfig resolves embeddings config from environment variables first,
// then ~/.summon/.env.
func LoadConfig() (*Config, error) {
	provider, err := config.GetConfigValue("SUMMON_EMBEDDINGS_PROVIDER")
	if err != nil {
		return nil, err
	}
	model, err := config.GetConfigValue("SUMMON_EMBEDDINGS_MODEL")
	if err != nil {
		return nil, err
	}
	apiKey, err := config.GetConfigValue("SUMMON_EMBEDDINGS_API_KEY")
	if err != nil {
		return nil, err
	}
	baseURL, err := config.GetConfigValue("SUMMON_EMBEDDINGS_BASE_URL")
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &Config{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  baseURL,
	}, nil
}

// NewFromConfig returns an embeddings provider.
func NewFromConfig(cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("embeddings config is nil")
	}
	if cfg.Provider == "" {
		return nil, fmt.Errorf("embeddings provider is not configured (set SUMMON_EMBEDDINGS_PROVIDER)")
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported embeddings provider: %s", cfg.Provider)
	}
}
