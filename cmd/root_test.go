package cmd

import (
	"testing"

	"summon-cli/internal/config"
)

func TestNewEmbedder_DisabledByConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if newEmbedder(config.Default(), newLogger()) != nil {
		t.Fatal("semantic matching is off by default, embedder must be nil")
	}
}

func TestNewEmbedder_NoSemanticFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	flagNoSemantic = true
	defer func() { flagNoSemantic = false }()

	cfg := config.Default()
	cfg.Semantic = true
	if newEmbedder(cfg, newLogger()) != nil {
		t.Fatal("--no-semantic must suppress the embedder")
	}
}

func TestNewEmbedder_UnconfiguredProvider(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SUMMON_EMBEDDINGS_PROVIDER", "")
	t.Setenv("SUMMON_EMBEDDINGS_API_KEY", "")

	cfg := config.Default()
	cfg.Semantic = true
	// No provider configured: resolution degrades to lexical, never errors.
	if newEmbedder(cfg, newLogger()) != nil {
		t.Fatal("unconfigured provider must yield a nil embedder")
	}
}

func TestNewResolver_DefaultEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	r, err := newResolver()
	if err != nil {
		t.Fatalf("newResolver: %v", err)
	}
	if r == nil {
		t.Fatal("expected a wired resolver")
	}
}
