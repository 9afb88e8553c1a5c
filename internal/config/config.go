package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.summon/summon.yaml.
type Config struct {
	// Semantic enables embedding-based scoring when an embeddings provider
	// is configured (see internal/embeddings).
	Semantic bool `yaml:"semantic,omitempty"`

	// LaunchTimeoutSec bounds each individual launch attempt.
	LaunchTimeoutSec int `yaml:"launch_timeout_seconds,omitempty"`
	// DiscoveryTimeoutSec bounds each subprocess-based discovery step.
	DiscoveryTimeoutSec int `yaml:"discovery_timeout_seconds,omitempty"`

	// BinScanLimit caps how many executables the Linux bin-path scan may
	// contribute to the index.
	BinScanLimit int `yaml:"bin_scan_limit,omitempty"`
	// SkipExecutables lists name fragments that disqualify an executable
	// from discovery (service managers, installers, and the like).
	SkipExecutables []string `yaml:"skip_executables,omitempty"`

	// LexicalThreshold is the minimum acceptable score in lexical-only
	// scoring mode.
	LexicalThreshold float64 `yaml:"lexical_threshold,omitempty"`
	// SemanticThreshold is the minimum acceptable weighted score when
	// semantic scoring is enabled.
	SemanticThreshold float64 `yaml:"semantic_threshold,omitempty"`
}

// Default returns the configuration used when no summon.yaml exists.
func Default() *Config {
	return &Config{
		Semantic:            false,
		LaunchTimeoutSec:    10,
		DiscoveryTimeoutSec: 15,
		BinScanLimit:        50,
		SkipExecutables:     []string{"systemd", "dbus", "update", "install", "config"},
		LexicalThreshold:    40,
		SemanticThreshold:   0.30,
	}
}

// SummonDir returns the absolute path to ~/.summon/.
func SummonDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".summon"), nil
}

// ConfigPath returns the absolute path to ~/.summon/summon.yaml.
func ConfigPath() (string, error) {
	dir, err := SummonDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "summon.yaml"), nil
}

// CachePath returns the absolute path to the discovery cache file.
func CachePath() (string, error) {
	dir, err := SummonDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache", "apps.json"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// Load reads ~/.summon/summon.yaml. A missing file is not an error: the
// defaults are returned so summon works without prior setup. Fields absent
// from the file keep their default values.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return cfg, nil
}

// Save marshals cfg and writes it to ~/.summon/summon.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
