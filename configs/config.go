// Package configs loads the demo server's configuration from config.yaml,
// with environment variables overriding individual fields. Adapted from the
// teacher's cmd/server/main.go loadConfig pattern: config.yaml is optional
// (a missing file falls back to defaults rather than failing the service),
// since none of its fields are required for the core extraction path.
package configs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the demo server's full configuration.
type Config struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// EnhanceThreshold is the confidence.Compute Overall score below which
	// the server calls out to an AI enhancer (spec.md §6). A Record already
	// at or above this score is returned as-is.
	EnhanceThreshold float64 `yaml:"enhance_threshold"`

	AI AIConfig `yaml:"ai"`
}

// AIConfig selects and configures the AI enhancer provider.
type AIConfig struct {
	// DefaultProvider is "gemini", "openai", or "" (enhancement disabled).
	DefaultProvider string       `yaml:"default_provider"`
	OpenAI          OpenAIConfig `yaml:"openai"`
	Gemini          GeminiConfig `yaml:"gemini"`
}

// OpenAIConfig configures the OpenAI-compatible enhancer provider.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model"`
}

// GeminiConfig configures the Gemini enhancer provider.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// defaults returns a Config usable even when no config.yaml is present.
func defaults() Config {
	return Config{
		Port:             8080,
		Host:             "0.0.0.0",
		EnhanceThreshold: 0.6,
	}
}

// Load reads path (a YAML file) and layers environment variable overrides
// on top. A missing file is not an error — Load falls back to defaults()
// so the service still runs with only env vars (or none at all) set.
func Load(path string) (*Config, error) {
	config := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// no config.yaml: defaults + env overrides only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &config.Port); err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
	}
	if host := os.Getenv("HOST"); host != "" {
		config.Host = host
	}
	if threshold := os.Getenv("ENHANCE_THRESHOLD"); threshold != "" {
		if _, err := fmt.Sscanf(threshold, "%g", &config.EnhanceThreshold); err != nil {
			return nil, fmt.Errorf("invalid ENHANCE_THRESHOLD %q: %w", threshold, err)
		}
	}
	if provider := os.Getenv("AI_PROVIDER"); provider != "" {
		config.AI.DefaultProvider = provider
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.AI.OpenAI.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.AI.OpenAI.BaseURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.AI.OpenAI.Model = model
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.AI.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.AI.Gemini.Model = model
	}

	return &config, nil
}
