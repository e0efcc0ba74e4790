// Package config loads service configuration from config.yaml and the
// process environment. Environment variables always override YAML
// values; secrets only ever come from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for parlance-engine.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Generative model endpoint
	LLM LLMConfig `yaml:"llm"`

	// Translation pipeline settings
	Translate TranslateConfig `yaml:"translate"`
}

// LLMConfig holds the model collaborator settings. The default endpoint
// is Gemini's OpenAI-compatibility layer.
type LLMConfig struct {
	BaseURL string `yaml:"base_url" env:"LLM_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	Model   string `yaml:"model" env:"LLM_MODEL" env-default:"gemini-2.5-flash"`

	// APIKey is loaded once at process start and immutable thereafter.
	// Absence is not validated here: the model call fails and surfaces
	// as a processing error, never as a startup failure.
	APIKey string `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML
}

// TranslateConfig holds translation pipeline settings.
type TranslateConfig struct {
	// Temperature for the model call. Translation wants determinism.
	Temperature float64 `yaml:"temperature" env:"TRANSLATE_TEMPERATURE" env-default:"0"`

	// InjectionScreening rejects natural-language queries that carry
	// SQL injection payloads before they reach the model.
	InjectionScreening bool `yaml:"injection_screening" env:"TRANSLATE_INJECTION_SCREENING" env-default:"true"`
}

// Load reads configuration from config.yaml with environment variable
// overrides, falling back to environment-only when no file exists. The
// version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	return cfg, nil
}
