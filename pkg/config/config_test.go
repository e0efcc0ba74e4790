package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "127.0.0.1", cfg.BindAddr)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Contains(t, cfg.LLM.BaseURL, "generativelanguage")
	assert.Zero(t, cfg.Translate.Temperature)
	assert.True(t, cfg.Translate.InjectionScreening)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LLM_MODEL", "gemini-2.5-pro")
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("TRANSLATE_INJECTION_SCREENING", "false")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.False(t, cfg.Translate.InjectionScreening)
}

func TestLoad_MissingAPIKeyIsNotAnError(t *testing.T) {
	cfg, err := Load("dev")
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.APIKey)
}
