package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathtutor/internal/llm"
)

// clearEnv blanks every variable Load or DiscoverConfig might read.
// Viper treats an empty variable as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MATHTUTOR_DB", "MATHTUTOR_LOG_LEVEL", "MATHTUTOR_STUDENT_NAME",
		"MATHTUTOR_ORACLE_BACKEND", "MATHTUTOR_ORACLE_URL", "MATHTUTOR_ORACLE_TIMEOUT",
		"MATHTUTOR_LLM_PROVIDER", "MATHTUTOR_LLM_ANTHROPIC_API_KEY", "MATHTUTOR_LLM_OPENAI_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http", cfg.Oracle.Backend)
	assert.Equal(t, "http://localhost:3000/api/verify-answer", cfg.Oracle.URL)
	assert.Equal(t, 10*time.Second, cfg.Oracle.Timeout)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
	assert.Empty(t, cfg.DB)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "mathtutor.yaml", `
log_level: DEBUG
student:
  name: נועה
  grade: "8"
oracle:
  backend: llm
  timeout: 5s
llm:
  provider: openai
  openai:
    model: gpt-4o
`)
	t.Setenv("MATHTUTOR_LLM_OPENAI_API_KEY", "sk-env")
	t.Setenv("MATHTUTOR_ORACLE_TIMEOUT", "3s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "נועה", cfg.Student.Name)
	assert.Equal(t, "8", cfg.Student.Grade)
	assert.Equal(t, "llm", cfg.Oracle.Backend)
	assert.Equal(t, 3*time.Second, cfg.Oracle.Timeout, "env wins over file")
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "sk-env", cfg.LLM.OpenAI.APIKey)

	oc := cfg.OracleSettings()
	assert.Equal(t, "llm", oc.Backend)
	assert.Equal(t, llm.ProviderOpenAI, oc.LLM.Provider)
	assert.Equal(t, "sk-env", oc.LLM.OpenAI.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad log level", map[string]string{"MATHTUTOR_LOG_LEVEL": "loud"}},
		{"bad backend", map[string]string{"MATHTUTOR_ORACLE_BACKEND": "carrier-pigeon"}},
		{"http without url", map[string]string{"MATHTUTOR_ORACLE_URL": "not a url"}},
		{"zero timeout", map[string]string{"MATHTUTOR_ORACLE_TIMEOUT": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoneBackendIgnoresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATHTUTOR_ORACLE_BACKEND", "none")
	t.Setenv("MATHTUTOR_ORACLE_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Oracle.Backend)
}

func TestLLMSettings_Discovery(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load("")
	require.NoError(t, err)

	got := cfg.LLMSettings()
	assert.Equal(t, llm.ProviderGemini, got.Provider)
	assert.Equal(t, "g-key", got.Gemini.APIKey)

	cfg.LLM.Anthropic.APIKey = "sk-configured"
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLMSettings().Provider, "configured key wins")
}
