// Package config loads mathtutor settings from an optional config file and
// MATHTUTOR_* environment variables.
package config

import (
	"time"

	"github.com/abhisek/mathtutor/internal/llm"
	"github.com/abhisek/mathtutor/internal/oracle"
)

// Config holds all application configuration.
type Config struct {
	// DB is the SQLite path. Empty means store.DefaultDBPath.
	DB       string        `mapstructure:"db"`
	LogLevel string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Student  StudentConfig `mapstructure:"student"`
	Oracle   OracleConfig  `mapstructure:"oracle"`
	LLM      llm.Config    `mapstructure:"llm"`
}

// StudentConfig personalizes feedback.
type StudentConfig struct {
	Name  string `mapstructure:"name"`
	Grade string `mapstructure:"grade"`
}

// OracleConfig selects the external grader.
type OracleConfig struct {
	Backend string        `mapstructure:"backend" validate:"required,oneof=http llm none"`
	URL     string        `mapstructure:"url" validate:"required_if=Backend http,omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// OracleSettings converts the loaded values into an oracle.Config. When the
// selected LLM provider has no key, the vendor env vars are probed.
func (c *Config) OracleSettings() oracle.Config {
	return oracle.Config{
		Backend: c.Oracle.Backend,
		URL:     c.Oracle.URL,
		Timeout: c.Oracle.Timeout,
		LLM:     c.LLMSettings(),
	}
}

// LLMSettings returns the LLM provider config, falling back to
// llm.DiscoverConfig when no key is configured.
func (c *Config) LLMSettings() llm.Config {
	if c.LLM.HasKey() {
		return c.LLM
	}
	if found, ok := llm.DiscoverConfig(); ok {
		return found
	}
	return c.LLM
}
