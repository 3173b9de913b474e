package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MATHTUTOR_ORACLE_URL.
const EnvPrefix = "MATHTUTOR"

var defaults = map[string]any{
	"db":                      "",
	"log_level":               "info",
	"student.name":            "",
	"student.grade":           "",
	"oracle.backend":          "http",
	"oracle.url":              "http://localhost:3000/api/verify-answer",
	"oracle.timeout":          "10s",
	"llm.provider":            "anthropic",
	"llm.anthropic.api_key":   "",
	"llm.anthropic.model":     "claude-haiku",
	"llm.anthropic.base_url":  "",
	"llm.openai.api_key":      "",
	"llm.openai.model":        "gpt-4o-mini",
	"llm.openai.base_url":     "",
	"llm.gemini.api_key":      "",
	"llm.gemini.model":        "gemini-flash",
	"llm.openrouter.api_key":  "",
	"llm.openrouter.model":    "google/gemini-2.0-flash-exp",
	"llm.openrouter.base_url": "",
}

// Load reads configuration. path names an optional YAML, TOML or JSON file;
// environment variables take precedence over it, and defaults fill the rest.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// Every key has a default, so AutomaticEnv covers all of them.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and reports every failing key.
func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
