package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider lets the LLM oracle grade answers through any model
// OpenRouter hosts, such as "google/gemini-2.0-flash-exp". It reuses the
// OpenAI adapter, since OpenRouter speaks the chat completions protocol.
// Events record the OpenRouter model ID, which LookupPricing understands.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates the provider from the llm.openrouter config
// keys. An empty BaseURL selects the public OpenRouter endpoint.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
