package llm

import "strings"

// Pricing is the USD price per million tokens of one model.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Estimate returns the USD cost of a call with the given token counts.
func (p Pricing) Estimate(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*p.InputPerMTok + float64(outputTokens)*p.OutputPerMTok) / 1_000_000
}

// LookupPricing returns the price of a recorded model ID. OpenRouter IDs
// such as "openai/gpt-4o-mini" are looked up by their model part.
// ok is false for unknown models.
func LookupPricing(modelID string) (p Pricing, ok bool) {
	if p, ok = pricing[modelID]; ok {
		return p, true
	}
	if _, model, found := strings.Cut(modelID, "/"); found {
		p, ok = pricing[strings.TrimSuffix(model, ":free")]
	}
	return p, ok
}

// Covers the models the providers resolve to, plus their close siblings.
var pricing = map[string]Pricing{
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-haiku-4-5":          {1, 5},
	"claude-3-5-haiku-latest":   {0.8, 4},
	"claude-sonnet-4-20250514":  {3, 15},
	"claude-sonnet-4-5":         {3, 15},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-exp":  {0, 0},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},
}
