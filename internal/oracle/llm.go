package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"
	"time"

	"github.com/abhisek/mathtutor/internal/llm"
)

// LLMConfig holds generation settings for the LLM oracle.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultLLMConfig returns sensible defaults.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:   512,
		Temperature: 0.0,
		Timeout:     20 * time.Second,
	}
}

// LLMOracle grades answers with an llm.Provider and structured output.
type LLMOracle struct {
	provider llm.Provider
	cfg      LLMConfig
}

// NewLLMOracle creates an LLM-backed oracle.
func NewLLMOracle(provider llm.Provider, cfg LLMConfig) *LLMOracle {
	return &LLMOracle{provider: provider, cfg: cfg}
}

func (o *LLMOracle) Name() string { return "llm" }

// ModelID returns the model of the underlying provider.
func (o *LLMOracle) ModelID() string { return o.provider.ModelID() }

type verdictOutput struct {
	IsCorrect   bool    `json:"isCorrect"`
	IsPartial   bool    `json:"isPartial"`
	Confidence  float64 `json:"confidence"`
	Feedback    string  `json:"feedback"`
	Explanation string  `json:"explanation"`
	WhatCorrect string  `json:"whatCorrect"`
	WhatMissing string  `json:"whatMissing"`
}

func (o *LLMOracle) Verify(ctx context.Context, req Request) (*Verdict, error) {
	ctx = llm.WithPurpose(ctx, PurposeAnswerVerify)
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	userMsg, err := buildVerifyMessage(req)
	if err != nil {
		return nil, unavailable(fmt.Errorf("build verify prompt: %w", err))
	}

	resp, err := o.provider.Generate(ctx, llm.Request{
		System: verifySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      VerdictSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	})
	if err != nil {
		return nil, unavailable(fmt.Errorf("generate: %w", err))
	}

	var out verdictOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, unavailable(fmt.Errorf("parse verdict: %w", err))
	}

	return &Verdict{
		IsCorrect:   out.IsCorrect,
		IsPartial:   out.IsPartial && !out.IsCorrect,
		Confidence:  clampConfidence(out.Confidence),
		Feedback:    out.Feedback,
		Explanation: out.Explanation,
		WhatCorrect: out.WhatCorrect,
		WhatMissing: out.WhatMissing,
	}, nil
}

const verifySystemPrompt = `You are a patient math teacher grading a high-school student's answer. The student writes in Hebrew.

Instructions:
- Decide whether the student's answer is mathematically equivalent to the correct answer. Accept any equivalent form (reordered terms, equivalent fractions, decimals within rounding).
- Mark isPartial when the answer is on the right track but incomplete, for example one of two solutions. isPartial must be false when isCorrect is true.
- Write feedback and explanation in Hebrew. Address the student by name. Keep each to one or two sentences.
- Never reveal the correct answer in feedback; the explanation may state it.`

var verifyUserTemplate = template.Must(template.New("verify").Parse(`Student: {{if .StudentName}}{{.StudentName}}{{else}}unknown{{end}}{{if .Grade}} (grade {{.Grade}}){{end}}
{{- if .Topic}}
Topic: {{.Topic}}{{end}}
{{- if .Subtopic}}
Subtopic: {{.Subtopic}}{{end}}
Question: {{.Question}}
Correct answer: {{.CorrectAnswer}}
Student's answer: {{.UserAnswer}}`))

func buildVerifyMessage(req Request) (string, error) {
	var buf bytes.Buffer
	if err := verifyUserTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
