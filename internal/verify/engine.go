// Package verify grades free-text math answers with local rules, an optional
// remote oracle, and a deterministic fallback.
package verify

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/mathtutor/internal/oracle"
)

const tracerName = "github.com/abhisek/mathtutor/internal/verify"

// Engine runs the grading pipeline. It is safe for concurrent use.
type Engine struct {
	checkers []Checker
	oracle   oracle.Oracle
	feedback *FeedbackGenerator
	logger   *slog.Logger
	tracer   trace.Tracer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCheckers replaces the pre-check chain.
func WithCheckers(checkers ...Checker) EngineOption {
	return func(e *Engine) { e.checkers = checkers }
}

// WithFeedback sets the feedback generator.
func WithFeedback(g *FeedbackGenerator) EngineOption {
	return func(e *Engine) { e.feedback = g }
}

// WithLogger sets the logger used for oracle failures.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine. o may be nil, in which case every answer the
// checkers cannot decide goes straight to the fallback.
func NewEngine(o oracle.Oracle, opts ...EngineOption) *Engine {
	e := &Engine{
		checkers: DefaultCheckers(),
		oracle:   o,
		feedback: NewFeedbackGenerator(nil),
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Verify grades one answer. It never fails: oracle errors are logged and
// replaced by the fallback.
func (e *Engine) Verify(ctx context.Context, in Input) Result {
	ctx, span := e.tracer.Start(ctx, "verify.Verify")
	defer span.End()

	c := NewCandidate(in)
	res := e.grade(ctx, c, span)
	res = e.finish(c, res)

	span.SetAttributes(
		attribute.String("verify.method", string(res.Method)),
		attribute.Bool("verify.correct", res.IsCorrect),
		attribute.Bool("verify.used_ai", res.UsedAI),
	)
	return res
}

func (e *Engine) grade(ctx context.Context, c *Candidate, span trace.Span) Result {
	out, name := RunCheckers(e.checkers, c)
	if r, ok := out.Result(); ok {
		span.SetAttributes(attribute.String("verify.checker", name))
		return r
	}

	escalation, _ := out.Escalation()
	if escalation != "" {
		span.SetAttributes(attribute.String("verify.escalation", string(escalation)))
	}

	if e.oracle == nil {
		e.logger.Debug("no oracle configured, using fallback", "escalation", escalation)
		return SmartFallback(c)
	}

	v, err := e.oracle.Verify(ctx, oracle.Request{
		Question:      c.Question,
		UserAnswer:    c.UserAnswer,
		CorrectAnswer: c.CorrectAnswer,
		StudentName:   c.Context.StudentName,
		Grade:         c.Context.Grade,
		Topic:         c.Context.Topic,
		Subtopic:      c.Context.Subtopic,
	})
	if err == nil && v == nil {
		err = fmt.Errorf("%w: empty verdict", oracle.ErrUnavailable)
	}
	if err != nil {
		span.RecordError(err)
		e.logger.Warn("oracle verification failed, using fallback",
			"oracle", e.oracle.Name(), "escalation", escalation, "error", err)
		return SmartFallback(c)
	}

	return Result{
		IsCorrect:   v.IsCorrect,
		IsPartial:   v.IsPartial,
		Confidence:  v.Confidence,
		Method:      MethodAI,
		Explanation: v.Explanation,
		WhatCorrect: v.WhatCorrect,
		WhatMissing: v.WhatMissing,
		Feedback:    v.Feedback,
		UsedAI:      true,
	}
}

// finish enforces the Result invariants and fills in feedback.
func (e *Engine) finish(c *Candidate, r Result) Result {
	if r.IsCorrect {
		r.IsPartial = false
	}
	r.Confidence = min(max(r.Confidence, 0), 100)
	if r.Feedback == "" {
		r.Feedback = e.feedback.Generate(r.IsCorrect, r.IsPartial, c.Context.StudentName)
	}
	return r
}
