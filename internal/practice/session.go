package practice

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/mathtutor/internal/progress"
	"github.com/abhisek/mathtutor/internal/verify"
)

// Verifier grades one answer. *verify.Engine implements it.
type Verifier interface {
	Verify(ctx context.Context, in verify.Input) verify.Result
}

// Graded is the outcome of one submitted answer.
type Graded struct {
	Question  Question
	Answer    string
	Result    verify.Result
	Operation string
	Promotion *progress.Promotion // nil unless the tier advanced
	Progress  progress.ProgressInfo
}

// Session ties a verifier, a tracker and a question picker to one operation.
type Session struct {
	verifier  Verifier
	tracker   *progress.Tracker
	picker    *Picker
	operation string
	student   verify.Context
	logger    *slog.Logger
}

// SessionConfig holds the learner details passed to every grade.
type SessionConfig struct {
	Operation   string
	StudentName string
	Grade       string
	Rand        rand.Source // question choice; nil uses the global source
}

// NewSession creates a session over the questions of cfg.Operation.
func NewSession(v Verifier, t *progress.Tracker, bank Bank, cfg SessionConfig) (*Session, error) {
	if cfg.Operation == "" {
		return nil, fmt.Errorf("practice: operation is required")
	}
	qs := bank.ForOperation(cfg.Operation)
	if len(qs) == 0 {
		return nil, fmt.Errorf("practice: no questions for operation %q", cfg.Operation)
	}
	return &Session{
		verifier:  v,
		tracker:   t,
		picker:    NewPicker(qs, cfg.Rand),
		operation: cfg.Operation,
		student:   verify.Context{StudentName: cfg.StudentName, Grade: cfg.Grade},
		logger:    slog.Default(),
	}, nil
}

// Operation returns the operation key being practiced.
func (s *Session) Operation() string { return s.operation }

// Progress returns the current progression view.
func (s *Session) Progress() progress.ProgressInfo {
	return s.tracker.ProgressInfo(s.operation)
}

// NextQuestion picks a question at the adaptive tier of the operation.
func (s *Session) NextQuestion() Question {
	q, _ := s.picker.Next(s.tracker.AdaptiveTier(s.operation))
	return q
}

// Grade verifies answer, records the attempt and persists the operation.
// A persistence failure is returned alongside a complete Graded.
func (s *Session) Grade(ctx context.Context, q Question, answer string) (Graded, error) {
	in := verify.Input{
		UserAnswer:    answer,
		CorrectAnswer: q.Answer,
		Question:      q.Question,
		Context:       s.student,
	}
	in.Context.Subtopic = q.Subtopic
	in.Context.Topic = q.Topic

	res := s.verifier.Verify(ctx, in)
	promo := s.tracker.RecordAttempt(s.operation, res.IsCorrect)
	if promo != nil {
		s.logger.Info("tier promotion", "operation", s.operation, "from", promo.FromTier, "to", promo.ToTier)
	}

	g := Graded{
		Question:  q,
		Answer:    answer,
		Result:    res,
		Operation: s.operation,
		Promotion: promo,
		Progress:  s.tracker.ProgressInfo(s.operation),
	}
	if err := s.tracker.Save(ctx, s.operation); err != nil {
		return g, fmt.Errorf("practice: %w", err)
	}
	return g, nil
}
