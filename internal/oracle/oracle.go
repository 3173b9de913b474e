// Package oracle grades answers the local checkers could not decide, by
// asking a remote AI service.
package oracle

import (
	"context"
	"errors"
	"fmt"
)

// PurposeAnswerVerify labels oracle calls in the event log.
const PurposeAnswerVerify = "answer-verify"

// ErrUnavailable wraps every oracle failure: transport errors, non-2xx
// responses, reported failures and malformed payloads.
var ErrUnavailable = errors.New("oracle unavailable")

// Request is what the oracle is asked to grade.
type Request struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	StudentName   string `json:"studentName"`
	Grade         string `json:"grade"`
	Topic         string `json:"topic"`
	Subtopic      string `json:"subtopic"`
}

// Verdict is the oracle's grade.
type Verdict struct {
	IsCorrect   bool   `json:"isCorrect"`
	IsPartial   bool   `json:"isPartial"`
	Confidence  int    `json:"confidence"`
	Feedback    string `json:"feedback"`
	Explanation string `json:"explanation"`
	WhatCorrect string `json:"whatCorrect,omitempty"`
	WhatMissing string `json:"whatMissing,omitempty"`
}

// Oracle grades a single answer. Implementations make exactly one attempt.
type Oracle interface {
	Verify(ctx context.Context, req Request) (*Verdict, error)

	// Name identifies the backend in logs and events.
	Name() string
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func clampConfidence(c float64) int {
	switch {
	case c < 0:
		return 0
	case c > 100:
		return 100
	}
	return int(c + 0.5)
}
