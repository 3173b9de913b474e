package verify

// Method identifies which checker produced a Result.
type Method string

const (
	MethodExactMatch       Method = "exact_match"
	MethodQuadrant         Method = "quadrant_check"
	MethodAlgebraic        Method = "algebraic_expansion"
	MethodAlgebraicPartial Method = "algebraic_expansion_partial"
	MethodAlgebraicWrong   Method = "algebraic_expansion_wrong"
	MethodMultipleComplete Method = "multiple_answers_complete"
	MethodMultiplePartial  Method = "multiple_answers_partial"
	MethodSingleOfMultiple Method = "single_answer_of_multiple"
	MethodAI               Method = "ai_verification"
	MethodSmartFallback    Method = "smart_fallback"
	MethodNeedsAI          Method = "needs_ai"
	MethodNeedsAIAlgebraic Method = "needs_ai_algebraic"
)

// Result is the outcome of grading one answer.
type Result struct {
	IsCorrect   bool   `json:"isCorrect"`
	IsPartial   bool   `json:"isPartial"`
	Confidence  int    `json:"confidence"`
	Method      Method `json:"method"`
	Explanation string `json:"explanation"`
	WhatCorrect string `json:"whatCorrect,omitempty"`
	WhatMissing string `json:"whatMissing,omitempty"`
	Feedback    string `json:"feedback"`
	UsedAI      bool   `json:"usedAI"`
}

// Context carries optional information about the learner and the question.
type Context struct {
	Subtopic    string
	StudentName string
	Grade       string
	Topic       string
}

// Input is one answer to grade.
type Input struct {
	UserAnswer    string
	CorrectAnswer string
	Question      string
	Context       Context
}

// Candidate is an Input with both answers normalized.
type Candidate struct {
	Input
	User    string
	Correct string
}

// NewCandidate normalizes the answers of in.
func NewCandidate(in Input) *Candidate {
	return &Candidate{
		Input:   in,
		User:    Normalize(in.UserAnswer),
		Correct: Normalize(in.CorrectAnswer),
	}
}
