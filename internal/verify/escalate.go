package verify

import "strings"

// EscalationChecker always applies: it hands the answer to the oracle,
// tagged by whether the answer looks algebraic.
type EscalationChecker struct{}

func (e *EscalationChecker) Name() string { return "escalate" }

func (e *EscalationChecker) Check(c *Candidate) Outcome {
	if strings.ContainsAny(c.User, "x()") {
		return Escalate(MethodNeedsAIAlgebraic)
	}
	return Escalate(MethodNeedsAI)
}
