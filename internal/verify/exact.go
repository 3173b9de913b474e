package verify

// ExactChecker accepts answers equal after normalization.
// An empty answer is decisively wrong.
type ExactChecker struct{}

func (e *ExactChecker) Name() string { return "exact" }

func (e *ExactChecker) Check(c *Candidate) Outcome {
	if c.User == "" {
		return Decisive(Result{
			Confidence:  100,
			Method:      MethodExactMatch,
			Explanation: "לא התקבלה תשובה.",
		})
	}
	if c.User == c.Correct {
		return Decisive(Result{
			IsCorrect:   true,
			Confidence:  100,
			Method:      MethodExactMatch,
			Explanation: "התשובה נכונה.",
		})
	}
	return Skip()
}
