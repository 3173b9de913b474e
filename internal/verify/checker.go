package verify

type outcomeKind int

const (
	outcomeSkip outcomeKind = iota
	outcomeDecisive
	outcomeEscalate
)

// Outcome is what a Checker concludes: a decisive Result, an escalation to
// the oracle, or nothing.
type Outcome struct {
	kind   outcomeKind
	result Result
	method Method
}

// Decisive ends the chain with r.
func Decisive(r Result) Outcome { return Outcome{kind: outcomeDecisive, result: r} }

// Escalate ends the chain and asks for the oracle, tagged with method.
func Escalate(method Method) Outcome { return Outcome{kind: outcomeEscalate, method: method} }

// Skip means the checker does not apply.
func Skip() Outcome { return Outcome{} }

// Result returns the decisive result, if any.
func (o Outcome) Result() (Result, bool) {
	return o.result, o.kind == outcomeDecisive
}

// Escalation returns the escalation tag, if any.
func (o Outcome) Escalation() (Method, bool) {
	return o.method, o.kind == outcomeEscalate
}

// Applies reports whether the outcome ends the chain.
func (o Outcome) Applies() bool { return o.kind != outcomeSkip }

// Checker is a local grading rule.
type Checker interface {
	Name() string
	Check(c *Candidate) Outcome
}

// DefaultCheckers returns the pre-check chain in priority order.
// Structural checks run before plain comparison so that, for example, a
// quadrant question is graded by the point in the question, not the key.
func DefaultCheckers() []Checker {
	return []Checker{
		&QuadrantChecker{},
		&AlgebraicChecker{},
		&ExactChecker{},
		&MultipleAnswerChecker{},
		&EscalationChecker{},
	}
}

// RunCheckers executes checkers in order and returns the first applicable
// outcome with the name of the checker that produced it.
func RunCheckers(checkers []Checker, c *Candidate) (Outcome, string) {
	for _, ch := range checkers {
		if out := ch.Check(c); out.Applies() {
			return out, ch.Name()
		}
	}
	return Skip(), ""
}
