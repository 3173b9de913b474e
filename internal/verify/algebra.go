package verify

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	expandPattern = regexp.MustCompile(`(?i)פתח\S*\s+(?:את\s+)?(?:ה)?סוגריים|הוצא\S*\s+.*גורם\s+משותף|\bexpand\b|\bfactor\s+out\b`)
	termPattern   = regexp.MustCompile(`[+-]?[^+-]+`)
)

// linear is ax + b.
type linear struct {
	coef     float64
	constant float64
}

// AlgebraicChecker grades expand-brackets and factor-out questions by
// comparing the x-coefficient and constant term of linear answers.
type AlgebraicChecker struct{}

func (a *AlgebraicChecker) Name() string { return "algebraic" }

func (a *AlgebraicChecker) Check(c *Candidate) Outcome {
	if !expandPattern.MatchString(c.Question) {
		return Skip()
	}

	want, ok := parseLinear(c.Correct)
	if !ok {
		return Skip()
	}
	got, ok := parseLinear(c.User)
	if !ok {
		return Skip()
	}

	coefOK := nearlyEqual(got.coef, want.coef)
	constOK := nearlyEqual(got.constant, want.constant)

	switch {
	case coefOK && constOK:
		return Decisive(Result{
			IsCorrect:   true,
			Confidence:  100,
			Method:      MethodAlgebraic,
			Explanation: fmt.Sprintf("נכון! %s", c.CorrectAnswer),
		})
	case coefOK:
		return Decisive(Result{
			IsPartial:   true,
			Confidence:  85,
			Method:      MethodAlgebraicPartial,
			Explanation: fmt.Sprintf("האיבר %s נכון, אבל האיבר החופשי צריך להיות %s.", formatTerm(want.coef), formatNumber(want.constant)),
			WhatCorrect: formatTerm(want.coef),
			WhatMissing: formatNumber(want.constant),
		})
	case constOK:
		return Decisive(Result{
			IsPartial:   true,
			Confidence:  85,
			Method:      MethodAlgebraicPartial,
			Explanation: fmt.Sprintf("האיבר החופשי %s נכון, אבל האיבר עם x צריך להיות %s.", formatNumber(want.constant), formatTerm(want.coef)),
			WhatCorrect: formatNumber(want.constant),
			WhatMissing: formatTerm(want.coef),
		})
	default:
		return Decisive(Result{
			Confidence:  90,
			Method:      MethodAlgebraicWrong,
			Explanation: fmt.Sprintf("התשובה הנכונה היא %s. כפול את הגורם שמחוץ לסוגריים בכל אחד מהאיברים שבתוכם.", c.CorrectAnswer),
			WhatMissing: c.CorrectAnswer,
		})
	}
}

// parseLinear reads "ax+b" (in any term order) from a normalized answer.
// Only the right-hand side of an equation is considered.
func parseLinear(s string) (linear, bool) {
	s = strings.ReplaceAll(compact(s), "*", "")
	if i := strings.LastIndex(s, "="); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return linear{}, false
	}

	terms := termPattern.FindAllString(s, -1)
	if len(strings.Join(terms, "")) != len(s) {
		return linear{}, false
	}

	var l linear
	for _, t := range terms {
		if strings.Contains(t, "x") {
			head, ok := strings.CutSuffix(t, "x")
			if !ok || strings.Contains(head, "x") {
				return linear{}, false
			}
			coef, ok := parseCoefficient(head)
			if !ok {
				return linear{}, false
			}
			l.coef += coef
			continue
		}
		v, err := strconv.ParseFloat(t, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return linear{}, false
		}
		l.constant += v
	}
	return l, true
}

func parseCoefficient(s string) (float64, bool) {
	switch s {
	case "", "+":
		return 1, true
	case "-":
		return -1, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatTerm(coef float64) string {
	switch coef {
	case 1:
		return "x"
	case -1:
		return "-x"
	}
	return formatNumber(coef) + "x"
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
