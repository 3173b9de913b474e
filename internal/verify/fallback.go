package verify

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	numericTolerance  = 0.01
	fractionTolerance = 1e-3
)

var fractionPattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)/(-?\d+(?:\.\d+)?)$`)

// SmartFallback grades without the oracle. It is used when the oracle is
// missing or fails.
func SmartFallback(c *Candidate) Result {
	for _, ch := range []Checker{&QuadrantChecker{}, &AlgebraicChecker{}} {
		if r, ok := ch.Check(c).Result(); ok {
			return r
		}
	}

	if c.User != "" && c.User == c.Correct {
		return Result{
			IsCorrect:   true,
			Confidence:  100,
			Method:      MethodSmartFallback,
			Explanation: "התשובה נכונה.",
		}
	}

	if u, ok := parseNumber(c.User); ok {
		if want, ok := parseNumber(c.Correct); ok && math.Abs(u-want) < numericTolerance {
			return Result{
				IsCorrect:   true,
				Confidence:  95,
				Method:      MethodSmartFallback,
				Explanation: fmt.Sprintf("התשובה נכונה (%s).", c.CorrectAnswer),
			}
		}
	}

	if isQuadratic(c) {
		parts, ok := splitParts(c.Correct)
		user, userOK := splitParts(c.User)
		if ok && userOK && len(parts) > 1 {
			for _, u := range user {
				if matchesAny(u, parts) {
					return Result{
						IsPartial:   true,
						Confidence:  75,
						Method:      MethodSmartFallback,
						Explanation: fmt.Sprintf("למשוואה ריבועית יש שני פתרונות. התשובה המלאה: %s", c.CorrectAnswer),
						WhatCorrect: u,
						WhatMissing: strings.Join(unmatched(parts, []string{u}), ", "),
					}
				}
			}
		}
	}

	if u, ok := parseFraction(c.User); ok {
		if want, ok := parseFraction(c.Correct); ok && math.Abs(u-want) < fractionTolerance {
			return Result{
				IsCorrect:   true,
				Confidence:  95,
				Method:      MethodSmartFallback,
				Explanation: fmt.Sprintf("השבר שקול ל-%s.", c.CorrectAnswer),
			}
		}
	}

	return Result{
		Confidence:  80,
		Method:      MethodSmartFallback,
		Explanation: fmt.Sprintf("התשובה הנכונה היא: %s", c.CorrectAnswer),
		WhatMissing: c.CorrectAnswer,
	}
}

func isQuadratic(c *Candidate) bool {
	q := strings.ToLower(c.Question)
	if strings.Contains(q, "x²") || strings.Contains(q, "x^2") {
		return true
	}
	return strings.Contains(strings.ToLower(c.Context.Subtopic), "quadratic")
}

func parseNumber(s string) (float64, bool) {
	s = compact(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseFraction(s string) (float64, bool) {
	m := fractionPattern.FindStringSubmatch(compact(s))
	if m == nil {
		return 0, false
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseFloat(m[2], 64)
	if err != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}
