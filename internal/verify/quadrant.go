package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	pointPattern   = regexp.MustCompile(`\(\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)`)
	integerPattern = regexp.MustCompile(`-?\d+`)
)

const quadrantSignRule = "זכור: ברביע 1 x>0 ו-y>0, ברביע 2 x<0 ו-y>0, ברביע 3 x<0 ו-y<0, ברביע 4 x>0 ו-y<0."

// QuadrantChecker grades "which quadrant is the point in" questions from the
// point in the question text.
type QuadrantChecker struct{}

func (q *QuadrantChecker) Name() string { return "quadrant" }

func (q *QuadrantChecker) Check(c *Candidate) Outcome {
	if !isQuadrantQuestion(c) {
		return Skip()
	}

	x, y, ok := extractPoint(c.Question)
	if !ok {
		return Skip()
	}
	want := quadrantOf(x, y)
	if want == 0 {
		return Skip()
	}

	m := integerPattern.FindString(c.User)
	if m == "" {
		return Skip()
	}
	got, err := strconv.Atoi(m)
	if err != nil {
		return Skip()
	}

	point := fmt.Sprintf("(%s, %s)", formatNumber(x), formatNumber(y))
	if got == want {
		return Decisive(Result{
			IsCorrect:   true,
			Confidence:  100,
			Method:      MethodQuadrant,
			Explanation: fmt.Sprintf("נכון! הנקודה %s נמצאת ברביע %d.", point, want),
		})
	}
	return Decisive(Result{
		Confidence:  100,
		Method:      MethodQuadrant,
		Explanation: fmt.Sprintf("הנקודה %s נמצאת ברביע %d, לא ברביע %d. %s", point, want, got, quadrantSignRule),
		WhatMissing: fmt.Sprintf("רביע %d", want),
	})
}

func isQuadrantQuestion(c *Candidate) bool {
	sub := strings.ToLower(c.Context.Subtopic)
	if strings.Contains(sub, "coordinate") || strings.Contains(sub, "צירים") {
		return true
	}
	return strings.Contains(c.Question, "רביע")
}

func extractPoint(question string) (x, y float64, ok bool) {
	m := pointPattern.FindStringSubmatch(glyphReplacer.Replace(question))
	if m == nil {
		return 0, 0, false
	}
	x, errX := strconv.ParseFloat(m[1], 64)
	y, errY := strconv.ParseFloat(m[2], 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}

// quadrantOf returns 1-4, or 0 for a point on an axis.
func quadrantOf(x, y float64) int {
	switch {
	case x > 0 && y > 0:
		return 1
	case x < 0 && y > 0:
		return 2
	case x < 0 && y < 0:
		return 3
	case x > 0 && y < 0:
		return 4
	default:
		return 0
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
