package verify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxAnswerParts bounds the parts compared on either side. Longer lists
// are not graded as multiple answers.
const maxAnswerParts = 8

var (
	orPattern       = regexp.MustCompile(`\bor\b`)
	partSeparator   = regexp.MustCompile(`\s*(?:\bor\b|,|;)\s*`)
	leadingPlusSign = regexp.MustCompile(`(^|=)(\s*)\+`)
)

// MultipleAnswerChecker grades answers with several solutions, such as
// "x = 2 or x = -3" or "x = ±3".
type MultipleAnswerChecker struct{}

func (m *MultipleAnswerChecker) Name() string { return "multiple" }

func (m *MultipleAnswerChecker) Check(c *Candidate) Outcome {
	if !hasMultipleAnswers(c.Correct) {
		return Skip()
	}
	correct, ok := splitParts(c.Correct)
	if !ok || len(correct) <= 1 {
		return Skip()
	}
	user, ok := splitParts(c.User)
	if !ok || len(user) == 0 {
		return Skip()
	}

	if len(user) == 1 {
		if !matchesAny(user[0], correct) {
			return Skip()
		}
		return Decisive(Result{
			IsPartial:   true,
			Confidence:  90,
			Method:      MethodSingleOfMultiple,
			Explanation: fmt.Sprintf("מצאת פתרון אחד מתוך כמה. התשובה המלאה: %s", c.CorrectAnswer),
			WhatCorrect: user[0],
			WhatMissing: strings.Join(unmatched(correct, user), ", "),
		})
	}

	for _, u := range user {
		if !matchesAny(u, correct) {
			return Skip()
		}
	}
	missing := unmatched(correct, user)
	if len(missing) == 0 {
		return Decisive(Result{
			IsCorrect:   true,
			Confidence:  100,
			Method:      MethodMultipleComplete,
			Explanation: "מצאת את כל הפתרונות.",
		})
	}
	return Decisive(Result{
		IsPartial:   true,
		Confidence:  90,
		Method:      MethodMultiplePartial,
		Explanation: fmt.Sprintf("חסר פתרון: %s", strings.Join(missing, ", ")),
		WhatCorrect: strings.Join(user, ", "),
		WhatMissing: strings.Join(missing, ", "),
	})
}

func hasMultipleAnswers(s string) bool {
	return strings.Contains(s, "±") || orPattern.MatchString(s)
}

// splitParts splits a normalized answer on "or", "," and ";" and expands
// a single "±" in a part into its "+" and "-" variants. Parts with more
// than one "±" stay literal. ok is false beyond maxAnswerParts.
func splitParts(s string) (parts []string, ok bool) {
	for _, p := range partSeparator.Split(s, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, expandPlusMinus(p)...)
		if len(parts) > maxAnswerParts {
			return nil, false
		}
	}
	return parts, true
}

func expandPlusMinus(p string) []string {
	if strings.Count(p, "±") != 1 {
		return []string{p}
	}
	plus := leadingPlusSign.ReplaceAllString(strings.Replace(p, "±", "+", 1), "$1$2")
	minus := strings.Replace(p, "±", "-", 1)
	return []string{plus, minus}
}

func matchesAny(part string, candidates []string) bool {
	for _, c := range candidates {
		if partsMatch(part, c) {
			return true
		}
	}
	return false
}

func unmatched(want, got []string) []string {
	var out []string
	for _, w := range want {
		if !matchesAny(w, got) {
			out = append(out, w)
		}
	}
	return out
}

// partsMatch compares two answer parts ignoring whitespace. One part may
// contain the other as a whole term, so "2" matches "x=2" but not "x=-2".
// The contained part must carry a value: "x" alone matches no solution.
func partsMatch(a, b string) bool {
	a, b = compact(a), compact(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return (hasDigit(b) && containsTerm(a, b)) || (hasDigit(a) && containsTerm(b, a))
}

func hasDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func containsTerm(hay, needle string) bool {
	for start := 0; start < len(hay); {
		i := strings.Index(hay[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(needle)
		if termBoundaryBefore(hay[:i]) && termBoundaryAfter(hay[end:]) {
			return true
		}
		_, size := utf8.DecodeRuneInString(hay[i:])
		start = i + size
	}
	return false
}

func termBoundaryBefore(s string) bool {
	if s == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return !isTermRune(r) && !strings.ContainsRune("+-", r)
}

func termBoundaryAfter(s string) bool {
	if s == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s)
	return !isTermRune(r)
}

func isTermRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(".^/", r)
}
