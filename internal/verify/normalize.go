package verify

import "strings"

var glyphReplacer = strings.NewReplacer(
	"×", "*", "·", "*", "∙", "*", "⋅", "*",
	"÷", "/",
	"−", "-", "–", "-", "—", "-",
)

var plusMinusReplacer = strings.NewReplacer("+/-", "±", "+ -", "±", "+-", "±")

// hebrewOr is the Hebrew "or" connective.
const hebrewOr = "או"

// Normalize canonicalizes an answer for comparison. It is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = glyphReplacer.Replace(s)

	fields := strings.Fields(s)
	for i, f := range fields {
		if f == hebrewOr {
			fields[i] = "or"
		}
	}
	s = strings.Join(fields, " ")

	s = plusMinusReplacer.Replace(s)
	return strings.TrimSpace(s)
}

// compact removes all whitespace.
func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}
