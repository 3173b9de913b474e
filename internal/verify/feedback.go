package verify

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

// DefaultStudentName is used when the learner's name is unknown.
const DefaultStudentName = "אלוף"

var (
	correctPhrases = []string{
		"כל הכבוד, %s!",
		"מצוין, %s! תשובה נכונה.",
		"יפה מאוד, %s, ככה ממשיכים!",
		"בדיוק, %s!",
	}
	partialPhrases = []string{
		"כמעט, %s! זה הכיוון הנכון.",
		"חלק מהתשובה נכון, %s. עוד קצת!",
		"התחלה טובה, %s, חסר עוד משהו קטן.",
	}
	incorrectPhrases = []string{
		"לא נורא, %s, ננסה שוב.",
		"טעויות הן חלק מהלמידה, %s.",
		"%s, נבדוק את זה יחד.",
	}
)

// FeedbackGenerator picks a personalized encouragement phrase.
type FeedbackGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFeedbackGenerator creates a generator. A nil src uses the global
// random source.
func NewFeedbackGenerator(src rand.Source) *FeedbackGenerator {
	g := &FeedbackGenerator{}
	if src != nil {
		g.rng = rand.New(src)
	}
	return g
}

// Generate returns a phrase for the given grade.
func (g *FeedbackGenerator) Generate(correct, partial bool, name string) string {
	phrases := incorrectPhrases
	switch {
	case correct:
		phrases = correctPhrases
	case partial:
		phrases = partialPhrases
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultStudentName
	}
	return fmt.Sprintf(phrases[g.intN(len(phrases))], name)
}

func (g *FeedbackGenerator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}
