package progress

import (
	"slices"
	"strings"
)

// Mastery levels understood by InitializeFromProfile.
const (
	MasteryStruggle  = "struggle"
	MasteryNeedsWork = "needs-work"
	MasteryGood      = "good"
)

// Profile is the learner profile used to seed starting tiers.
type Profile struct {
	TopicMastery map[string]string `json:"topicMastery"`
}

// topicOperations maps topic keywords to the operations they cover.
// Checked in order; the first matching keyword wins.
var topicOperations = []struct {
	keywords   []string
	operations []string
}{
	{[]string{"נגזר", "derivative"}, []string{"calculus_derive"}},
	{[]string{"אינטגר", "integral"}, []string{"calculus_integrate"}},
	{[]string{"משווא", "equation"}, []string{"algebra_solve", "algebra_simplify"}},
	{[]string{"ביטוי", "expression"}, []string{"algebra_simplify", "algebra_factor"}},
}

var defaultTopicOperations = []string{"algebra_simplify"}

// OperationsForTopic returns the operation keys a topic name maps to.
func OperationsForTopic(topic string) []string {
	t := strings.ToLower(topic)
	for _, m := range topicOperations {
		for _, kw := range m.keywords {
			if strings.Contains(t, kw) {
				return slices.Clone(m.operations)
			}
		}
	}
	return slices.Clone(defaultTopicOperations)
}

// TierForMastery returns the starting tier for a mastery label.
func TierForMastery(mastery string) int {
	switch mastery {
	case MasteryStruggle:
		return 1
	case MasteryNeedsWork:
		return 2
	case MasteryGood:
		return 4
	default:
		return 2
	}
}

// InitializeFromProfile seeds starting tiers from a learner profile.
// Already tracked operations are never overwritten. When several topics map
// to the same operation, the lowest tier wins.
func (t *Tracker) InitializeFromProfile(p Profile) []string {
	topics := make([]string, 0, len(p.TopicMastery))
	for topic := range p.TopicMastery {
		topics = append(topics, topic)
	}
	slices.Sort(topics)

	seeds := make(map[string]int)
	for _, topic := range topics {
		tier := TierForMastery(p.TopicMastery[topic])
		for _, key := range OperationsForTopic(topic) {
			if cur, ok := seeds[key]; !ok || tier < cur {
				seeds[key] = tier
			}
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var seeded []string
	for key, tier := range seeds {
		if _, ok := t.ops[key]; ok {
			continue
		}
		op := newOperationProgress(key)
		op.CurrentTier = clampTier(tier)
		t.ops[key] = op
		seeded = append(seeded, key)
	}
	slices.Sort(seeded)
	return seeded
}
