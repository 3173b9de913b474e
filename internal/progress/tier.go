package progress

const (
	// MinTier is the entry tier for every operation.
	MinTier = 1

	// MaxTier is terminal: no promotion happens beyond it.
	MaxTier = 7
)

// Tier describes one difficulty level.
type Tier struct {
	Level           int
	Name            string
	Color           string // color tag, resolved to a concrete color by the UI
	RequiredCorrect int    // correct answers at this tier needed to promote
}

var tiers = [MaxTier]Tier{
	{Level: 1, Name: "מתחיל", Color: "gray", RequiredCorrect: 3},
	{Level: 2, Name: "בסיסי", Color: "green", RequiredCorrect: 4},
	{Level: 3, Name: "בינוני", Color: "teal", RequiredCorrect: 4},
	{Level: 4, Name: "מתקדם", Color: "blue", RequiredCorrect: 5},
	{Level: 5, Name: "מומחה", Color: "purple", RequiredCorrect: 5},
	{Level: 6, Name: "אלוף", Color: "orange", RequiredCorrect: 6},
	{Level: 7, Name: "גאון", Color: "gold", RequiredCorrect: 7},
}

// Tiers returns the full tier table, lowest first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers[:])
	return out
}

// TierByLevel returns the definition for level, clamped into [MinTier, MaxTier].
func TierByLevel(level int) Tier {
	return tiers[clampTier(level)-1]
}

func clampTier(level int) int {
	if level < MinTier {
		return MinTier
	}
	if level > MaxTier {
		return MaxTier
	}
	return level
}
