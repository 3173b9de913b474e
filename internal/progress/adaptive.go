package progress

const (
	adaptiveMinAttempts = 5
	adaptiveWindow      = 10

	struggleAccuracy = 0.4
	excelAccuracy    = 0.8
)

// AdaptiveTier suggests the tier to serve the next question from.
//
// The suggestion is advisory and never mutates state. Struggling learners
// stay on their tier; stored tiers are never lowered here.
func (t *Tracker) AdaptiveTier(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	op := t.getOrInit(key)
	if op.TotalAttempts < adaptiveMinAttempts {
		return op.CurrentTier
	}

	acc, n := op.RecentAccuracy(adaptiveWindow)
	if n == 0 {
		return op.CurrentTier
	}

	switch {
	case acc < struggleAccuracy && op.CurrentTier > MinTier:
		return op.CurrentTier
	case acc > excelAccuracy && op.CorrectInTier >= 2 && op.CurrentTier < MaxTier:
		return op.CurrentTier + 1
	default:
		return op.CurrentTier
	}
}
