package progress

import "testing"

func TestAdaptiveTier(t *testing.T) {
	t.Run("few attempts returns current", func(t *testing.T) {
		tr := newTestTracker()
		for i := 0; i < 4; i++ {
			tr.RecordAttempt("k", true)
		}
		if got := tr.AdaptiveTier("k"); got != 2 {
			t.Errorf("AdaptiveTier = %d, want 2", got)
		}
	})

	t.Run("excelling suggests next tier", func(t *testing.T) {
		tr := newTestTracker()
		// 3 correct promote to tier 2, 2 more leave CorrectInTier at 2.
		for i := 0; i < 5; i++ {
			tr.RecordAttempt("k", true)
		}
		if got := tr.AdaptiveTier("k"); got != 3 {
			t.Errorf("AdaptiveTier = %d, want 3", got)
		}
		if got := tr.CurrentTier("k"); got != 2 {
			t.Errorf("AdaptiveTier mutated tier: %d", got)
		}
	})

	t.Run("excelling without enough in-tier progress stays", func(t *testing.T) {
		tr := newTestTracker()
		// 7 correct lands on tier 3 with CorrectInTier 0.
		for i := 0; i < 7; i++ {
			tr.RecordAttempt("k", true)
		}
		if got := tr.AdaptiveTier("k"); got != 3 {
			t.Errorf("AdaptiveTier = %d, want 3", got)
		}
	})

	t.Run("struggling stays on current tier", func(t *testing.T) {
		tr := newTestTracker()
		for i := 0; i < 3; i++ {
			tr.RecordAttempt("k", true)
		}
		for i := 0; i < 10; i++ {
			tr.RecordAttempt("k", false)
		}
		if got := tr.AdaptiveTier("k"); got != 2 {
			t.Errorf("AdaptiveTier = %d, want 2", got)
		}
	})

	t.Run("middling accuracy returns current", func(t *testing.T) {
		tr := newTestTracker()
		for i := 0; i < 10; i++ {
			tr.RecordAttempt("k", i%2 == 0)
		}
		if got := tr.AdaptiveTier("k"); got != tr.CurrentTier("k") {
			t.Errorf("AdaptiveTier = %d, want current %d", got, tr.CurrentTier("k"))
		}
	})
}
