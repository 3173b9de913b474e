package progress

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/mathtutor/internal/store"
)

func fixedClock() func() time.Time {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		ts = ts.Add(time.Second)
		return ts
	}
}

func newTestTracker() *Tracker {
	return NewTracker(nil, WithClock(fixedClock()))
}

func TestRecordAttempt_PromotesAfterThreeCorrect(t *testing.T) {
	tr := newTestTracker()

	for i := 0; i < 2; i++ {
		if p := tr.RecordAttempt("algebra_solve", true); p != nil {
			t.Fatalf("attempt %d: unexpected promotion %+v", i+1, p)
		}
	}
	p := tr.RecordAttempt("algebra_solve", true)
	if p == nil {
		t.Fatal("expected promotion on third correct answer")
	}
	if p.FromTier != 1 || p.ToTier != 2 {
		t.Errorf("promotion = %d->%d, want 1->2", p.FromTier, p.ToTier)
	}
	if p.TierName != "בסיסי" {
		t.Errorf("TierName = %q, want בסיסי", p.TierName)
	}

	op := tr.Operation("algebra_solve")
	if op.CurrentTier != 2 {
		t.Errorf("CurrentTier = %d, want 2", op.CurrentTier)
	}
	if op.CorrectInTier != 0 {
		t.Errorf("CorrectInTier = %d, want 0", op.CorrectInTier)
	}
	if op.Streak != 3 {
		t.Errorf("Streak = %d, want 3", op.Streak)
	}
}

func TestRecordAttempt_IncorrectResetsStreak(t *testing.T) {
	tr := newTestTracker()
	tr.RecordAttempt("k", true)
	tr.RecordAttempt("k", true)
	tr.RecordAttempt("k", false)

	op := tr.Operation("k")
	if op.Streak != 0 {
		t.Errorf("Streak = %d, want 0", op.Streak)
	}
	if op.CorrectInTier != 1 {
		t.Errorf("CorrectInTier = %d, want 1", op.CorrectInTier)
	}
	if op.TotalAttempts != 3 || op.TotalCorrect != 2 {
		t.Errorf("totals = %d/%d, want 2/3", op.TotalCorrect, op.TotalAttempts)
	}
}

func TestRecordAttempt_CorrectInTierFloorsAtZero(t *testing.T) {
	tr := newTestTracker()
	tr.RecordAttempt("k", false)
	tr.RecordAttempt("k", false)

	if got := tr.Operation("k").CorrectInTier; got != 0 {
		t.Errorf("CorrectInTier = %d, want 0", got)
	}
	if got := tr.CurrentTier("k"); got != 1 {
		t.Errorf("CurrentTier = %d, want 1", got)
	}
}

func TestRecordAttempt_HistoryBounded(t *testing.T) {
	tr := newTestTracker()
	for i := 0; i < 25; i++ {
		tr.RecordAttempt("k", i%2 == 0)
	}

	op := tr.Operation("k")
	if len(op.History) != HistorySize {
		t.Fatalf("len(History) = %d, want %d", len(op.History), HistorySize)
	}
	if op.TotalAttempts != 25 {
		t.Errorf("TotalAttempts = %d, want 25", op.TotalAttempts)
	}
	// Attempt 6 (index 5) is the oldest survivor; it was incorrect.
	if op.History[0].IsCorrect {
		t.Error("oldest surviving entry should be attempt 6 (incorrect)")
	}
	if !op.History[0].Timestamp.Before(op.History[HistorySize-1].Timestamp) {
		t.Error("history should be ordered oldest first")
	}
}

func TestRecordAttempt_HistoryRecordsTierAtAttempt(t *testing.T) {
	tr := newTestTracker()
	for i := 0; i < 4; i++ {
		tr.RecordAttempt("k", true)
	}
	h := tr.Operation("k").History
	if h[2].Tier != 1 {
		t.Errorf("promoting attempt tier = %d, want 1", h[2].Tier)
	}
	if h[3].Tier != 2 {
		t.Errorf("post-promotion attempt tier = %d, want 2", h[3].Tier)
	}
}

func TestRecordAttempt_TerminalTier(t *testing.T) {
	tr := newTestTracker()
	promotions := 0
	for i := 0; i < 200; i++ {
		if tr.RecordAttempt("k", true) != nil {
			promotions++
		}
		op := tr.Operation("k")
		if op.CorrectInTier >= TierByLevel(op.CurrentTier).RequiredCorrect {
			t.Fatalf("invariant broken at attempt %d: %d >= %d",
				i+1, op.CorrectInTier, TierByLevel(op.CurrentTier).RequiredCorrect)
		}
	}
	if promotions != MaxTier-MinTier {
		t.Errorf("promotions = %d, want %d", promotions, MaxTier-MinTier)
	}

	info := tr.ProgressInfo("k")
	if !info.IsMaxTier || info.CurrentTier != MaxTier {
		t.Errorf("expected terminal tier, got %+v", info)
	}
	if info.NextTierIn != 0 {
		t.Errorf("NextTierIn = %d, want 0 at terminal tier", info.NextTierIn)
	}
}

func TestRecordAttempt_TierNeverDecreases(t *testing.T) {
	tr := newTestTracker()
	for i := 0; i < 3; i++ {
		tr.RecordAttempt("k", true)
	}
	for i := 0; i < 10; i++ {
		tr.RecordAttempt("k", false)
	}
	if got := tr.CurrentTier("k"); got != 2 {
		t.Errorf("CurrentTier = %d, want 2", got)
	}
}

func TestProgressInfo(t *testing.T) {
	tr := newTestTracker()

	info := tr.ProgressInfo("fresh")
	if info.Accuracy != 0 || info.TotalAttempts != 0 {
		t.Errorf("fresh info = %+v", info)
	}
	if info.TierName != "מתחיל" || info.TierColor != "gray" {
		t.Errorf("fresh tier = %q/%q", info.TierName, info.TierColor)
	}
	if info.NextTierIn != 3 || info.RequiredForNext != 3 {
		t.Errorf("NextTierIn = %d, RequiredForNext = %d", info.NextTierIn, info.RequiredForNext)
	}

	tr.RecordAttempt("k", true)
	tr.RecordAttempt("k", false)
	tr.RecordAttempt("k", false)
	info = tr.ProgressInfo("k")
	if info.Accuracy != 33.3 {
		t.Errorf("Accuracy = %v, want 33.3", info.Accuracy)
	}
	if info.Key != "k" {
		t.Errorf("Key = %q, want k", info.Key)
	}
}

func TestAllProgress_SortedByKey(t *testing.T) {
	tr := newTestTracker()
	tr.RecordAttempt("calculus_derive", true)
	tr.RecordAttempt("algebra_solve", true)

	all := tr.AllProgress()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].Key != "algebra_solve" || all[1].Key != "calculus_derive" {
		t.Errorf("order = %s, %s", all[0].Key, all[1].Key)
	}
}

func TestReset(t *testing.T) {
	tr := newTestTracker()
	for i := 0; i < 3; i++ {
		tr.RecordAttempt("a", true)
		tr.RecordAttempt("b", true)
	}

	tr.ResetOperation("a")
	if tr.Tracked("a") {
		t.Error("a should be untracked after reset")
	}
	if got := tr.CurrentTier("a"); got != 1 {
		t.Errorf("CurrentTier(a) = %d, want 1", got)
	}
	if got := tr.CurrentTier("b"); got != 2 {
		t.Errorf("CurrentTier(b) = %d, want 2", got)
	}

	tr.ResetAll()
	if got := len(tr.AllProgress()); got != 0 {
		t.Errorf("AllProgress after ResetAll = %d entries", got)
	}
	if got := tr.CurrentTier("b"); got != 1 {
		t.Errorf("CurrentTier(b) = %d, want 1", got)
	}
}

func TestOperation_ReturnsCopy(t *testing.T) {
	tr := newTestTracker()
	tr.RecordAttempt("k", true)

	op := tr.Operation("k")
	op.History[0].IsCorrect = false
	op.CurrentTier = 5

	again := tr.Operation("k")
	if !again.History[0].IsCorrect || again.CurrentTier != 1 {
		t.Error("mutating the returned copy leaked into the tracker")
	}
}

func TestPersistence_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryProgressRepo()

	tr := NewTracker(repo, WithClock(fixedClock()))
	for i := 0; i < 4; i++ {
		tr.RecordAttempt("algebra_solve", true)
	}
	if err := tr.Save(ctx, "algebra_solve"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewTracker(repo)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	op := reloaded.Operation("algebra_solve")
	if op.CurrentTier != 2 || op.CorrectInTier != 1 || op.TotalCorrect != 4 {
		t.Errorf("reloaded = %+v", op)
	}
	if len(op.History) != 4 {
		t.Errorf("len(History) = %d, want 4", len(op.History))
	}
}

func TestPersistence_SaveUntrackedDeletes(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryProgressRepo()
	tr := NewTracker(repo)

	tr.RecordAttempt("k", true)
	if err := tr.Save(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	tr.ResetOperation("k")
	if err := tr.Save(ctx, "k"); err != nil {
		t.Fatal(err)
	}

	rec, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Errorf("record should be deleted, got %+v", rec)
	}
}

func TestPersistence_SaveAllMirrors(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryProgressRepo()
	_ = repo.Put(ctx, &store.ProgressRecord{OperationKey: "stale", CurrentTier: 3})

	tr := NewTracker(repo)
	tr.RecordAttempt("a", true)
	tr.RecordAttempt("b", false)
	if err := tr.SaveAll(ctx); err != nil {
		t.Fatal(err)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].OperationKey != "a" || all[1].OperationKey != "b" {
		t.Errorf("repo contents = %+v", all)
	}
}

func TestPersistence_LoadSanitizes(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryProgressRepo()
	_ = repo.Put(ctx, &store.ProgressRecord{OperationKey: "k", CurrentTier: 12, CorrectInTier: 40})

	tr := NewTracker(repo)
	if err := tr.Load(ctx); err != nil {
		t.Fatal(err)
	}
	op := tr.Operation("k")
	if op.CurrentTier != MaxTier {
		t.Errorf("CurrentTier = %d, want %d", op.CurrentTier, MaxTier)
	}
	if op.CorrectInTier != TierByLevel(MaxTier).RequiredCorrect-1 {
		t.Errorf("CorrectInTier = %d", op.CorrectInTier)
	}
}

func TestNilRepoIsSessionLocal(t *testing.T) {
	tr := NewTracker(nil)
	tr.RecordAttempt("k", true)
	ctx := context.Background()
	if err := tr.Save(ctx, "k"); err != nil {
		t.Errorf("Save: %v", err)
	}
	if err := tr.SaveAll(ctx); err != nil {
		t.Errorf("SaveAll: %v", err)
	}
	if err := tr.Load(ctx); err != nil {
		t.Errorf("Load: %v", err)
	}
	if !tr.Tracked("k") {
		t.Error("Load with nil repo should keep state")
	}
}
