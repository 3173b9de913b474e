package progress

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/mathtutor/internal/store"
)

// Promotion records a tier advance for display and logging.
type Promotion struct {
	Key      string `json:"key"`
	FromTier int    `json:"fromTier"`
	ToTier   int    `json:"toTier"`
	TierName string `json:"tierName"`
}

// ProgressInfo is a read-only view of an operation's progression.
type ProgressInfo struct {
	Key             string  `json:"key"`
	CurrentTier     int     `json:"currentTier"`
	TierName        string  `json:"tierName"`
	TierColor       string  `json:"tierColor"`
	CorrectInTier   int     `json:"correctInTier"`
	RequiredForNext int     `json:"requiredForNext"`
	NextTierIn      int     `json:"nextTierIn"`
	TotalCorrect    int     `json:"totalCorrect"`
	TotalAttempts   int     `json:"totalAttempts"`
	Accuracy        float64 `json:"accuracy"` // percent, one decimal
	Streak          int     `json:"streak"`
	IsMaxTier       bool    `json:"isMaxTier"`
}

// Tracker maintains OperationProgress per operation key.
//
// A Tracker is an explicit, per-learner object. Persistence happens only
// through Load, Save and SaveAll; a Tracker without a repo is session-local.
type Tracker struct {
	mu   sync.Mutex
	ops  map[string]*OperationProgress
	repo store.ProgressRepo
	now  func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used for attempt timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates an empty tracker. repo may be nil.
func NewTracker(repo store.ProgressRepo, opts ...Option) *Tracker {
	t := &Tracker{
		ops:  make(map[string]*OperationProgress),
		repo: repo,
		now:  time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Load replaces the in-memory state with every record in the repo.
func (t *Tracker) Load(ctx context.Context) error {
	if t.repo == nil {
		return nil
	}
	records, err := t.repo.All(ctx)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	ops := make(map[string]*OperationProgress, len(records))
	for _, rec := range records {
		ops[rec.OperationKey] = fromRecord(rec)
	}

	t.mu.Lock()
	t.ops = ops
	t.mu.Unlock()
	return nil
}

// Save persists the state of key. An untracked key is deleted from the repo,
// which is how a reset reaches storage.
func (t *Tracker) Save(ctx context.Context, key string) error {
	if t.repo == nil {
		return nil
	}

	t.mu.Lock()
	op, ok := t.ops[key]
	var rec *store.ProgressRecord
	if ok {
		rec = toRecord(op, t.now())
	}
	t.mu.Unlock()

	if !ok {
		if err := t.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		return nil
	}
	if err := t.repo.Put(ctx, rec); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// SaveAll makes the repo mirror the in-memory state.
func (t *Tracker) SaveAll(ctx context.Context) error {
	if t.repo == nil {
		return nil
	}

	t.mu.Lock()
	now := t.now()
	records := make([]*store.ProgressRecord, 0, len(t.ops))
	for _, op := range t.ops {
		records = append(records, toRecord(op, now))
	}
	t.mu.Unlock()

	if err := t.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("save all progress: %w", err)
	}
	for _, rec := range records {
		if err := t.repo.Put(ctx, rec); err != nil {
			return fmt.Errorf("save all progress: %w", err)
		}
	}
	return nil
}

// RecordAttempt updates the operation after one graded answer.
// Returns a Promotion if the attempt advanced the tier, nil otherwise.
func (t *Tracker) RecordAttempt(key string, correct bool) *Promotion {
	t.mu.Lock()
	defer t.mu.Unlock()

	op := t.getOrInit(key)
	now := t.now()
	tierAtAttempt := op.CurrentTier

	op.TotalAttempts++
	op.LastAttempt = now

	var promo *Promotion
	if correct {
		op.TotalCorrect++
		op.Streak++
		op.CorrectInTier++

		required := TierByLevel(op.CurrentTier).RequiredCorrect
		if op.CorrectInTier >= required {
			if op.CurrentTier < MaxTier {
				op.CurrentTier++
				op.CorrectInTier = 0
				promo = &Promotion{
					Key:      key,
					FromTier: tierAtAttempt,
					ToTier:   op.CurrentTier,
					TierName: TierByLevel(op.CurrentTier).Name,
				}
			} else {
				op.CorrectInTier = required - 1
			}
		}
	} else {
		op.Streak = 0
		if op.CorrectInTier > 0 {
			op.CorrectInTier--
		}
	}

	op.recordHistory(Attempt{IsCorrect: correct, Timestamp: now, Tier: tierAtAttempt})
	return promo
}

// CurrentTier returns the stored tier for key, initializing it if absent.
func (t *Tracker) CurrentTier(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.getOrInit(key).CurrentTier
}

// Operation returns a copy of the full state for key, initializing it if absent.
func (t *Tracker) Operation(key string) OperationProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.getOrInit(key).clone()
}

// ProgressInfo returns the derived view for key, initializing it if absent.
func (t *Tracker) ProgressInfo(key string) ProgressInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return progressInfo(t.getOrInit(key))
}

// AllProgress returns the view of every tracked key, sorted by key.
func (t *Tracker) AllProgress() []ProgressInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	keys := make([]string, 0, len(t.ops))
	for k := range t.ops {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]ProgressInfo, 0, len(keys))
	for _, k := range keys {
		out = append(out, progressInfo(t.ops[k]))
	}
	return out
}

// Tracked reports whether key has state.
func (t *Tracker) Tracked(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ops[key]
	return ok
}

// ResetOperation discards the state of key.
func (t *Tracker) ResetOperation(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ops, key)
}

// ResetAll discards the state of every key.
func (t *Tracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.ops)
}

func (t *Tracker) getOrInit(key string) *OperationProgress {
	if op, ok := t.ops[key]; ok {
		return op
	}
	op := newOperationProgress(key)
	t.ops[key] = op
	return op
}

func progressInfo(op *OperationProgress) ProgressInfo {
	tier := TierByLevel(op.CurrentTier)
	info := ProgressInfo{
		Key:             op.Key,
		CurrentTier:     op.CurrentTier,
		TierName:        tier.Name,
		TierColor:       tier.Color,
		CorrectInTier:   op.CorrectInTier,
		RequiredForNext: tier.RequiredCorrect,
		TotalCorrect:    op.TotalCorrect,
		TotalAttempts:   op.TotalAttempts,
		Accuracy:        math.Round(op.Accuracy()*1000) / 10,
		Streak:          op.Streak,
		IsMaxTier:       op.IsMaxTier(),
	}
	if !info.IsMaxTier {
		info.NextTierIn = max(0, tier.RequiredCorrect-op.CorrectInTier)
	}
	return info
}

func fromRecord(rec *store.ProgressRecord) *OperationProgress {
	op := &OperationProgress{
		Key:           rec.OperationKey,
		CurrentTier:   clampTier(rec.CurrentTier),
		CorrectInTier: max(0, rec.CorrectInTier),
		TotalAttempts: max(0, rec.TotalAttempts),
		TotalCorrect:  max(0, rec.TotalCorrect),
		Streak:        max(0, rec.Streak),
		LastAttempt:   rec.LastAttempt,
	}
	if required := TierByLevel(op.CurrentTier).RequiredCorrect; op.CorrectInTier >= required {
		op.CorrectInTier = required - 1
	}
	for _, a := range rec.History {
		op.recordHistory(Attempt{IsCorrect: a.IsCorrect, Timestamp: a.Timestamp, Tier: a.Tier})
	}
	return op
}

func toRecord(op *OperationProgress, now time.Time) *store.ProgressRecord {
	history := make([]store.AttemptData, len(op.History))
	for i, a := range op.History {
		history[i] = store.AttemptData{IsCorrect: a.IsCorrect, Timestamp: a.Timestamp, Tier: a.Tier}
	}
	return &store.ProgressRecord{
		OperationKey:  op.Key,
		CurrentTier:   op.CurrentTier,
		CorrectInTier: op.CorrectInTier,
		TotalAttempts: op.TotalAttempts,
		TotalCorrect:  op.TotalCorrect,
		Streak:        op.Streak,
		History:       history,
		LastAttempt:   op.LastAttempt,
		UpdatedAt:     now,
	}
}
