package progress

import "time"

// HistorySize is the number of most recent attempts kept per operation.
const HistorySize = 20

// Attempt is one entry of an operation's history.
type Attempt struct {
	IsCorrect bool
	Timestamp time.Time
	Tier      int
}

// OperationProgress holds the progression state of a single operation key.
type OperationProgress struct {
	Key           string
	CurrentTier   int
	CorrectInTier int
	TotalAttempts int
	TotalCorrect  int
	Streak        int
	History       []Attempt
	LastAttempt   time.Time
}

func newOperationProgress(key string) *OperationProgress {
	return &OperationProgress{
		Key:         key,
		CurrentTier: MinTier,
	}
}

// Accuracy returns the lifetime accuracy ratio (0.0-1.0).
func (op *OperationProgress) Accuracy() float64 {
	if op.TotalAttempts == 0 {
		return 0.0
	}
	return float64(op.TotalCorrect) / float64(op.TotalAttempts)
}

// RecentAccuracy returns the accuracy over the last n history entries.
// The second return value is the number of entries considered.
func (op *OperationProgress) RecentAccuracy(n int) (float64, int) {
	h := op.History
	if n > 0 && len(h) > n {
		h = h[len(h)-n:]
	}
	if len(h) == 0 {
		return 0.0, 0
	}
	correct := 0
	for _, a := range h {
		if a.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(h)), len(h)
}

// IsMaxTier reports whether the operation sits on the terminal tier.
func (op *OperationProgress) IsMaxTier() bool {
	return op.CurrentTier >= MaxTier
}

// recordHistory appends an attempt, evicting the oldest beyond HistorySize.
func (op *OperationProgress) recordHistory(a Attempt) {
	op.History = append(op.History, a)
	if len(op.History) > HistorySize {
		op.History = op.History[len(op.History)-HistorySize:]
	}
}

func (op *OperationProgress) clone() OperationProgress {
	c := *op
	c.History = append([]Attempt(nil), op.History...)
	return c
}
