package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match (empty = any)
	From    time.Time // created_at >= From
}

// AttemptData is one persisted history entry of an operation.
type AttemptData struct {
	IsCorrect bool      `json:"isCorrect"`
	Timestamp time.Time `json:"timestamp"`
	Tier      int       `json:"tier"`
}

// ProgressRecord is the persisted form of one operation's progression state.
// The progress package owns the semantics; this is the storage shape.
type ProgressRecord struct {
	OperationKey  string
	CurrentTier   int
	CorrectInTier int
	TotalAttempts int
	TotalCorrect  int
	Streak        int
	History       []AttemptData
	LastAttempt   time.Time
	UpdatedAt     time.Time
}

// ProgressRepo is the keyed get/set boundary for progression state.
type ProgressRepo interface {
	// Get returns the record for key, or nil if none is stored.
	Get(ctx context.Context, key string) (*ProgressRecord, error)

	// Put inserts or replaces the record for rec.OperationKey.
	Put(ctx context.Context, rec *ProgressRecord) error

	// Delete removes the record for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteAll removes every record.
	DeleteAll(ctx context.Context) error

	// All returns every stored record ordered by key.
	All(ctx context.Context) ([]*ProgressRecord, error)
}

// OracleEventData captures a single oracle or LLM request.
type OracleEventData struct {
	RequestID    string
	Backend      string // "http", "anthropic", "openai", "gemini", "mock", ...
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// OracleEvent is a stored OracleEventData with its id and timestamp.
type OracleEvent struct {
	ID        int
	Timestamp time.Time
	OracleEventData
}

// EventRepo provides append and query access to oracle events.
type EventRepo interface {
	// AppendOracleEvent records an oracle call.
	AppendOracleEvent(ctx context.Context, data OracleEventData) error

	// QueryOracleEvents returns events newest first.
	QueryOracleEvents(ctx context.Context, opts QueryOpts) ([]OracleEvent, error)

	// GetOracleEvent returns the event with id, or nil if there is none.
	GetOracleEvent(ctx context.Context, id int) (*OracleEvent, error)
}
