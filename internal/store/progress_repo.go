package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var progressSelectColumns = []string{
	"operation_key",
	"current_tier",
	"correct_in_tier",
	"total_attempts",
	"total_correct",
	"streak",
	"history",
	"last_attempt_ms",
	"updated_at_ms",
}

// progressRepo implements ProgressRepo on SQLite using ent's SQL builder.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Get(ctx context.Context, key string) (*ProgressRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(progressSelectColumns...).
		From(entsql.Table(tableProgress)).
		Where(entsql.EQ("operation_key", key)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query progress %q: %w", key, err)
		}
		return nil, nil
	}
	rec, err := scanProgress(rows)
	if err != nil {
		return nil, fmt.Errorf("scan progress %q: %w", key, err)
	}
	return rec, nil
}

func (r *progressRepo) Put(ctx context.Context, rec *ProgressRecord) error {
	history := rec.History
	if history == nil {
		history = []AttemptData{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableProgress).
		Columns(progressSelectColumns...).
		Values(
			rec.OperationKey,
			rec.CurrentTier,
			rec.CorrectInTier,
			rec.TotalAttempts,
			rec.TotalCorrect,
			rec.Streak,
			string(historyJSON),
			toMillis(rec.LastAttempt),
			toMillis(updatedAt),
		).
		OnConflict(
			entsql.ConflictColumns("operation_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress %q: %w", rec.OperationKey, err)
	}
	return nil
}

func (r *progressRepo) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(tableProgress).
		Where(entsql.EQ("operation_key", key)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete progress %q: %w", key, err)
	}
	return nil
}

func (r *progressRepo) DeleteAll(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(tableProgress).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete all progress: %w", err)
	}
	return nil
}

func (r *progressRepo) All(ctx context.Context) ([]*ProgressRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(progressSelectColumns...).
		From(entsql.Table(tableProgress)).
		OrderBy(entsql.Asc("operation_key")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query all progress: %w", err)
	}
	defer rows.Close()

	var out []*ProgressRecord
	for rows.Next() {
		rec, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

func scanProgress(rows *sql.Rows) (*ProgressRecord, error) {
	var (
		rec         ProgressRecord
		historyJSON string
		lastMs      int64
		updatedMs   int64
	)
	if err := rows.Scan(
		&rec.OperationKey,
		&rec.CurrentTier,
		&rec.CorrectInTier,
		&rec.TotalAttempts,
		&rec.TotalCorrect,
		&rec.Streak,
		&historyJSON,
		&lastMs,
		&updatedMs,
	); err != nil {
		return nil, err
	}
	if historyJSON != "" {
		if err := json.Unmarshal([]byte(historyJSON), &rec.History); err != nil {
			return nil, fmt.Errorf("unmarshal history: %w", err)
		}
	}
	rec.LastAttempt = fromMillis(lastMs)
	rec.UpdatedAt = fromMillis(updatedMs)
	return &rec, nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
