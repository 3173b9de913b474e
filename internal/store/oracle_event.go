package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on SQLite using ent's SQL builder.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendOracleEvent(ctx context.Context, data OracleEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableOracleEvents).
		Columns(
			"request_id",
			"created_at_ms",
			"backend",
			"model",
			"purpose",
			"input_tokens",
			"output_tokens",
			"latency_ms",
			"success",
			"error_message",
			"request_body",
			"response_body",
		).
		Values(
			data.RequestID,
			time.Now().UnixMilli(),
			data.Backend,
			data.Model,
			data.Purpose,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
			data.ResponseBody,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save oracle event: %w", err)
	}
	return nil
}

var oracleEventColumns = []string{
	"id",
	"created_at_ms",
	"request_id",
	"backend",
	"model",
	"purpose",
	"input_tokens",
	"output_tokens",
	"latency_ms",
	"success",
	"error_message",
	"request_body",
	"response_body",
}

func (r *eventRepo) QueryOracleEvents(ctx context.Context, opts QueryOpts) ([]OracleEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(oracleEventColumns...).
		From(entsql.Table(tableOracleEvents)).
		OrderBy(entsql.Desc("id"))

	var preds []*entsql.Predicate
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at_ms", opts.From.UnixMilli()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query oracle events: %w", err)
	}
	defer rows.Close()

	var out []OracleEvent
	for rows.Next() {
		e, err := scanOracleEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate oracle events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetOracleEvent(ctx context.Context, id int) (*OracleEvent, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(oracleEventColumns...).
		From(entsql.Table(tableOracleEvents)).
		Where(entsql.EQ("id", id)).
		Query()

	e, err := scanOracleEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func scanOracleEvent(row interface{ Scan(...any) error }) (*OracleEvent, error) {
	var (
		e         OracleEvent
		createdMs int64
	)
	err := row.Scan(
		&e.ID,
		&createdMs,
		&e.RequestID,
		&e.Backend,
		&e.Model,
		&e.Purpose,
		&e.InputTokens,
		&e.OutputTokens,
		&e.LatencyMs,
		&e.Success,
		&e.ErrorMessage,
		&e.RequestBody,
		&e.ResponseBody,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan oracle event: %w", err)
	}
	e.Timestamp = time.UnixMilli(createdMs)
	return &e, nil
}
