package oracle

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathtutor/internal/store"
)

// LoggingOracle is a decorator that records every call as an oracle event.
type LoggingOracle struct {
	inner     Oracle
	eventRepo store.EventRepo
}

// WithLogging wraps an Oracle with event logging. A nil repo disables it.
func WithLogging(o Oracle, repo store.EventRepo) Oracle {
	if repo == nil {
		return o
	}
	return &LoggingOracle{inner: o, eventRepo: repo}
}

func (l *LoggingOracle) Verify(ctx context.Context, req Request) (*Verdict, error) {
	start := time.Now()

	v, err := l.inner.Verify(ctx, req)

	data := store.OracleEventData{
		RequestID: uuid.NewString(),
		Backend:   l.inner.Name(),
		Purpose:   PurposeAnswerVerify,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if m, ok := l.inner.(interface{ ModelID() string }); ok {
		data.Model = m.ModelID()
	}
	if b, mErr := json.Marshal(req); mErr == nil {
		data.RequestBody = string(b)
	}
	if v != nil {
		if b, mErr := json.Marshal(v); mErr == nil {
			data.ResponseBody = string(b)
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A failed audit write never fails the call.
	if logErr := l.eventRepo.AppendOracleEvent(context.WithoutCancel(ctx), data); logErr != nil {
		slog.Warn("failed to record oracle event", "request_id", data.RequestID, "error", logErr)
	}

	return v, err
}

func (l *LoggingOracle) Name() string {
	return l.inner.Name()
}
