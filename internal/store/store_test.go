package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.ProgressRepo().Put(context.Background(), &ProgressRecord{OperationKey: "algebra_solve", CurrentTier: 3}))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	rec, err := s2.ProgressRepo().Get(context.Background(), "algebra_solve")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 3, rec.CurrentTier)
}

func TestOpen_InMemorySharesOneDatabase(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 1, s.DB().Stats().MaxOpenConnections)

	ctx := context.Background()
	repo := s.ProgressRepo()
	var wg sync.WaitGroup
	for _, k := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Put(ctx, &ProgressRecord{OperationKey: k, CurrentTier: 2}))
		}()
	}
	wg.Wait()

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	var fk int
	require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestIsMemoryDSN(t *testing.T) {
	assert.True(t, isMemoryDSN(":memory:"))
	assert.True(t, isMemoryDSN("file::memory:?cache=shared"))
	assert.True(t, isMemoryDSN("file:test.db?mode=memory"))
	assert.False(t, isMemoryDSN(filepath.Join(t.TempDir(), "x.db")))
}

func testProgressRepos(t *testing.T) map[string]ProgressRepo {
	return map[string]ProgressRepo{
		"sqlite": openTestStore(t).ProgressRepo(),
		"memory": NewMemoryProgressRepo(),
	}
}

func TestProgressRepo_PutGet(t *testing.T) {
	for name, repo := range testProgressRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ts := time.UnixMilli(time.Now().UnixMilli())

			got, err := repo.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, got)

			rec := &ProgressRecord{
				OperationKey:  "algebra_solve",
				CurrentTier:   2,
				CorrectInTier: 1,
				TotalAttempts: 5,
				TotalCorrect:  4,
				Streak:        2,
				History: []AttemptData{
					{IsCorrect: true, Timestamp: ts, Tier: 1},
					{IsCorrect: false, Timestamp: ts, Tier: 2},
				},
				LastAttempt: ts,
			}
			require.NoError(t, repo.Put(ctx, rec))

			got, err = repo.Get(ctx, "algebra_solve")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, 2, got.CurrentTier)
			assert.Equal(t, 1, got.CorrectInTier)
			assert.Equal(t, 5, got.TotalAttempts)
			assert.Equal(t, 4, got.TotalCorrect)
			assert.Equal(t, 2, got.Streak)
			require.Len(t, got.History, 2)
			assert.True(t, got.History[0].IsCorrect)
			assert.Equal(t, 2, got.History[1].Tier)
			assert.True(t, got.LastAttempt.Equal(ts))
		})
	}
}

func TestProgressRepo_PutReplaces(t *testing.T) {
	for name, repo := range testProgressRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.Put(ctx, &ProgressRecord{OperationKey: "k", CurrentTier: 1}))
			require.NoError(t, repo.Put(ctx, &ProgressRecord{OperationKey: "k", CurrentTier: 4}))

			all, err := repo.All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, 4, all[0].CurrentTier)
		})
	}
}

func TestProgressRepo_DeleteAndAll(t *testing.T) {
	for name, repo := range testProgressRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, k := range []string{"b", "a", "c"} {
				require.NoError(t, repo.Put(ctx, &ProgressRecord{OperationKey: k, CurrentTier: 1}))
			}

			all, err := repo.All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "a", all[0].OperationKey)
			assert.Equal(t, "c", all[2].OperationKey)

			require.NoError(t, repo.Delete(ctx, "b"))
			require.NoError(t, repo.Delete(ctx, "never-stored"))
			all, err = repo.All(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2)

			require.NoError(t, repo.DeleteAll(ctx))
			all, err = repo.All(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendOracleEvent(ctx, OracleEventData{
		RequestID: "r1", Backend: "http", Purpose: "answer-verify", Success: true, LatencyMs: 120,
	}))
	require.NoError(t, repo.AppendOracleEvent(ctx, OracleEventData{
		RequestID: "r2", Backend: "anthropic", Model: "claude-haiku", Purpose: "answer-verify",
		Success: false, ErrorMessage: "boom",
	}))
	require.NoError(t, repo.AppendOracleEvent(ctx, OracleEventData{
		RequestID: "r3", Backend: "mock", Purpose: "other", Success: true,
	}))

	events, err := repo.QueryOracleEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "r3", events[0].RequestID, "newest first")

	events, err = repo.QueryOracleEvents(ctx, QueryOpts{Purpose: "answer-verify", Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "r2", events[0].RequestID)
	assert.False(t, events[0].Success)
	assert.Equal(t, "boom", events[0].ErrorMessage)

	got, err := repo.GetOracleEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "r2", got.RequestID)
	assert.Equal(t, "claude-haiku", got.Model)

	missing, err := repo.GetOracleEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryProgressRepo_CopiesRecords(t *testing.T) {
	repo := NewMemoryProgressRepo()
	ctx := context.Background()
	rec := &ProgressRecord{OperationKey: "k", History: []AttemptData{{IsCorrect: true}}}
	require.NoError(t, repo.Put(ctx, rec))

	rec.History[0].IsCorrect = false
	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, got.History[0].IsCorrect)
}
