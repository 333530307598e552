package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

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

func TestKVRoundTrip(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "userData")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Put(ctx, "userData", []byte(`{"nuid":"1"}`)))
	got, err := kv.Get(ctx, "userData")
	require.NoError(t, err)
	assert.JSONEq(t, `{"nuid":"1"}`, string(got))

	require.NoError(t, kv.Put(ctx, "userData", []byte(`{"nuid":"2"}`)))
	got, err = kv.Get(ctx, "userData")
	require.NoError(t, err)
	assert.JSONEq(t, `{"nuid":"2"}`, string(got))

	require.NoError(t, kv.Delete(ctx, "userData"))
	_, err = kv.Get(ctx, "userData")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, kv.Delete(ctx, "userData"))
}

func TestAPIRequestEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.AppendAPIRequest(ctx, APIRequestEventData{
			RequestID: fmt.Sprintf("req-%d", i),
			Method:    "GET",
			Path:      "/progress/001",
			Status:    200,
			LatencyMs: int64(10 * i),
			Success:   i%2 == 0,
		})
		require.NoError(t, err)
	}

	all, err := repo.QueryAPIRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "req-4", all[0].RequestID, "newest first")
	assert.True(t, all[0].Success)
	assert.False(t, all[1].Success)
	assert.False(t, all[0].Timestamp.IsZero())

	limited, err := repo.QueryAPIRequests(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	after, err := repo.QueryAPIRequests(ctx, QueryOpts{After: all[2].ID})
	require.NoError(t, err)
	assert.Len(t, after, 2)
}
