package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPreferenceRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, SetPreference(ctx, db.DB(), "userA", "preferred_currency", "USD"))
	require.NoError(t, SetPreference(ctx, db.DB(), "userA", "risk_tolerance", "moderate"))

	p, err := GetPreference(ctx, db.DB(), "userA", "preferred_currency")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "USD", p.Value)

	// Upsert replaces the value.
	require.NoError(t, SetPreference(ctx, db.DB(), "userA", "preferred_currency", "EUR"))
	p, err = GetPreference(ctx, db.DB(), "userA", "preferred_currency")
	require.NoError(t, err)
	assert.Equal(t, "EUR", p.Value)

	prefs, err := ListPreferences(ctx, db.DB(), "userA")
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "preferred_currency", prefs[0].Key)

	require.NoError(t, DeletePreference(ctx, db.DB(), "userA", "risk_tolerance"))
	p, err = GetPreference(ctx, db.DB(), "userA", "risk_tolerance")
	require.NoError(t, err)
	assert.Nil(t, p)

	// Deleting a missing key is not an error.
	require.NoError(t, DeletePreference(ctx, db.DB(), "userA", "missing"))
}

func TestPreferenceUserIsolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, SetPreference(ctx, db.DB(), "userA", "preferred_currency", "USD"))
	require.NoError(t, SetPreference(ctx, db.DB(), "userB", "preferred_currency", "CHF"))

	p, err := GetPreference(ctx, db.DB(), "userA", "preferred_currency")
	require.NoError(t, err)
	assert.Equal(t, "USD", p.Value)

	prefs, err := ListPreferences(ctx, db.DB(), "userB")
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, "CHF", prefs[0].Value)
}

func TestChatHistoryOrderAndClear(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"first", "second", "third"} {
		require.NoError(t, AppendChatMessage(ctx, db.DB(), &ChatMessage{
			UserKey:   "userA",
			Role:      "user",
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	history, err := GetChatHistory(ctx, db.DB(), "userA")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "third", history[2].Content)

	require.NoError(t, ClearChatHistory(ctx, db.DB(), "userA"))
	history, err = GetChatHistory(ctx, db.DB(), "userA")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPruneChatHistory(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, AppendChatMessage(ctx, db.DB(), &ChatMessage{
		UserKey: "userA", Role: "user", Content: "stale",
		CreatedAt: now.Add(-HistoryTTL - time.Hour),
	}))
	require.NoError(t, AppendChatMessage(ctx, db.DB(), &ChatMessage{
		UserKey: "userA", Role: "user", Content: "fresh",
		CreatedAt: now.Add(-time.Hour),
	}))

	pruned, err := PruneChatHistory(ctx, db.DB(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	history, err := GetChatHistory(ctx, db.DB(), "userA")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "fresh", history[0].Content)
}

func TestRunAndFeedback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	run := &Run{UserKey: "userA", SessionID: "sess-42", Model: "openai/gpt-4o", Metrics: `{"total_tokens":120}`}
	require.NoError(t, CreateRun(ctx, db.DB(), run))
	require.NotEmpty(t, run.RunID)

	got, err := GetRunByID(ctx, db.DB(), run.RunID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"total_tokens":120}`, got.Metrics)
	assert.Equal(t, "sess-42", got.SessionID)

	missing, err := GetRunByID(ctx, db.DB(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	fb := &Feedback{RunID: run.RunID, Score: 0.8, Comment: "helpful"}
	require.NoError(t, CreateFeedback(ctx, db.DB(), fb))
	require.NotEmpty(t, fb.ID)
}
