package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveTurnRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	turn := &models.Turn{
		UserID:            "user-1",
		ConversationID:    "conv-1",
		UserMessage:       "How much did I spend?",
		AssistantResponse: "You spent $120.",
		ToolsUsed:         []string{"get_spending_summary"},
		ToolResults: []models.ToolResult{
			{Function: "get_spending_summary", Result: map[string]interface{}{"total_spending": 120.0}},
		},
		TokenCount: 55,
	}
	require.NoError(t, s.SaveTurn(ctx, turn))
	assert.NotZero(t, turn.ID)
	assert.False(t, turn.CreatedAt.IsZero())

	turns, err := s.ConversationContext(ctx, "conv-1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 1)

	got := turns[0]
	assert.Equal(t, turn.ID, got.ID)
	assert.Equal(t, "How much did I spend?", got.UserMessage)
	assert.Equal(t, "You spent $120.", got.AssistantResponse)
	assert.Equal(t, []string{"get_spending_summary"}, got.ToolsUsed)
	require.Len(t, got.ToolResults, 1)
	assert.Equal(t, "get_spending_summary", got.ToolResults[0].Function)
	assert.Equal(t, 55, got.TokenCount)
}

func TestConversationContextLimitAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		require.NoError(t, s.SaveTurn(ctx, &models.Turn{
			UserID:            "user-1",
			ConversationID:    "conv-1",
			UserMessage:       fmt.Sprintf("message %d", i),
			AssistantResponse: fmt.Sprintf("answer %d", i),
			CreatedAt:         base.Add(time.Duration(i) * time.Minute),
		}))
	}

	turns, err := s.ConversationContext(ctx, "conv-1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 10)

	// Most recent 10, oldest first.
	assert.Equal(t, "message 5", turns[0].UserMessage)
	assert.Equal(t, "message 14", turns[9].UserMessage)
}

func TestConversationMessagesOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTurn(ctx, &models.Turn{
		UserID: "alice", ConversationID: "conv-1",
		UserMessage: "hi", AssistantResponse: "hello",
	}))

	turns, err := s.ConversationMessages(ctx, "alice", "conv-1")
	require.NoError(t, err)
	assert.Len(t, turns, 1)

	turns, err = s.ConversationMessages(ctx, "mallory", "conv-1")
	require.NoError(t, err)
	assert.Empty(t, turns, "another user's conversation must look missing")
}

func TestListConversations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	seed := []struct {
		conv string
		msg  string
		at   time.Time
	}{
		{"conv-a", "oldest a", base},
		{"conv-a", "newest a", base.Add(2 * time.Hour)},
		{"conv-b", "only b", base.Add(1 * time.Hour)},
	}
	for _, row := range seed {
		require.NoError(t, s.SaveTurn(ctx, &models.Turn{
			UserID: "user-1", ConversationID: row.conv,
			UserMessage: row.msg, AssistantResponse: "ok",
			CreatedAt: row.at,
		}))
	}

	summaries, err := s.ListConversations(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "conv-a", summaries[0].ConversationID, "most recently active first")
	assert.Equal(t, 2, summaries[0].MessageCount)
	assert.Equal(t, "newest a", summaries[0].LastMessage)
	assert.Equal(t, "conv-b", summaries[1].ConversationID)
}

func TestCountMessagesSince(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{
		now.Add(-30 * time.Hour), // yesterday
		now.Add(-2 * time.Hour),
		now.Add(-1 * time.Hour),
	} {
		require.NoError(t, s.SaveTurn(ctx, &models.Turn{
			UserID: "user-1", ConversationID: "conv-1",
			UserMessage: "m", AssistantResponse: "a", CreatedAt: at,
		}))
	}

	count, err := s.CountMessagesSince(ctx, "user-1", now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPreferencesDefaultsAndUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	prefs, err := s.GetOrCreatePreferences(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, prefs.DailySummaryEnabled)
	assert.Equal(t, "18:00", prefs.NotificationTime)
	assert.Equal(t, "UTC", prefs.Timezone)
	assert.Equal(t, 50, prefs.MaxDailyMessages)

	prefs.DailySummaryEnabled = false
	prefs.NotificationTime = "08:00"
	require.NoError(t, s.UpdatePreferences(ctx, prefs))

	got, err := s.GetOrCreatePreferences(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, got.DailySummaryEnabled)
	assert.Equal(t, "08:00", got.NotificationTime)
}

func TestSetFCMTokenKeepsOtherPreferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	prefs, err := s.GetOrCreatePreferences(ctx, "user-1")
	require.NoError(t, err)
	prefs.MaxDailyMessages = 5
	require.NoError(t, s.UpdatePreferences(ctx, prefs))

	require.NoError(t, s.SetFCMToken(ctx, "user-1", "device-token"))

	got, err := s.GetOrCreatePreferences(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "device-token", got.FCMToken)
	assert.Equal(t, 5, got.MaxDailyMessages)
}

func TestUsersWithNotificationsEnabled(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetOrCreatePreferences(ctx, "alice")
	require.NoError(t, err)

	muted := models.DefaultPreferences("bob")
	muted.DailySummaryEnabled = false
	muted.BudgetAlertsEnabled = false
	muted.SpendingRemindersEnabled = false
	require.NoError(t, s.UpdatePreferences(ctx, muted))

	ids, err := s.UsersWithNotificationsEnabled(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, ids)
}

func TestNotificationLogLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &models.NotificationRecord{
		UserID:         "user-1",
		Type:           models.NotificationBudgetAlert,
		DeliveryMethod: "push",
		Content:        "Budget Alert: Dining at 85%",
	}
	require.NoError(t, s.RecordNotification(ctx, rec))
	require.NotZero(t, rec.ID)

	require.NoError(t, s.MarkNotificationDelivered(ctx, rec.ID))

	exists, err := s.RecentNotificationExists(ctx, "user-1", models.NotificationBudgetAlert,
		rec.CreatedAt.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.RecentNotificationExists(ctx, "user-1", models.NotificationDailySummary,
		rec.CreatedAt.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, exists, "types deduplicate independently")

	matches, err := s.RecentNotificationMatches(ctx, "user-1", models.NotificationBudgetAlert,
		"Dining", rec.CreatedAt.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, matches)

	matches, err = s.RecentNotificationMatches(ctx, "user-1", models.NotificationBudgetAlert,
		"Transport", rec.CreatedAt.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, matches, "categories deduplicate independently")
}

func TestMarkNotificationFailed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &models.NotificationRecord{UserID: "user-1", Type: models.NotificationDailySummary}
	require.NoError(t, s.RecordNotification(ctx, rec))
	require.NoError(t, s.MarkNotificationFailed(ctx, rec.ID, "token expired"))

	at, exists, err := s.LastNotificationAt(ctx, "user-1", models.NotificationDailySummary)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.False(t, at.IsZero())
}

func TestLastNotificationAtMissing(t *testing.T) {
	s := newTestStore(t)

	_, exists, err := s.LastNotificationAt(context.Background(), "user-1", models.NotificationDailySummary)
	require.NoError(t, err)
	assert.False(t, exists)
}
