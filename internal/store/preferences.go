package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"accountanta/finassist/internal/models"
)

// GetOrCreatePreferences loads a user's preferences, inserting the defaults
// on first access so every user always has a row.
func (s *Store) GetOrCreatePreferences(ctx context.Context, userID string) (models.UserPreferences, error) {
	prefs, err := s.getPreferences(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if err != sql.ErrNoRows {
		return models.UserPreferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	prefs = models.DefaultPreferences(userID)
	if err := s.UpdatePreferences(ctx, prefs); err != nil {
		return models.UserPreferences{}, err
	}
	return s.getPreferences(ctx, userID)
}

// UpdatePreferences upserts the full preferences row for a user.
func (s *Store) UpdatePreferences(ctx context.Context, prefs models.UserPreferences) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_preferences
			(user_id, daily_summary_enabled, budget_alerts_enabled, spending_reminders_enabled,
			 notification_time, timezone, max_daily_messages, fcm_token, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			daily_summary_enabled = excluded.daily_summary_enabled,
			budget_alerts_enabled = excluded.budget_alerts_enabled,
			spending_reminders_enabled = excluded.spending_reminders_enabled,
			notification_time = excluded.notification_time,
			timezone = excluded.timezone,
			max_daily_messages = excluded.max_daily_messages,
			fcm_token = excluded.fcm_token,
			updated_at = excluded.updated_at`,
		prefs.UserID, prefs.DailySummaryEnabled, prefs.BudgetAlertsEnabled, prefs.SpendingRemindersEnabled,
		prefs.NotificationTime, prefs.Timezone, prefs.MaxDailyMessages, prefs.FCMToken, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	return nil
}

// SetFCMToken stores a device push token without touching the rest of the
// preferences, creating the row with defaults when needed.
func (s *Store) SetFCMToken(ctx context.Context, userID, token string) error {
	prefs, err := s.GetOrCreatePreferences(ctx, userID)
	if err != nil {
		return err
	}
	prefs.FCMToken = token
	return s.UpdatePreferences(ctx, prefs)
}

// UsersWithNotificationsEnabled returns the IDs of users with at least one
// notification category switched on.
func (s *Store) UsersWithNotificationsEnabled(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM user_preferences
		 WHERE daily_summary_enabled = 1 OR budget_alerts_enabled = 1 OR spending_reminders_enabled = 1
		 ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifiable users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) getPreferences(ctx context.Context, userID string) (models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, daily_summary_enabled, budget_alerts_enabled, spending_reminders_enabled,
			notification_time, timezone, max_daily_messages, fcm_token, updated_at
		 FROM user_preferences WHERE user_id = ?`,
		userID).Scan(&prefs.UserID, &prefs.DailySummaryEnabled, &prefs.BudgetAlertsEnabled,
		&prefs.SpendingRemindersEnabled, &prefs.NotificationTime, &prefs.Timezone,
		&prefs.MaxDailyMessages, &prefs.FCMToken, &prefs.UpdatedAt)
	return prefs, err
}
