package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"accountanta/finassist/internal/models"
)

// RecordNotification inserts a pending notification log entry and fills in
// its ID and CreatedAt.
func (s *Store) RecordNotification(ctx context.Context, rec *models.NotificationRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notification_logs
			(user_id, notification_type, delivery_method, content, delivered, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.Type, rec.DeliveryMethod, rec.Content, rec.Delivered, rec.ErrorMessage, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read notification id: %w", err)
	}
	rec.ID = id
	return nil
}

// MarkNotificationDelivered flags a log entry as successfully delivered.
func (s *Store) MarkNotificationDelivered(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE notification_logs SET delivered = 1, delivered_at = ?, error_message = '' WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark notification delivered: %w", err)
	}
	return nil
}

// MarkNotificationFailed records a delivery failure message on a log entry.
func (s *Store) MarkNotificationFailed(ctx context.Context, id int64, message string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE notification_logs SET delivered = 0, error_message = ? WHERE id = ?`,
		message, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}
	return nil
}

// RecentNotificationExists reports whether a notification of the given type
// was logged for the user at or after the given time. Used to deduplicate
// repeat alerts.
func (s *Store) RecentNotificationExists(ctx context.Context, userID, notificationType string, since time.Time) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notification_logs
		 WHERE user_id = ? AND notification_type = ? AND created_at >= ?`,
		userID, notificationType, since).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check recent notifications: %w", err)
	}
	return count > 0, nil
}

// RecentNotificationMatches is RecentNotificationExists narrowed to entries
// whose content contains the given substring, so per-category alerts
// deduplicate independently.
func (s *Store) RecentNotificationMatches(ctx context.Context, userID, notificationType, contains string, since time.Time) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notification_logs
		 WHERE user_id = ? AND notification_type = ? AND created_at >= ? AND content LIKE ?`,
		userID, notificationType, since, "%"+contains+"%").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check recent notifications: %w", err)
	}
	return count > 0, nil
}

// LastNotificationAt returns when a notification of the given type was last
// logged for the user. The bool reports whether any exists.
func (s *Store) LastNotificationAt(ctx context.Context, userID, notificationType string) (time.Time, bool, error) {
	var at time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM notification_logs
		 WHERE user_id = ? AND notification_type = ?
		 ORDER BY created_at DESC LIMIT 1`,
		userID, notificationType).Scan(&at)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to load last notification: %w", err)
	}
	return at, true, nil
}
