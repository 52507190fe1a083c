// Package notify implements the scheduled notification jobs: daily spending
// summaries, budget alerts, and inactivity reminders. Every attempt is
// recorded in the notification log so jobs can deduplicate across runs.
package notify

import (
	"context"

	"accountanta/finassist/internal/logging"
)

// Sender delivers one notification to a user's device.
type Sender interface {
	Send(ctx context.Context, userID, token, title, body string) error
}

// LogSender writes notifications to the application log instead of a push
// backend. Used when no delivery credentials are configured, and in tests.
type LogSender struct {
	log logging.Logger
}

// NewLogSender returns a Sender that only logs.
func NewLogSender(logger logging.Logger) *LogSender {
	return &LogSender{log: logger}
}

// Send logs the notification and reports success.
func (s *LogSender) Send(_ context.Context, userID, _, title, body string) error {
	s.log.WithFields(
		logging.Field{Key: logging.FieldUserID, Value: userID},
		logging.Field{Key: logging.FieldNotification, Value: title},
	).Info(body)
	return nil
}
