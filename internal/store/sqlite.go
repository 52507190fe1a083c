// Package store persists conversation history, user preferences, and the
// notification log in a local SQLite database. The schema is applied on open
// so a fresh database file is immediately usable.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"accountanta/finassist/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	conversation_id TEXT NOT NULL,
	user_message TEXT NOT NULL,
	assistant_response TEXT NOT NULL,
	tools_used TEXT NOT NULL DEFAULT '[]',
	tool_results TEXT NOT NULL DEFAULT '[]',
	token_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_conversation ON chat_messages(conversation_id, created_at);
CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages(user_id, created_at);

CREATE TABLE IF NOT EXISTS user_preferences (
	user_id TEXT PRIMARY KEY,
	daily_summary_enabled INTEGER NOT NULL DEFAULT 1,
	budget_alerts_enabled INTEGER NOT NULL DEFAULT 1,
	spending_reminders_enabled INTEGER NOT NULL DEFAULT 1,
	notification_time TEXT NOT NULL DEFAULT '18:00',
	timezone TEXT NOT NULL DEFAULT 'UTC',
	max_daily_messages INTEGER NOT NULL DEFAULT 50,
	fcm_token TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS notification_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	notification_type TEXT NOT NULL,
	delivery_method TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	delivered INTEGER NOT NULL DEFAULT 0,
	delivered_at TIMESTAMP,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notification_logs_user ON notification_logs(user_id, notification_type, created_at);
`

// Store wraps the SQLite handle. All methods are safe for concurrent use;
// SQLite serializes writers internally.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral database in tests.
func Open(path string, logger logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// A single connection avoids table-lock contention between writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.WithField("path", path).Debug("Opened database")
	return &Store{db: db, log: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
