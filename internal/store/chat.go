package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"accountanta/finassist/internal/models"
)

// ConversationSummary is one row in a user's conversation list.
type ConversationSummary struct {
	ConversationID string    `json:"conversation_id"`
	LastMessage    string    `json:"last_message"`
	MessageCount   int       `json:"message_count"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SaveTurn inserts a completed turn and fills in its ID and CreatedAt.
func (s *Store) SaveTurn(ctx context.Context, turn *models.Turn) error {
	toolsUsed, err := json.Marshal(turn.ToolsUsed)
	if err != nil {
		return fmt.Errorf("failed to encode tools used: %w", err)
	}
	toolResults, err := json.Marshal(turn.ToolResults)
	if err != nil {
		return fmt.Errorf("failed to encode tool results: %w", err)
	}

	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages
			(user_id, conversation_id, user_message, assistant_response, tools_used, tool_results, token_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		turn.UserID, turn.ConversationID, turn.UserMessage, turn.AssistantResponse,
		string(toolsUsed), string(toolResults), turn.TokenCount, turn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read turn id: %w", err)
	}
	turn.ID = id
	return nil
}

// ConversationContext returns the most recent turns of a conversation in
// chronological order, capped at limit.
func (s *Store) ConversationContext(ctx context.Context, conversationID string, limit int) ([]models.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, conversation_id, user_message, assistant_response, tools_used, tool_results, token_count, created_at
		 FROM chat_messages
		 WHERE conversation_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation context: %w", err)
	}
	defer rows.Close()

	turns, err := scanTurns(rows)
	if err != nil {
		return nil, err
	}

	// Query returned newest first; callers need oldest first.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// ConversationMessages returns all turns of a conversation owned by the given
// user, oldest first. A conversation belonging to another user comes back
// empty, indistinguishable from one that does not exist.
func (s *Store) ConversationMessages(ctx context.Context, userID, conversationID string) ([]models.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, conversation_id, user_message, assistant_response, tools_used, tool_results, token_count, created_at
		 FROM chat_messages
		 WHERE user_id = ? AND conversation_id = ?
		 ORDER BY created_at ASC, id ASC`,
		userID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation messages: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// ListConversations returns a user's conversations, most recently active
// first, each summarized by its latest message.
func (s *Store) ListConversations(ctx context.Context, userID string) ([]ConversationSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id, COUNT(*)
		 FROM chat_messages
		 WHERE user_id = ?
		 GROUP BY conversation_id
		 ORDER BY MAX(created_at) DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var summaries []ConversationSummary
	for rows.Next() {
		var sum ConversationSummary
		if err := rows.Scan(&sum.ConversationID, &sum.MessageCount); err != nil {
			return nil, fmt.Errorf("failed to scan conversation summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range summaries {
		err := s.db.QueryRowContext(ctx,
			`SELECT user_message, created_at FROM chat_messages
			 WHERE user_id = ? AND conversation_id = ?
			 ORDER BY created_at DESC, id DESC LIMIT 1`,
			userID, summaries[i].ConversationID).
			Scan(&summaries[i].LastMessage, &summaries[i].UpdatedAt)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to load last message: %w", err)
		}
	}
	return summaries, nil
}

// CountMessagesSince counts a user's turns created at or after the given
// time. Used for the daily message rate limit.
func (s *Store) CountMessagesSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE user_id = ? AND created_at >= ?`,
		userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

func scanTurns(rows *sql.Rows) ([]models.Turn, error) {
	var turns []models.Turn
	for rows.Next() {
		var (
			turn        models.Turn
			toolsUsed   string
			toolResults string
		)
		err := rows.Scan(&turn.ID, &turn.UserID, &turn.ConversationID, &turn.UserMessage,
			&turn.AssistantResponse, &toolsUsed, &toolResults, &turn.TokenCount, &turn.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		if err := json.Unmarshal([]byte(toolsUsed), &turn.ToolsUsed); err != nil {
			turn.ToolsUsed = nil
		}
		if err := json.Unmarshal([]byte(toolResults), &turn.ToolResults); err != nil {
			turn.ToolResults = nil
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}
