// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Message roles exchanged with the language model. Order of messages in a
// transcript is significant and is never reordered.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleFunction  = "function"
)

// Message is a single entry in a conversation transcript.
type Message struct {
	Role         string `json:"role"`
	Content      string `json:"content"`
	FunctionName string `json:"function_name,omitempty"`
}

// ToolCall is a structured request from the language model to invoke a named
// analytics operation with arguments.
type ToolCall struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ToolResult is produced for every ToolCall, never omitted. On failure the
// Result payload carries an "error" key instead of data.
type ToolResult struct {
	Function string      `json:"function"`
	Result   interface{} `json:"result"`
}

// Turn is one user message plus the assistant's final response, together with
// any tool activity that produced it. Constructed once per orchestration run
// and never mutated after persistence.
type Turn struct {
	ID                int64        `json:"id,omitempty"`
	UserID            string       `json:"user_id"`
	ConversationID    string       `json:"conversation_id"`
	UserMessage       string       `json:"user_message"`
	AssistantResponse string       `json:"assistant_response"`
	ToolsUsed         []string     `json:"tools_used"`
	ToolResults       []ToolResult `json:"tool_results"`
	TokenCount        int          `json:"token_count"`
	CreatedAt         time.Time    `json:"created_at,omitempty"`
}

// Transaction is a single financial record from the user's records provider.
type Transaction struct {
	ID       string          `json:"id,omitempty"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Merchant string          `json:"merchant"`
}

// Budget is a per-category monthly spending limit.
type Budget struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

// Debt is an outstanding obligation with its payment schedule.
type Debt struct {
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	InterestRate   float64         `json:"interest_rate"`
	DueDate        string          `json:"due_date"`
}

// SavingsGoal is a savings target with current progress.
type SavingsGoal struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline"`
}

// UserPreferences controls notification delivery and chat rate limiting for
// one user.
type UserPreferences struct {
	UserID                   string    `json:"user_id"`
	DailySummaryEnabled      bool      `json:"daily_summary_enabled"`
	BudgetAlertsEnabled      bool      `json:"budget_alerts_enabled"`
	SpendingRemindersEnabled bool      `json:"spending_reminders_enabled"`
	NotificationTime         string    `json:"notification_time"`
	Timezone                 string    `json:"timezone"`
	MaxDailyMessages         int       `json:"max_daily_messages"`
	FCMToken                 string    `json:"-"`
	UpdatedAt                time.Time `json:"-"`
}

// DefaultPreferences returns the preferences applied to a user who has never
// saved any.
func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:                   userID,
		DailySummaryEnabled:      true,
		BudgetAlertsEnabled:      true,
		SpendingRemindersEnabled: true,
		NotificationTime:         "18:00",
		Timezone:                 "UTC",
		MaxDailyMessages:         50,
	}
}

// NotificationRecord is one delivery attempt in the notification log.
type NotificationRecord struct {
	ID             int64     `json:"id,omitempty"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"notification_type"`
	DeliveryMethod string    `json:"delivery_method"`
	Content        string    `json:"content"`
	Delivered      bool      `json:"delivered"`
	DeliveredAt    time.Time `json:"delivered_at,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// Notification types recorded in the log.
const (
	NotificationDailySummary     = "daily_summary"
	NotificationBudgetAlert      = "budget_alert"
	NotificationSpendingReminder = "spending_reminder"
	NotificationCustom           = "custom_alert"
)
