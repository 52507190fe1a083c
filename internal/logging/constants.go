package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldUserID         = "user_id"
	FieldConversationID = "conversation_id"
	FieldTool           = "tool"
	FieldIteration      = "iteration"
	FieldTokenCount     = "token_count"
	FieldPeriod         = "period"
	FieldCategory       = "category"
	FieldOperation      = "operation"
	FieldStatus         = "status"
	FieldError          = "error"
	FieldCount          = "count"
	FieldNotification   = "notification_type"
)
