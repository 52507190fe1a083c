// Package orchestrator runs the bounded tool-calling loop that turns one user
// message into an assistant response, dispatching analytics tools the model
// requests and persisting the completed turn.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"accountanta/finassist/internal/llm"
	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/tools"
)

const (
	// maxIterations bounds cost when the model keeps requesting tools
	// without converging. Not expected to be hit in normal operation.
	maxIterations = 5

	// contextTurnLimit caps how many prior turns are replayed into the
	// transcript.
	contextTurnLimit = 10

	fallbackResponse = "I apologize, but I'm having trouble generating a response right now."
	errorResponse    = "I'm sorry, I encountered an error processing your request. Please try again."
)

// Dispatcher executes one named tool and always returns a renderable payload.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID, name string, args map[string]interface{}) interface{}
}

// ContextStore loads prior turns and persists completed ones.
type ContextStore interface {
	ConversationContext(ctx context.Context, conversationID string, limit int) ([]models.Turn, error)
	SaveTurn(ctx context.Context, turn *models.Turn) error
}

// Result is what one orchestration run produces. It is always renderable:
// failures degrade Response and set Error instead of propagating.
type Result struct {
	ConversationID string              `json:"conversation_id"`
	Response       string              `json:"response"`
	ToolsUsed      []string            `json:"tools_used"`
	ToolResults    []models.ToolResult `json:"tool_results"`
	TokenCount     int                 `json:"token_count"`
	TurnID         int64               `json:"turn_id,omitempty"`
	Timestamp      time.Time           `json:"timestamp,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// Orchestrator drives the model/tool loop for single turns. Each run owns its
// transcript exclusively; independent runs may execute concurrently.
type Orchestrator struct {
	client     llm.Client
	dispatcher Dispatcher
	store      ContextStore
	catalog    []tools.Declaration
	log        logging.Logger
}

// New builds an orchestrator over the given collaborators.
func New(client llm.Client, dispatcher Dispatcher, store ContextStore, catalog []tools.Declaration, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		client:     client,
		dispatcher: dispatcher,
		store:      store,
		catalog:    catalog,
		log:        logger,
	}
}

// ProcessMessage runs one turn for a user and conversation. It never returns
// an error: every failure mode degrades into a Result the caller can render.
func (o *Orchestrator) ProcessMessage(ctx context.Context, userID, userMessage, conversationID string) (result *Result) {
	result = &Result{ConversationID: conversationID}
	log := o.log.WithFields(
		logging.Field{Key: logging.FieldUserID, Value: userID},
		logging.Field{Key: logging.FieldConversationID, Value: conversationID},
	)

	defer func() {
		if r := recover(); r != nil {
			log.WithField(logging.FieldError, fmt.Sprint(r)).Error("Recovered from unexpected failure")
			result.Response = errorResponse
			result.Error = fmt.Sprint(r)
		}
	}()

	transcript := o.buildTranscript(ctx, userID, userMessage, conversationID, log)
	answered := false

	for iteration := 1; iteration <= maxIterations; iteration++ {
		resp, err := o.client.Generate(ctx, transcript, o.catalog)
		if err != nil {
			log.WithError(err).WithField(logging.FieldIteration, iteration).Error("Model request failed")
			break
		}
		result.TokenCount += resp.TokenCount

		if resp.HasFunctionCalls() {
			for _, call := range resp.FunctionCalls {
				payload := o.dispatcher.Dispatch(ctx, userID, call.Name, call.Arguments)
				result.ToolsUsed = append(result.ToolsUsed, call.Name)
				result.ToolResults = append(result.ToolResults, models.ToolResult{
					Function: call.Name,
					Result:   payload,
				})
				transcript = append(transcript, models.Message{
					Role:         models.RoleFunction,
					FunctionName: call.Name,
					Content:      serializeResult(payload),
				})
			}
			log.WithFields(
				logging.Field{Key: logging.FieldIteration, Value: iteration},
				logging.Field{Key: logging.FieldCount, Value: len(resp.FunctionCalls)},
			).Debug("Dispatched tool calls")
			continue
		}

		if resp.Text != "" {
			result.Response = resp.Text
			answered = true
			break
		}

		// Neither text nor tool calls: malformed terminal response.
		log.WithField(logging.FieldIteration, iteration).Warn("Model returned empty response")
		break
	}

	if !answered {
		result.Response = fallbackResponse
		log.WithField(logging.FieldTokenCount, result.TokenCount).Warn("Turn ended without a model answer")
		return result
	}

	o.persistTurn(ctx, userID, userMessage, result, log)
	return result
}

// buildTranscript assembles system prompt, prior context, and the new user
// message. A context load failure degrades to an empty history rather than
// failing the turn.
func (o *Orchestrator) buildTranscript(ctx context.Context, userID, userMessage, conversationID string, log logging.Logger) []models.Message {
	transcript := []models.Message{{Role: models.RoleSystem, Content: llm.SystemPrompt}}

	prior, err := o.store.ConversationContext(ctx, conversationID, contextTurnLimit)
	if err != nil {
		log.WithError(err).Warn("Failed to load conversation context, starting fresh")
		prior = nil
	}
	transcript = append(transcript, FlattenTurns(prior)...)

	return append(transcript, models.Message{Role: models.RoleUser, Content: userMessage})
}

// FlattenTurns expands prior turns into user/assistant message pairs in
// chronological order. Turns without an assistant response are skipped
// entirely rather than inserting an empty entry.
func FlattenTurns(turns []models.Turn) []models.Message {
	messages := make([]models.Message, 0, len(turns)*2)
	for _, turn := range turns {
		if turn.AssistantResponse == "" {
			continue
		}
		messages = append(messages,
			models.Message{Role: models.RoleUser, Content: turn.UserMessage},
			models.Message{Role: models.RoleAssistant, Content: turn.AssistantResponse},
		)
	}
	return messages
}

func (o *Orchestrator) persistTurn(ctx context.Context, userID, userMessage string, result *Result, log logging.Logger) {
	turn := &models.Turn{
		UserID:            userID,
		ConversationID:    result.ConversationID,
		UserMessage:       userMessage,
		AssistantResponse: result.Response,
		ToolsUsed:         result.ToolsUsed,
		ToolResults:       result.ToolResults,
		TokenCount:        result.TokenCount,
	}
	if err := o.store.SaveTurn(ctx, turn); err != nil {
		// The answer is still good; report the persistence failure
		// alongside it instead of discarding the turn.
		log.WithError(err).Error("Failed to persist turn")
		result.Error = fmt.Sprintf("failed to persist turn: %v", err)
		return
	}
	result.TurnID = turn.ID
	result.Timestamp = turn.CreatedAt
	log.WithFields(
		logging.Field{Key: logging.FieldTokenCount, Value: result.TokenCount},
		logging.Field{Key: logging.FieldCount, Value: len(result.ToolsUsed)},
	).Info("Turn completed")
}

// serializeResult renders a tool payload for the function-role transcript
// entry. Marshal failures fall back to a printable form so the loop never
// stops over a result encoding.
func serializeResult(payload interface{}) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}
