// Package llm wraps the remote language-model capability behind a small
// interface the orchestrator can drive, with a Gemini implementation.
package llm

import (
	"context"

	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/tools"
)

// Response is the model's reply to one transcript: either a text answer,
// one or more requested tool invocations, or neither (a malformed reply the
// orchestrator treats as terminal). TokenCount reports usage for the call.
type Response struct {
	Text          string
	FunctionCalls []models.ToolCall
	TokenCount    int
}

// HasFunctionCalls reports whether the model asked for tools to run.
func (r *Response) HasFunctionCalls() bool {
	return len(r.FunctionCalls) > 0
}

// Client generates a model response for a transcript and tool catalog.
// Implementations adapt the transcript to whatever the remote model family
// expects, including folding the system instruction for models without a
// native system role.
type Client interface {
	Generate(ctx context.Context, transcript []models.Message, catalog []tools.Declaration) (*Response, error)
}
