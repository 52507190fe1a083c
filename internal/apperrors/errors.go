// Package apperrors defines the typed errors shared across the assistant's
// tool-calling pipeline.
package apperrors

import "fmt"

// UnknownToolError is returned when the language model requests a tool that
// the catalog does not declare.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown function: %s", e.Name)
}

// ToolExecutionError wraps a failure raised while executing a known tool.
type ToolExecutionError struct {
	Name string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("Failed to execute %s: %v", e.Name, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// ModelError wraps a failure from the language-model capability: a remote
// error or a payload the client could not interpret.
type ModelError struct {
	Reason string
	Err    error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("model error: %s", e.Reason)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// MissingArgumentError reports a required tool argument that was absent or
// of the wrong type.
type MissingArgumentError struct {
	Tool     string
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s: missing required argument %q", e.Tool, e.Argument)
}
