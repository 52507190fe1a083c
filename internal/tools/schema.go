// Package tools declares the assistant's tool catalog and dispatches tool
// calls from the language model onto the analytics engine.
package tools

// Schema captures the subset of JSON Schema needed to describe tool
// parameters to the language model. It is vendor-neutral; the Gemini client
// translates it into SDK types.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Schema type names.
const (
	TypeObject  = "object"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
)

// Declaration describes one tool to the language model: its name, what it is
// for, and the shape of its arguments.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters"`
}
