package tools

import (
	"encoding/json"
	"strings"
)

// Arguments is a tool-call argument bag normalized to plain string keys.
// The model side may emit keys in symbolic form (":period") or nest object
// values; NormalizeArguments flattens both quirks before any handler runs.
type Arguments map[string]interface{}

// NormalizeArguments converts a raw argument map into Arguments: leading
// colons are stripped from keys and nested maps are normalized recursively.
// A nil input yields an empty, usable bag.
func NormalizeArguments(raw map[string]interface{}) Arguments {
	args := make(Arguments, len(raw))
	for key, value := range raw {
		args[normalizeKey(key)] = normalizeValue(value)
	}
	return args
}

func normalizeKey(key string) string {
	return strings.TrimPrefix(strings.TrimSpace(key), ":")
}

func normalizeValue(value interface{}) interface{} {
	if m, ok := value.(map[string]interface{}); ok {
		return map[string]interface{}(NormalizeArguments(m))
	}
	return value
}

// String returns the named argument as a string.
func (a Arguments) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the named string argument or a fallback when it is absent
// or empty.
func (a Arguments) StringOr(key, fallback string) string {
	if s, ok := a.String(key); ok && s != "" {
		return s
	}
	return fallback
}

// Int returns the named argument coerced to an int. JSON decoding and the
// model SDK deliver numbers as float64; both forms are accepted.
func (a Arguments) Int(key string) (int, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}

// Float returns the named argument coerced to a float64.
func (a Arguments) Float(key string) (float64, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Map returns the named argument as a nested Arguments bag.
func (a Arguments) Map(key string) (Arguments, bool) {
	v, ok := a[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	return Arguments(m), true
}
