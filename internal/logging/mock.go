package logging

import "sync"

// MockLogger is a test double that records every log call it receives.
// Derived loggers (WithField etc.) share the same recording sink, so
// assertions can always be made against the root instance.
type MockLogger struct {
	root   *recorder
	fields []Field
	err    error
}

type recorder struct {
	mu      sync.Mutex
	entries []MockEntry
}

// MockEntry captures a single log invocation.
type MockEntry struct {
	Level  string
	Msg    string
	Fields []Field
	Err    error
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{root: &recorder{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	m.root.mu.Lock()
	defer m.root.mu.Unlock()
	all := append(append([]Field{}, m.fields...), fields...)
	m.root.entries = append(m.root.entries, MockEntry{Level: level, Msg: msg, Fields: all, Err: m.err})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("fatal", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{root: m.root, fields: m.fields, err: err}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	combined := append(append([]Field{}, m.fields...), fields...)
	return &MockLogger{root: m.root, fields: combined, err: m.err}
}

// Entries returns a snapshot of everything logged so far.
func (m *MockLogger) Entries() []MockEntry {
	m.root.mu.Lock()
	defer m.root.mu.Unlock()
	return append([]MockEntry{}, m.root.entries...)
}

// HasMessage reports whether any recorded entry carries the given message.
func (m *MockLogger) HasMessage(msg string) bool {
	for _, e := range m.Entries() {
		if e.Msg == msg {
			return true
		}
	}
	return false
}
