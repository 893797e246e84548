package memory

import (
	"strings"
	"sync"
)

// Entry is a single captured log call.
type Entry struct {
	Level   string
	Message string
	Keyvals []any
}

// MemoryLogger implements LoggerInstance by recording every call in memory.
// It exists so tests can assert on emitted diagnostics instead of scraping
// process output.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryLogger creates a new capturing logger backend.
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (m *MemoryLogger) record(level, message string, keyvals ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{
		Level:   level,
		Message: message,
		Keyvals: keyvals,
	})
}

// Entries returns a copy of all captured entries in call order.
func (m *MemoryLogger) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Contains reports whether any entry at the given level has a message
// containing the substring.
func (m *MemoryLogger) Contains(level, substring string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.Level == level && strings.Contains(e.Message, substring) {
			return true
		}
	}
	return false
}

// Reset discards all captured entries.
func (m *MemoryLogger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}

func (m *MemoryLogger) Log(message string, keyvals ...any) {
	m.record("log", message, keyvals...)
}

func (m *MemoryLogger) Debug(message string, keyvals ...any) {
	m.record("debug", message, keyvals...)
}

func (m *MemoryLogger) Info(message string, keyvals ...any) {
	m.record("info", message, keyvals...)
}

func (m *MemoryLogger) Warn(message string, keyvals ...any) {
	m.record("warn", message, keyvals...)
}

func (m *MemoryLogger) Error(message string, keyvals ...any) {
	m.record("error", message, keyvals...)
}

func (m *MemoryLogger) Fatal(message string, keyvals ...any) {
	m.record("fatal", message, keyvals...)
}
