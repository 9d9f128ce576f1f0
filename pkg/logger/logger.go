// Package logger provides the logging interface shared by the pagekit
// scheduler loops, the script runtime and the command line front end.
package logger

import (
	"fmt"
	"log"
	"sync"
)

// Logger defines the interface for leveled logging across pagekit components.
type Logger interface {
	// Debug logs a diagnostic message (e.g., "timer timestamp cleared").
	// Implementations may drop debug messages unless explicitly enabled.
	Debug(format string, args ...interface{})

	// Info logs an informational message (e.g., "mounted 2 components").
	Info(format string, args ...interface{})

	// Warning logs a warning message (e.g., "unknown mount target").
	Warning(format string, args ...interface{})

	// Error logs an error message (e.g., "timer callback panicked").
	Error(format string, args ...interface{})

	// Close releases resources held by the logger.
	// Safe to call multiple times.
	Close() error
}

// StandardLogger wraps the stdlib *log.Logger for console/file output.
type StandardLogger struct {
	logger *log.Logger
	debug  bool
}

// NewStandardLogger creates a logger that wraps the given *log.Logger.
// Debug messages are discarded until EnableDebug is called.
func NewStandardLogger(l *log.Logger) *StandardLogger {
	return &StandardLogger{logger: l}
}

// EnableDebug turns on [DEBUG] output.
func (s *StandardLogger) EnableDebug(on bool) *StandardLogger {
	s.debug = on
	return s
}

// Debug logs a diagnostic message with [DEBUG] prefix when enabled.
func (s *StandardLogger) Debug(format string, args ...interface{}) {
	if !s.debug {
		return
	}
	s.logger.Printf("[DEBUG] "+format, args...)
}

// Info logs an informational message with [INFO] prefix.
func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

// Warning logs a warning message with [WARNING] prefix.
func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

// Error logs an error message with [ERROR] prefix.
func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Close is a no-op for StandardLogger.
func (s *StandardLogger) Close() error {
	return nil
}

// NopLogger is a logger that discards all messages.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(format string, args ...interface{})   {}
func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}
func (n *NopLogger) Close() error                               { return nil }

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
)

// MockLogger records all log calls for verification in tests.
// Timer callbacks log from the loop goroutine, so access goes through a mutex;
// read the recorded calls with the accessor methods.
type MockLogger struct {
	mu           sync.Mutex
	debugCalls   []string
	infoCalls    []string
	warningCalls []string
	errorCalls   []string
	closeCalled  bool
}

// NewMockLogger creates a new MockLogger for testing.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(dst *[]string, format string, args ...interface{}) {
	m.mu.Lock()
	*dst = append(*dst, fmt.Sprintf(format, args...))
	m.mu.Unlock()
}

// Debug records the formatted message.
func (m *MockLogger) Debug(format string, args ...interface{}) {
	m.record(&m.debugCalls, format, args...)
}

// Info records the formatted message.
func (m *MockLogger) Info(format string, args ...interface{}) {
	m.record(&m.infoCalls, format, args...)
}

// Warning records the formatted message.
func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.record(&m.warningCalls, format, args...)
}

// Error records the formatted message.
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.record(&m.errorCalls, format, args...)
}

// Close records that Close was called.
func (m *MockLogger) Close() error {
	m.mu.Lock()
	m.closeCalled = true
	m.mu.Unlock()
	return nil
}

func (m *MockLogger) snapshot(src []string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), src...)
}

// DebugCalls returns a copy of the recorded debug messages.
func (m *MockLogger) DebugCalls() []string { return m.snapshot(m.debugCalls) }

// InfoCalls returns a copy of the recorded info messages.
func (m *MockLogger) InfoCalls() []string { return m.snapshot(m.infoCalls) }

// WarningCalls returns a copy of the recorded warning messages.
func (m *MockLogger) WarningCalls() []string { return m.snapshot(m.warningCalls) }

// ErrorCalls returns a copy of the recorded error messages.
func (m *MockLogger) ErrorCalls() []string { return m.snapshot(m.errorCalls) }

// CloseCalled reports whether Close was called.
func (m *MockLogger) CloseCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}

var _ Logger = (*MockLogger)(nil)
