package logger

import (
	"fmt"
	"log"
	"os"
)

// FileLogger is a StandardLogger that owns the file it writes to.
type FileLogger struct {
	*StandardLogger
	f *os.File
}

// NewFileLogger opens (or creates) path in append mode and logs to it.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &FileLogger{
		StandardLogger: NewStandardLogger(log.New(f, "", log.LstdFlags)),
		f:              f,
	}, nil
}

// Close closes the underlying file. Subsequent calls return nil.
func (fl *FileLogger) Close() error {
	if fl.f == nil {
		return nil
	}
	err := fl.f.Close()
	fl.f = nil
	return err
}

var _ Logger = (*FileLogger)(nil)
