package yololbl

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrorLogFileName is the name of the diagnostic log in the target directory.
const ErrorLogFileName = "label_errors.txt"

const errorLogTimeFormat = "2006-01-02 15:04:05"

// ErrorLog appends timestamped diagnostic entries to a file. Entries are never read back.
type ErrorLog struct {
	mu   sync.Mutex
	path string
	file *os.File
	now  func() time.Time
}

// ErrorLogOption configures an ErrorLog.
type ErrorLogOption func(*ErrorLog)

// WithClock sets the time source for entry timestamps.
func WithClock(now func() time.Time) ErrorLogOption {
	return func(l *ErrorLog) { l.now = now }
}

// OpenErrorLog opens (or creates) the log at path for appending.
func OpenErrorLog(path string, opts ...ErrorLogOption) (*ErrorLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open error log %q: %w", path, err)
	}

	l := &ErrorLog{path: path, file: f, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Path is the file path of the log.
func (l *ErrorLog) Path() string {
	return l.path
}

// LogError appends "[timestamp] File: <source> - <message>" to the log. An empty source is written
// as "Unknown file". Write failures are reported on the console only.
func (l *ErrorLog) LogError(source, message string) {
	if l == nil {
		return
	}

	fileInfo := "Unknown file"
	if source != "" {
		fileInfo = "File: " + source
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		Logf("Error log %q is closed, dropping: %s - %s", l.path, fileInfo, message)
		return
	}
	line := fmt.Sprintf("[%s] %s - %s\n", l.now().Format(errorLogTimeFormat), fileInfo, message)
	if _, err := l.file.WriteString(line); err != nil {
		Logf("Failed to write to error log %q: %v", l.path, err)
	}
}

// Close closes the underlying file.
func (l *ErrorLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
