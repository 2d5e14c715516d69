package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes timestamped log lines to a per-run file and optionally
// echoes them to stderr. Safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	file   *os.File
	stderr bool
}

// New creates an uninitialized Logger. Until Init succeeds, messages go to
// stderr only when echo is enabled.
func New(echoStderr bool) *Logger {
	return &Logger{stderr: echoStderr}
}

// Init opens a new log file in logDir, numbering runs within the same day.
func (l *Logger) Init(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log dir: %v", err)
	}

	dateStr := time.Now().Format("2006-01-02")
	pattern := filepath.Join(logDir, fmt.Sprintf("deckgen_%s_*.log", dateStr))
	matches, _ := filepath.Glob(pattern)
	runCount := len(matches) + 1
	filename := filepath.Join(logDir, fmt.Sprintf("deckgen_%s_%d.log", dateStr, runCount))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	l.file = f
	l.write("INFO", "App Started")
	return nil
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write("INFO", fmt.Sprintf(format, args...))
}

// Warnf logs a recoverable problem, e.g. a failed image resolution tier.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write("WARN", fmt.Sprintf(format, args...))
}

// Errorf logs a failure that aborted an operation.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write("ERROR", fmt.Sprintf(format, args...))
}

func (l *Logger) write(level, message string) {
	timestamp := time.Now().Format("15:04:05.000")
	line := fmt.Sprintf("[%s] %-5s %s\n", timestamp, level, message)
	if l.file != nil {
		fmt.Fprint(l.file, line)
	}
	if l.stderr {
		fmt.Fprint(os.Stderr, line)
	}
}

// Close flushes and closes the log file.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.write("INFO", "App stopped")
		l.file.Close()
		l.file = nil
	}
}
