// Package logging provides file logging for the agent-browser daemon.
// Logs go to ~/.agent-browser/logs/<run-id>.log; the CLI client and
// the command compiler never log.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes structured lines for one daemon component.
type Logger struct {
	runID     string
	component string
	file      *os.File
	logger    *log.Logger
	debug     bool
	mu        sync.Mutex
	closeOnce sync.Once
}

var (
	runID     string
	runIDOnce sync.Once

	// logDir overrides the log directory when non-empty. Tests use it
	// to avoid touching the real home directory.
	logDir string
)

// getRunID returns the id shared by every logger in this process.
func getRunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

// New creates a logger for a component. If the log directory cannot
// be prepared it falls back to stderr and returns the error so the
// caller can warn; the fallback logger is still usable.
func New(component string) (*Logger, error) {
	dir := logDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fallback(component, err), err
		}
		dir = filepath.Join(home, ".agent-browser", "logs")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fallback(component, fmt.Errorf("failed to create log directory: %w", err)), err
	}

	path := filepath.Join(dir, getRunID()+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fallback(component, fmt.Errorf("failed to open log file: %w", err)), err
	}

	return &Logger{
		runID:     getRunID(),
		component: component,
		file:      file,
		logger:    log.New(file, "", 0),
	}, nil
}

func fallback(component string, err error) *Logger {
	logger := log.New(os.Stderr, fmt.Sprintf("[%s] ", component), log.LstdFlags)
	logger.Printf("WARNING: file logging unavailable: %v", err)
	return &Logger{
		runID:     getRunID(),
		component: component,
		logger:    logger,
	}
}

// SetDebug enables debug-level output.
func (l *Logger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
}

func (l *Logger) write(level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("[%s] [%s] [%s] %s", timestamp, l.component, level, fmt.Sprintf(format, v...))
}

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...any) {
	l.write("INFO", format, v...)
}

// Debugf logs a debug-level message. Dropped unless SetDebug(true)
// was called.
func (l *Logger) Debugf(format string, v ...any) {
	l.mu.Lock()
	enabled := l.debug
	l.mu.Unlock()
	if !enabled {
		return
	}
	l.write("DEBUG", format, v...)
}

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...any) {
	l.write("ERROR", format, v...)
}

// RunID returns the id shared by this process's loggers.
func (l *Logger) RunID() string {
	return l.runID
}

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
