// Package logging provides file-based logging for eqboard.
// It outputs logs to both a global log file (<state>/eqboard/logs/eqboard.log)
// and project-specific log files (<state>/eqboard/logs/project-<id>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/equilibra/eqboard/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes leveled entries to log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile   *os.File
	projectFiles map[domain.EntityID]*os.File
	now          func() time.Time
	logDir       string
	mu           sync.Mutex
	level        slog.Level
}

// New creates a new Logger that writes to logDir.
// If logDir is empty, logging is disabled (returns a no-op logger).
func New(logDir string, level slog.Level) *Logger {
	return &Logger{
		logDir:       logDir,
		level:        level,
		now:          time.Now,
		projectFiles: make(map[domain.EntityID]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultDir returns the log directory under XDG_STATE_HOME, or
// ~/.local/state when unset. It returns "" if no home directory is known.
func DefaultDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return domain.LogDir(stateHome)
}

func (l *Logger) openLocked(path string) (*os.File, error) {
	if err := os.MkdirAll(l.logDir, 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	// G302: Log files are append-only and need read access by the user's group
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openLocked(domain.GlobalLogPath(l.logDir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

// ensureProjectFile opens or returns the project log file.
func (l *Logger) ensureProjectFile(projectID domain.EntityID) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := projectID.Canonical()
	if f, ok := l.projectFiles[key]; ok {
		return f, nil
	}
	f, err := l.openLocked(domain.ProjectLogPath(l.logDir, key))
	if err != nil {
		return nil, err
	}
	l.projectFiles[key] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.projectFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.projectFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2026-03-01 09:32:51] [INFO] [project-42] [category] message
func formatLog(t time.Time, level slog.Level, projectID domain.EntityID, category, msg string) string {
	scope := "global"
	if !projectID.IsZero() {
		scope = "project-" + projectID.String()
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log, and to the project log when
// projectID is set.
func (l *Logger) log(level slog.Level, projectID domain.EntityID, category, msg string) {
	if l.logDir == "" {
		return // Logging disabled
	}
	if level < l.level {
		return
	}

	entry := formatLog(l.now(), level, projectID, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}
	if !projectID.IsZero() {
		if pf, err := l.ensureProjectFile(projectID); err == nil {
			_, _ = io.WriteString(pf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(projectID domain.EntityID, category, msg string) {
	l.log(slog.LevelInfo, projectID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(projectID domain.EntityID, category, msg string) {
	l.log(slog.LevelDebug, projectID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(projectID domain.EntityID, category, msg string) {
	l.log(slog.LevelWarn, projectID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(projectID domain.EntityID, category, msg string) {
	l.log(slog.LevelError, projectID, category, msg)
}
