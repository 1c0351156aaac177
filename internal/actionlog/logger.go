package actionlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ActionType names a window toggle recorded in the action log.
type ActionType string

const (
	ActionCaptureOn   ActionType = "CAPTURE-ON"
	ActionCaptureOff  ActionType = "CAPTURE-OFF"
	ActionTaskbarShow ActionType = "TASKBAR-SHOW"
	ActionTaskbarHide ActionType = "TASKBAR-HIDE"
)

// CaptureAction returns the action for a capture protection request.
func CaptureAction(enabled bool) ActionType {
	if enabled {
		return ActionCaptureOn
	}
	return ActionCaptureOff
}

// TaskbarAction returns the action for a taskbar visibility request.
func TaskbarAction(visible bool) ActionType {
	if visible {
		return ActionTaskbarShow
	}
	return ActionTaskbarHide
}

// Config holds configuration for the action logger.
type Config struct {
	Enabled    bool
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger appends one line per window toggle. Rotation is handled by
// lumberjack. A nil or disabled Logger drops every entry.
type Logger struct {
	mu  sync.Mutex
	out io.WriteCloser
	now func() time.Time
}

// New creates a logger for cfg.
func New(cfg Config) (*Logger, error) {
	if !cfg.Enabled {
		return &Logger{}, nil
	}

	dir := filepath.Dir(cfg.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	return newWithWriter(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}), nil
}

func newWithWriter(w io.WriteCloser) *Logger {
	return &Logger{out: w, now: time.Now}
}

// Log records a toggle against window. A non-nil err marks the entry failed.
func (l *Logger) Log(action ActionType, window string, err error, details map[string]interface{}) {
	if l == nil || l.out == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(l.now().Format("2006-01-02 15:04:05"))
	sb.WriteString(" [")
	sb.WriteString(string(action))
	sb.WriteString("]")

	if window != "" {
		sb.WriteString(" window=")
		sb.WriteString(window)
	}
	if err != nil {
		sb.WriteString(fmt.Sprintf(" result=failed error=%q", err.Error()))
	} else {
		sb.WriteString(" result=ok")
	}

	// Sorted for stable output.
	if len(details) > 0 {
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			switch val := details[k].(type) {
			case string:
				sb.WriteString(fmt.Sprintf(" %s=%q", k, val))
			default:
				sb.WriteString(fmt.Sprintf(" %s=%v", k, val))
			}
		}
	}
	sb.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, werr := io.WriteString(l.out, sb.String()); werr != nil {
		fmt.Fprintf(os.Stderr, "failed to write action log entry: %v\n", werr)
	}
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.out.Close()
	l.out = nil
	return err
}
