package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// IPCConfig configures the daemon command socket.
type IPCConfig struct {
	// Socket overrides the socket path (default: <runtime dir>/winveil.sock)
	Socket string `yaml:"socket,omitempty"`
	// TimeoutSeconds bounds a single client round trip (default: 5)
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// ActionLogConfig configures the toggle action log.
type ActionLogConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// File is the log file path (default: ~/.local/share/winveil/actions.log)
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// Config is the effective winveil configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	IPC       IPCConfig       `yaml:"ipc"`
	ActionLog ActionLogConfig `yaml:"action_log,omitempty"`
}

// ValidationError points at the config key that failed validation.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		IPC: IPCConfig{
			TimeoutSeconds: 5,
		},
		ActionLog: ActionLogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	if c.IPC.TimeoutSeconds <= 0 {
		return &ValidationError{Path: "ipc.timeout_seconds", Err: fmt.Errorf("timeout_seconds must be > 0")}
	}
	if c.ActionLog.MaxSizeMB <= 0 {
		return &ValidationError{Path: "action_log.max_size_mb", Err: fmt.Errorf("max_size_mb must be > 0")}
	}
	if c.ActionLog.MaxBackups < 0 {
		return &ValidationError{Path: "action_log.max_backups", Err: fmt.Errorf("max_backups must be >= 0")}
	}
	if c.ActionLog.MaxAgeDays < 0 {
		return &ValidationError{Path: "action_log.max_age_days", Err: fmt.Errorf("max_age_days must be >= 0")}
	}
	return nil
}

// SlogLevel returns LogLevel as a slog level. Validate has already rejected
// unknown names, so the fallback is never hit for loaded configs.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
}

// GetActionLogConfig returns the action log configuration with the default
// file path applied.
func (c *Config) GetActionLogConfig() ActionLogConfig {
	if c == nil {
		return ActionLogConfig{}
	}
	cfg := c.ActionLog
	if cfg.File == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = "."
		}
		cfg.File = filepath.Join(home, ".local", "share", "winveil", "actions.log")
	}
	return cfg
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
