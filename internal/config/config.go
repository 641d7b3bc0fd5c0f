// Package config loads pico's YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/pico/internal/clipboard"
	"github.com/1broseidon/pico/internal/color"
)

// Swatch modes.
const (
	SwatchAlways = "always"
	SwatchAuto   = "auto"
	SwatchNever  = "never"
)

const (
	DefaultClipboardBackend = clipboard.BackendCommand
	DefaultHotkey           = "Mod4-Shift-c"

	// MaxTimeoutSeconds bounds timeout_seconds and --timeout (one day).
	MaxTimeoutSeconds = 24 * 60 * 60
)

// ClipboardConfig controls where picked colors are copied.
type ClipboardConfig struct {
	Enabled bool   `yaml:"enabled"`
	Backend string `yaml:"backend"`
	// Command overrides the detected clipboard program, e.g. "xsel -ib".
	Command string `yaml:"command,omitempty"`
}

type Config struct {
	Display        string          `yaml:"display,omitempty"`
	DefaultFormat  string          `yaml:"default_format"`
	Swatch         string          `yaml:"swatch"`
	TimeoutSeconds int             `yaml:"timeout_seconds"` // 0 = wait forever
	LogLevel       string          `yaml:"log_level"`
	Notify         bool            `yaml:"notify"`
	Hotkey         string          `yaml:"hotkey"`
	Clipboard      ClipboardConfig `yaml:"clipboard"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultFormat: color.FormatHex.String(),
		Swatch:        SwatchAlways,
		LogLevel:      "warn",
		Hotkey:        DefaultHotkey,
		Clipboard: ClipboardConfig{
			Enabled: true,
			Backend: DefaultClipboardBackend,
		},
	}
}

// Format returns the parsed default_format.
func (c *Config) Format() color.Format {
	if c == nil {
		return color.FormatHex
	}
	f, err := color.ParseFormat(c.DefaultFormat)
	if err != nil {
		return color.FormatHex
	}
	return f
}

// SlogLevel maps log_level onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	if c == nil {
		return slog.LevelWarn
	}
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

// PickTimeout converts a timeout in seconds to a duration, clamped to
// [0, MaxTimeoutSeconds]. Zero means no timeout.
func PickTimeout(seconds int) time.Duration {
	seconds = max(0, min(seconds, MaxTimeoutSeconds))
	return time.Duration(seconds) * time.Second
}

// ParseLogLevel accepts debug, info, warn/warning and error.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// ClipboardOptions converts the clipboard section for clipboard.New.
func (c *Config) ClipboardOptions() clipboard.Options {
	return clipboard.Options{
		Backend: c.Clipboard.Backend,
		Command: c.Clipboard.Command,
	}
}

func (c *Config) Validate() error {
	if _, err := color.ParseFormat(c.DefaultFormat); err != nil {
		return &ValidationError{Path: "default_format", Err: fmt.Errorf("default_format must be one of: hex, rgb, rgba, hsl")}
	}
	switch c.Swatch {
	case SwatchAlways, SwatchAuto, SwatchNever:
	default:
		return &ValidationError{Path: "swatch", Err: fmt.Errorf("swatch must be one of: always, auto, never")}
	}
	if c.TimeoutSeconds < 0 || c.TimeoutSeconds > MaxTimeoutSeconds {
		return &ValidationError{Path: "timeout_seconds", Err: fmt.Errorf("timeout_seconds must be between 0 and %d", MaxTimeoutSeconds)}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if strings.TrimSpace(c.Hotkey) == "" {
		return &ValidationError{Path: "hotkey", Err: fmt.Errorf("hotkey is required")}
	}
	switch c.Clipboard.Backend {
	case clipboard.BackendCommand, clipboard.BackendSystem, clipboard.BackendOSC52, clipboard.BackendNone:
	default:
		return &ValidationError{Path: "clipboard.backend", Err: fmt.Errorf("clipboard.backend must be one of: command, system, osc52, none")}
	}
	if c.Clipboard.Command != "" && c.Clipboard.Backend != clipboard.BackendCommand {
		return &ValidationError{Path: "clipboard.command", Err: fmt.Errorf("clipboard.command requires clipboard.backend: command")}
	}
	if c.Clipboard.Command != "" && strings.TrimSpace(c.Clipboard.Command) == "" {
		return &ValidationError{Path: "clipboard.command", Err: fmt.Errorf("clipboard.command must not be blank")}
	}
	return nil
}

// Save validates c and writes it to path as YAML, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := expandHome(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
