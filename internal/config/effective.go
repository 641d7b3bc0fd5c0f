package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.DefaultFormat != nil {
		cfg.DefaultFormat = strings.ToLower(strings.TrimSpace(*raw.DefaultFormat))
	}
	if raw.Swatch != nil {
		cfg.Swatch = strings.ToLower(strings.TrimSpace(*raw.Swatch))
	}
	if raw.TimeoutSeconds != nil {
		cfg.TimeoutSeconds = *raw.TimeoutSeconds
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.Notify != nil {
		cfg.Notify = *raw.Notify
	}
	if raw.Hotkey != nil {
		cfg.Hotkey = strings.TrimSpace(*raw.Hotkey)
	}
	if c := raw.Clipboard; c != nil {
		if c.Enabled != nil {
			cfg.Clipboard.Enabled = *c.Enabled
		}
		if c.Backend != nil {
			cfg.Clipboard.Backend = strings.ToLower(strings.TrimSpace(*c.Backend))
		}
		if c.Command != nil {
			cfg.Clipboard.Command = *c.Command
		}
	}
	return cfg
}
