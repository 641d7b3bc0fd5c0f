package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at a YAML path such as "swatch" or
// "clipboard.backend", and where it came from.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "display":
		return cfg.Display, nil
	case "default_format":
		return cfg.DefaultFormat, nil
	case "swatch":
		return cfg.Swatch, nil
	case "timeout_seconds":
		return cfg.TimeoutSeconds, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "notify":
		return cfg.Notify, nil
	case "hotkey":
		return cfg.Hotkey, nil
	case "clipboard":
		return cfg.Clipboard, nil
	case "clipboard.enabled":
		return cfg.Clipboard.Enabled, nil
	case "clipboard.backend":
		return cfg.Clipboard.Backend, nil
	case "clipboard.command":
		return cfg.Clipboard.Command, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

// FormatSource renders src for display, e.g. "file:/home/u/.config/pico/config.yaml:3:9".
func FormatSource(src Source) string {
	switch src.Kind {
	case SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
