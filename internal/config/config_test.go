package config

import (
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/pico/internal/color"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Format() != color.FormatHex {
		t.Fatalf("expected default format hex, got %v", cfg.Format())
	}
	if cfg.Swatch != SwatchAlways {
		t.Fatalf("expected swatch %q, got %q", SwatchAlways, cfg.Swatch)
	}
	if !cfg.Clipboard.Enabled {
		t.Fatal("expected clipboard enabled by default")
	}
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Fatalf("expected warn level, got %v", cfg.SlogLevel())
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.DefaultFormat != "hex" {
		t.Fatalf("expected default_format hex, got %q", res.Config.DefaultFormat)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Swatch != SwatchAlways {
		t.Fatalf("expected swatch always, got %q", res.Config.Swatch)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		`display: ":1"`,
		`default_format: HSL`,
		`swatch: auto`,
		`timeout_seconds: 15`,
		`log_level: debug`,
		`notify: true`,
		`hotkey: "Mod4-Mod1-p"`,
		`clipboard:`,
		`  backend: command`,
		`  command: "xsel --clipboard --input"`,
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display != ":1" {
		t.Errorf("display = %q", cfg.Display)
	}
	if cfg.Format() != color.FormatHSL {
		t.Errorf("format = %v, want hsl", cfg.Format())
	}
	if cfg.Swatch != SwatchAuto {
		t.Errorf("swatch = %q", cfg.Swatch)
	}
	if cfg.TimeoutSeconds != 15 {
		t.Errorf("timeout_seconds = %d", cfg.TimeoutSeconds)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v", cfg.SlogLevel())
	}
	if !cfg.Notify {
		t.Error("expected notify true")
	}
	if cfg.Hotkey != "Mod4-Mod1-p" {
		t.Errorf("hotkey = %q", cfg.Hotkey)
	}
	if !cfg.Clipboard.Enabled {
		t.Error("clipboard.enabled should keep its default when unset")
	}
	opts := cfg.ClipboardOptions()
	if opts.Backend != "command" || opts.Command != "xsel --clipboard --input" {
		t.Errorf("clipboard options = %+v", opts)
	}
}

func TestLoadFromPath_DisableClipboard(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "clipboard:\n  enabled: false\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Clipboard.Enabled {
		t.Fatal("expected clipboard disabled")
	}
	if res.Config.Clipboard.Backend != DefaultClipboardBackend {
		t.Fatalf("backend = %q", res.Config.Clipboard.Backend)
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "colour: hex\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Fatalf("error should name the key, got %v", err)
	}
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	if _, err := LoadFromPath(writeConfig(t, "swatch: [\n")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := writeConfig(t, "notify: false\nswatch: sometimes\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Path != "swatch" {
		t.Fatalf("path = %q, want swatch", verr.Path)
	}
	if verr.Source.Kind != SourceFile || verr.Source.Line != 2 {
		t.Fatalf("source = %+v, want line 2 of file", verr.Source)
	}
	if !strings.HasPrefix(err.Error(), path+":2:") {
		t.Fatalf("error = %q, want file:line prefix", err.Error())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{"bad format", func(c *Config) { c.DefaultFormat = "cmyk" }, "default_format"},
		{"bad swatch", func(c *Config) { c.Swatch = "sometimes" }, "swatch"},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }, "timeout_seconds"},
		{"timeout above a day", func(c *Config) { c.TimeoutSeconds = MaxTimeoutSeconds + 1 }, "timeout_seconds"},
		{"overflowing timeout", func(c *Config) { c.TimeoutSeconds = math.MaxInt }, "timeout_seconds"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"empty hotkey", func(c *Config) { c.Hotkey = " " }, "hotkey"},
		{"bad backend", func(c *Config) { c.Clipboard.Backend = "pbcopy" }, "clipboard.backend"},
		{"command with osc52", func(c *Config) {
			c.Clipboard.Backend = "osc52"
			c.Clipboard.Command = "xclip"
		}, "clipboard.command"},
		{"blank command", func(c *Config) { c.Clipboard.Command = "   " }, "clipboard.command"},
		{"empty format means hex", func(c *Config) { c.DefaultFormat = "" }, ""},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantPath == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.wantPath {
				t.Fatalf("path = %q, want %q", verr.Path, tt.wantPath)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"":        slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		if err != nil {
			t.Fatalf("ParseLogLevel(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLogLevel("trace"); err == nil {
		t.Fatal("expected error for trace")
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Setenv(EnvConfigPath, "")
	got, err := ResolvePath("")
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if want := filepath.Join(home, ".config", "pico", "config.yaml"); got != want {
		t.Fatalf("default path = %q, want %q", got, want)
	}

	t.Setenv(EnvConfigPath, "~/pico.yaml")
	got, _ = ResolvePath("")
	if want := filepath.Join(home, "pico.yaml"); got != want {
		t.Fatalf("env path = %q, want %q", got, want)
	}

	got, _ = ResolvePath("/etc/pico.yaml")
	if got != "/etc/pico.yaml" {
		t.Fatalf("explicit path = %q, want /etc/pico.yaml", got)
	}
}

func TestExplain(t *testing.T) {
	path := writeConfig(t, "swatch: never\nclipboard:\n  backend: osc52\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	value, src, err := Explain(res, "clipboard.backend")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if value != "osc52" {
		t.Fatalf("value = %v, want osc52", value)
	}
	if src.Kind != SourceFile || src.Line != 3 {
		t.Fatalf("source = %+v, want file line 3", src)
	}
	if got := FormatSource(src); got != "file:"+path+":3:12" {
		t.Fatalf("FormatSource = %q", got)
	}

	value, src, err = Explain(res, "default_format")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if value != "hex" || src.Kind != SourceDefault {
		t.Fatalf("default_format = %v from %v", value, src.Kind)
	}

	if _, _, err := Explain(res, "layouts.grid"); err == nil {
		t.Fatal("expected unknown path error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.DefaultFormat = "hsl"
	cfg.Notify = true
	cfg.Clipboard.Backend = "osc52"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if *res.Config != *cfg {
		t.Fatalf("reloaded config = %+v, want %+v", res.Config, cfg)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Swatch = "sometimes"

	err := cfg.Save(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Save() error = %v, want ValidationError", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("invalid config should not be written, stat err = %v", statErr)
	}
}

func TestPickTimeout(t *testing.T) {
	tests := []struct {
		seconds int
		want    time.Duration
	}{
		{0, 0},
		{-5, 0},
		{30, 30 * time.Second},
		{MaxTimeoutSeconds, 24 * time.Hour},
		{math.MaxInt, 24 * time.Hour},
	}
	for _, tt := range tests {
		if got := PickTimeout(tt.seconds); got != tt.want {
			t.Errorf("PickTimeout(%d) = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}
