package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/pico/internal/clipboard"
	"github.com/1broseidon/pico/internal/color"
	"github.com/1broseidon/pico/internal/config"
)

// formFields holds the form-bound values. Numbers are edited as strings and
// converted in apply.
type formFields struct {
	display          string
	defaultFormat    string
	swatch           string
	timeout          string
	logLevel         string
	notify           bool
	hotkey           string
	clipboardEnabled bool
	clipboardBackend string
	clipboardCommand string
}

func fieldsFromConfig(cfg *config.Config) *formFields {
	level := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch level {
	case "", "warning":
		level = "warn"
	}
	backend := cfg.Clipboard.Backend
	if backend == "" {
		backend = config.DefaultClipboardBackend
	}
	return &formFields{
		display:          cfg.Display,
		defaultFormat:    cfg.Format().String(),
		swatch:           cfg.Swatch,
		timeout:          strconv.Itoa(cfg.TimeoutSeconds),
		logLevel:         level,
		notify:           cfg.Notify,
		hotkey:           cfg.Hotkey,
		clipboardEnabled: cfg.Clipboard.Enabled,
		clipboardBackend: backend,
		clipboardCommand: cfg.Clipboard.Command,
	}
}

// apply returns a copy of base with the form values applied.
func (f *formFields) apply(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	timeout, err := parseTimeout(f.timeout)
	if err != nil {
		return nil, err
	}

	cfg.Display = strings.TrimSpace(f.display)
	cfg.DefaultFormat = f.defaultFormat
	cfg.Swatch = f.swatch
	cfg.TimeoutSeconds = timeout
	cfg.LogLevel = f.logLevel
	cfg.Notify = f.notify
	cfg.Hotkey = strings.TrimSpace(f.hotkey)
	cfg.Clipboard.Enabled = f.clipboardEnabled
	cfg.Clipboard.Backend = f.clipboardBackend
	cfg.Clipboard.Command = strings.TrimSpace(f.clipboardCommand)
	if cfg.Clipboard.Backend != clipboard.BackendCommand {
		cfg.Clipboard.Command = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseTimeout(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("timeout must be a whole number of seconds >= 0")
	}
	return n, nil
}

func validateTimeout(s string) error {
	_, err := parseTimeout(s)
	return err
}

func validateHotkey(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("hotkey is required")
	}
	return nil
}

func newForm(f *formFields, width int) *huh.Form {
	formats := make([]huh.Option[string], 0, len(color.Formats))
	for _, format := range color.Formats {
		formats = append(formats, huh.NewOption(format.String(), format.String()))
	}

	w := width - 4
	if w < 40 {
		w = 40
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("default_format").
				Title("Default Format").
				Description("Format printed when no flag is given").
				Options(formats...).
				Value(&f.defaultFormat),

			huh.NewSelect[string]().
				Key("swatch").
				Title("Swatch").
				Description("When to print the true-color block").
				Options(huh.NewOptions(config.SwatchAlways, config.SwatchAuto, config.SwatchNever)...).
				Value(&f.swatch),

			huh.NewInput().
				Key("timeout_seconds").
				Title("Timeout").
				Description("Seconds to wait for a click (0 waits forever)").
				Validate(validateTimeout).
				Value(&f.timeout),

			huh.NewInput().
				Key("display").
				Title("Display").
				Description("X display to open (empty uses $DISPLAY)").
				Value(&f.display),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("clipboard.backend").
				Title("Clipboard Backend").
				Options(huh.NewOptions(
					clipboard.BackendCommand,
					clipboard.BackendSystem,
					clipboard.BackendOSC52,
					clipboard.BackendNone,
				)...).
				Value(&f.clipboardBackend),

			huh.NewInput().
				Key("clipboard.command").
				Title("Clipboard Command").
				Description("Program for the command backend (empty auto-detects)").
				Value(&f.clipboardCommand),

			huh.NewConfirm().
				Key("clipboard.enabled").
				Title("Copy picked colors").
				Value(&f.clipboardEnabled),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("hotkey").
				Title("Hotkey").
				Description("X11 keybinding used by pico daemon").
				Validate(validateHotkey).
				Value(&f.hotkey),

			huh.NewConfirm().
				Key("notify").
				Title("Desktop notification after a pick").
				Value(&f.notify),

			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&f.logLevel),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)
}
