// Package clipboard mirrors picked colors to the system clipboard.
//
// Every backend is best-effort: callers use Copy, which never lets a
// clipboard failure reach the user.
package clipboard

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Backend names accepted by New.
const (
	BackendCommand = "command"
	BackendSystem  = "system"
	BackendOSC52   = "osc52"
	BackendNone    = "none"
)

// Writer places text on a clipboard.
type Writer interface {
	Name() string
	Write(text string) error
}

// Options selects and configures a Writer.
type Options struct {
	// Backend is one of command, system, osc52 or none. Empty means command.
	Backend string
	// Command overrides the detected clipboard program, e.g.
	// "xclip -selection clipboard".
	Command string
	// Terminal receives OSC 52 sequences. Defaults to os.Stderr.
	Terminal io.Writer
}

// New returns the Writer for opts.
func New(opts Options) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendCommand:
		if strings.TrimSpace(opts.Command) != "" {
			cw, err := NewCommandWriter(opts.Command)
			if err != nil {
				return nil, err
			}
			return cw, nil
		}
		return &detectingWriter{}, nil
	case BackendSystem:
		return systemWriter{}, nil
	case BackendOSC52:
		out := opts.Terminal
		if out == nil {
			out = os.Stderr
		}
		return &osc52Writer{out: out}, nil
	case BackendNone:
		return noopWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", opts.Backend)
	}
}

// Copy writes text with w and swallows any failure. It reports whether the
// text reached the clipboard; failures are only logged at debug level.
func Copy(w Writer, text string, logger *slog.Logger) bool {
	if w == nil {
		return false
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := w.Write(text); err != nil {
		logger.Debug("clipboard write failed", "backend", w.Name(), "error", err)
		return false
	}
	logger.Debug("copied to clipboard", "backend", w.Name(), "text", text)
	return true
}

type noopWriter struct{}

func (noopWriter) Name() string { return BackendNone }
func (noopWriter) Write(string) error { return nil }
