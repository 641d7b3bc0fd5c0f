package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/1broseidon/pico/internal/clipboard"
	"github.com/1broseidon/pico/internal/color"
	"github.com/1broseidon/pico/internal/config"
	"github.com/1broseidon/pico/internal/notify"
	"github.com/1broseidon/pico/internal/picker"
	"github.com/1broseidon/pico/internal/platform"
)

var (
	openerFn = func(display string, logger *slog.Logger) platform.Opener {
		return platform.LinuxOpener(display, logger)
	}
	newClipboardFn = clipboard.New
	notifyFn       = notify.Picked
	isTerminalFn   = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 1 {
		switch args[1] {
		case "convert":
			return runConvert(args[2:], stdout, stderr)
		case "config":
			return runConfig(args[2:], stdout, stderr)
		case "daemon":
			return runDaemon(args[2:], stdout, stderr)
		case "mcp":
			return runMCP(args[2:], stdout, stderr)
		case "help":
			printUsage(stdout)
			return 0
		}
	}
	return runPick(args, stdout, stderr)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "pico - minimal X11 color picker")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pico               -> HEX")
	fmt.Fprintln(w, "  pico --rgb         -> rgb(...)")
	fmt.Fprintln(w, "  pico --rgba        -> rgba(..., 1.0)")
	fmt.Fprintln(w, "  pico --hsl         -> hsl(...)")
	fmt.Fprintln(w, "  pico-rgb           (symlink)")
	fmt.Fprintln(w, "  pico-rgba")
	fmt.Fprintln(w, "  pico-hsl")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --pointer          Sample under the pointer now instead of waiting for a click")
	fmt.Fprintln(w, "  --timeout N        Give up after N seconds without a click")
	fmt.Fprintln(w, "  --no-copy          Do not copy the result to the clipboard")
	fmt.Fprintln(w, "  --config PATH      Config file (default: ~/.config/pico/config.yaml)")
	fmt.Fprintln(w, "  --verbose          Debug logging on stderr")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert <color>    Convert a color without picking")
	fmt.Fprintln(w, "  config validate    Validate configuration")
	fmt.Fprintln(w, "  config print       Print configuration")
	fmt.Fprintln(w, "  config explain     Explain a config value")
	fmt.Fprintln(w, "  config edit        Edit configuration interactively")
	fmt.Fprintln(w, "  daemon             Pick whenever the hotkey is pressed")
	fmt.Fprintln(w, "  mcp serve          Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Click anywhere to pick a color.")
	fmt.Fprintln(w, "Auto-copies to clipboard.")
	fmt.Fprintln(w, "Cursor becomes crosshair.")
}

type pickOptions struct {
	rgb        bool
	rgba       bool
	hsl        bool
	pointer    bool
	timeout    int
	noCopy     bool
	configPath string
	verbose    bool
}

func runPick(args []string, stdout, stderr io.Writer) int {
	var opts pickOptions
	fs := flag.NewFlagSet("pico", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	fs.BoolVar(&opts.rgb, "rgb", false, "Print rgb(r, g, b)")
	fs.BoolVar(&opts.rgba, "rgba", false, "Print rgba(r, g, b, 1.0)")
	fs.BoolVar(&opts.hsl, "hsl", false, "Print hsl(h, s%, l%)")
	fs.BoolVar(&opts.pointer, "pointer", false, "Sample under the current pointer")
	fs.IntVar(&opts.timeout, "timeout", -1, "Seconds to wait for a click (0 = forever)")
	fs.BoolVar(&opts.noCopy, "no-copy", false, "Skip the clipboard")
	fs.StringVar(&opts.configPath, "config", "", "Config file path")
	fs.BoolVar(&opts.verbose, "verbose", false, "Debug logging")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return 0
		}
		printUsage(stderr)
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "pico: unexpected argument %q\n\n", fs.Arg(0))
		printUsage(stderr)
		return 2
	}
	if opts.timeout > config.MaxTimeoutSeconds {
		fmt.Fprintf(stderr, "pico: --timeout must be at most %d seconds\n", config.MaxTimeoutSeconds)
		return 2
	}

	res, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "pico: %v\n", err)
		return 1
	}
	cfg := res.Config
	logger := newLogger(stderr, cfg, opts.verbose)
	if res.File != "" {
		logger.Debug("config loaded", "file", res.File)
	}

	format := resolveFormat(args[0], opts, cfg.Format())

	timeoutSeconds := cfg.TimeoutSeconds
	if opts.timeout >= 0 {
		timeoutSeconds = opts.timeout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.PickTimeout(timeoutSeconds))
		defer cancel()
	}

	session := picker.NewSession(openerFn(cfg.Display, logger), logger)
	var result picker.Result
	if opts.pointer {
		result, err = session.PickAtPointer(ctx)
	} else {
		result, err = session.Pick(ctx)
	}
	if err != nil {
		logger.Debug("pick failed", "error", err)
		fmt.Fprintln(stderr, pickErrorMessage(err, timeoutSeconds))
		return 1
	}
	if result.HasMonitor {
		logger.Debug("picked on monitor", "monitor", result.Monitor.Name, "x", result.Point.X, "y", result.Point.Y)
	}

	text := color.Render(result.Color, format)
	fmt.Fprintln(stdout, outputLine(result.Color, text, showSwatch(cfg.Swatch, stdout)))

	copied := false
	if cfg.Clipboard.Enabled && !opts.noCopy {
		copied = copyToClipboard(cfg, text, logger)
	}
	if cfg.Notify {
		notifyFn(text, copied, logger)
	}
	return 0
}

// resolveFormat applies, in order: the binary-name suffix, --rgba, --hsl,
// --rgb and finally the configured default.
func resolveFormat(argv0 string, opts pickOptions, fallback color.Format) color.Format {
	name := filepath.Base(argv0)
	switch {
	case strings.HasSuffix(name, "-rgba"):
		return color.FormatRGBA
	case strings.HasSuffix(name, "-hsl"):
		return color.FormatHSL
	case strings.HasSuffix(name, "-rgb"):
		return color.FormatRGB
	case opts.rgba:
		return color.FormatRGBA
	case opts.hsl:
		return color.FormatHSL
	case opts.rgb:
		return color.FormatRGB
	default:
		return fallback
	}
}

func pickErrorMessage(err error, timeoutSeconds int) string {
	switch {
	case errors.Is(err, picker.ErrDisplayOpen):
		return "pico: failed to open X display"
	case errors.Is(err, picker.ErrGrab):
		return "pico: could not grab pointer"
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("pico: no click within %ds", timeoutSeconds)
	case errors.Is(err, context.Canceled):
		return "pico: cancelled"
	default:
		return fmt.Sprintf("pico: %v", err)
	}
}

func outputLine(c color.RGB, text string, swatch bool) string {
	if !swatch {
		return text
	}
	return color.Swatch(c, color.SwatchWidth) + "  " + text
}

func showSwatch(mode string, stdout io.Writer) bool {
	switch mode {
	case config.SwatchNever:
		return false
	case config.SwatchAuto:
		return isTerminalFn(stdout) && !termenv.EnvNoColor()
	default:
		return true
	}
}

func copyToClipboard(cfg *config.Config, text string, logger *slog.Logger) bool {
	w, err := newClipboardFn(cfg.ClipboardOptions())
	if err != nil {
		logger.Debug("clipboard unavailable", "error", err)
		return false
	}
	return clipboard.Copy(w, text, logger)
}

func newLogger(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
