// Package daemon keeps pico resident and runs a pick each time the
// configured hotkey is pressed.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/pico/internal/clipboard"
	"github.com/1broseidon/pico/internal/color"
	"github.com/1broseidon/pico/internal/config"
	"github.com/1broseidon/pico/internal/hotkeys"
	"github.com/1broseidon/pico/internal/notify"
	"github.com/1broseidon/pico/internal/picker"
	"github.com/1broseidon/pico/internal/platform"
	"github.com/1broseidon/pico/internal/x11"
)

// ErrBusy is returned by Trigger while a pick is already running.
var ErrBusy = errors.New("pick already in progress")

// Daemon serializes hotkey-triggered picks.
type Daemon struct {
	config    *config.Config
	logger    *slog.Logger
	opener    platform.Opener
	clipboard clipboard.Writer
	notifyFn  func(text string, copied bool, logger *slog.Logger)

	busy sync.Mutex
	wg   sync.WaitGroup
}

// New creates a daemon that opens a fresh backend with opener for every pick.
func New(cfg *config.Config, logger *slog.Logger, opener platform.Opener) (*Daemon, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	writer, err := clipboard.New(cfg.ClipboardOptions())
	if err != nil {
		return nil, err
	}
	return &Daemon{
		config:    cfg,
		logger:    logger,
		opener:    opener,
		clipboard: writer,
		notifyFn:  notify.Picked,
	}, nil
}

// Trigger starts a pick in the background. results, when non-nil, receives
// the outcome.
func (d *Daemon) Trigger(ctx context.Context, results chan<- Outcome) error {
	if !d.busy.TryLock() {
		return ErrBusy
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.busy.Unlock()
		text, err := d.pickOnce(ctx)
		if results != nil {
			results <- Outcome{Text: text, Err: err}
		}
	}()
	return nil
}

// Outcome is the result of one triggered pick.
type Outcome struct {
	Text string
	Err  error
}

// Wait blocks until every triggered pick has finished.
func (d *Daemon) Wait() {
	d.wg.Wait()
}

func (d *Daemon) pickOnce(ctx context.Context) (string, error) {
	if d.config.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.PickTimeout(d.config.TimeoutSeconds))
		defer cancel()
	}

	result, err := picker.NewSession(d.opener, d.logger).Pick(ctx)
	if err != nil {
		d.logger.Warn("pick failed", "error", err)
		return "", err
	}

	text := color.Render(result.Color, d.config.Format())
	d.logger.Info("picked color", "color", text, "x", result.Point.X, "y", result.Point.Y)

	copied := false
	if d.config.Clipboard.Enabled {
		copied = clipboard.Copy(d.clipboard, text, d.logger)
	}
	if d.config.Notify {
		d.notifyFn(text, copied, d.logger)
	}
	return text, nil
}

// Run binds the configured hotkey on its own display connection and serves
// picks until ctx is done.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d, err := New(cfg, logger, platform.LinuxOpener(cfg.Display, logger))
	if err != nil {
		return err
	}

	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		return fmt.Errorf("%w: %w", picker.ErrDisplayOpen, err)
	}

	handler := hotkeys.NewHandler(conn)
	if err := handler.RegisterFunc(cfg.Hotkey, func() {
		if err := d.Trigger(ctx, nil); err != nil {
			logger.Info("hotkey ignored", "reason", err)
		}
	}); err != nil {
		return err
	}
	logger.Info("pico daemon started", "hotkey", cfg.Hotkey)

	err = handler.Run(ctx)
	d.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
