//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/pico/internal/color"
	"github.com/1broseidon/pico/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend owns an X11 connection plus the crosshair cursor and pointer
// grab acquired through it.
type LinuxBackend struct {
	conn   *x11.Connection
	logger *slog.Logger

	mu          sync.Mutex
	cursor      xproto.Cursor
	grabbed     bool
	released    bool
	monitors    []x11.Monitor
	monitorsErr error
	monitorsSet bool
	monitorsFn  func() ([]x11.Monitor, error)
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackendFromDisplay opens a new X11 connection to display (empty
// means $DISPLAY).
func NewLinuxBackendFromDisplay(display string, logger *slog.Logger) (*LinuxBackend, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	logger.Debug("connected to X11", "screen", conn.ScreenIndex, "root", uint32(conn.Root))
	return &LinuxBackend{conn: conn, logger: logger, monitorsFn: conn.GetMonitors}, nil
}

// LinuxOpener returns an Opener for display.
func LinuxOpener(display string, logger *slog.Logger) Opener {
	return func() (Backend, error) {
		return NewLinuxBackendFromDisplay(display, logger)
	}
}

// GrabPointer installs the crosshair cursor and grabs the pointer. On
// failure the cursor is freed again; the connection stays open until Release.
func (b *LinuxBackend) GrabPointer() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return x11.ErrConnectionClosed
	}
	if b.grabbed {
		return nil
	}

	// Monitor lookup needs RandR round trips; do them before the grab so
	// MonitorAt is a cache lookup while the pointer is held.
	b.loadMonitorsLocked()

	cursor, err := b.conn.CreateCrosshair()
	if err != nil {
		return err
	}
	if err := b.conn.GrabPointer(cursor); err != nil {
		b.conn.FreeCursor(cursor)
		return err
	}

	b.cursor = cursor
	b.grabbed = true
	b.logger.Debug("pointer grabbed")
	return nil
}

// WaitClick blocks on the event queue until the first button press.
func (b *LinuxBackend) WaitClick() (Point, error) {
	press, err := b.conn.WaitButtonPress(b.logger)
	if err != nil {
		return Point{}, err
	}
	b.logger.Debug("button press", "x", press.X, "y", press.Y, "button", press.Button)
	return Point{X: press.X, Y: press.Y}, nil
}

// PointerPosition queries the pointer position on the root window.
func (b *LinuxBackend) PointerPosition() (Point, error) {
	x, y, err := b.conn.PointerPosition()
	if err != nil {
		return Point{}, fmt.Errorf("failed to query pointer: %w", err)
	}
	return Point{X: x, Y: y}, nil
}

// ReadPixel captures and decodes the pixel at p.
func (b *LinuxBackend) ReadPixel(p Point) (color.RGB, error) {
	pixel, err := b.conn.ReadPixel(p.X, p.Y)
	if err != nil {
		return color.RGB{}, err
	}
	return color.Decode(pixel), nil
}

// MonitorAt resolves the RandR output containing p. Monitors are queried
// once per backend, before the pointer grab when there is one.
func (b *LinuxBackend) MonitorAt(p Point) (Monitor, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return Monitor{}, false
	}
	b.loadMonitorsLocked()
	m, ok := x11.MonitorAt(b.monitors, p.X, p.Y)
	if !ok {
		return Monitor{}, false
	}
	return Monitor{ID: m.ID, Name: m.Name}, true
}

func (b *LinuxBackend) loadMonitorsLocked() {
	if b.monitorsSet || b.monitorsFn == nil {
		return
	}
	b.monitors, b.monitorsErr = b.monitorsFn()
	b.monitorsSet = true
	if b.monitorsErr != nil {
		b.logger.Debug("monitor lookup unavailable", "error", b.monitorsErr)
	}
}

// Release ungrabs the pointer, frees the cursor and closes the connection.
// Only the first call has an effect.
func (b *LinuxBackend) Release() {
	if b == nil || b.conn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return
	}
	b.released = true

	if b.grabbed {
		if err := b.conn.UngrabPointer(); err != nil {
			b.logger.Debug("ungrab failed", "error", err)
		}
		b.grabbed = false
	}
	if b.cursor != 0 {
		b.conn.FreeCursor(b.cursor)
		b.cursor = 0
	}
	b.conn.Close()
	b.logger.Debug("display connection closed")
}
