// Package picker drives a single color pick through its lifecycle:
// open the display, grab the pointer, wait for a click, read the pixel and
// release everything again.
package picker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/pico/internal/color"
	"github.com/1broseidon/pico/internal/platform"
)

var (
	// ErrDisplayOpen wraps failures to connect to the display server.
	ErrDisplayOpen = errors.New("failed to open X display")
	// ErrGrab wraps failures to acquire the pointer grab.
	ErrGrab = errors.New("could not grab pointer")
	// ErrSessionUsed is returned when a session is picked from twice.
	ErrSessionUsed = errors.New("pick session already used")
)

// Result is the outcome of a successful pick.
type Result struct {
	Color      color.RGB
	Point      platform.Point
	Monitor    platform.Monitor
	HasMonitor bool
}

// Session performs exactly one pick. It is not reusable.
type Session struct {
	open   platform.Opener
	logger *slog.Logger

	mu          sync.Mutex
	state       State
	backend     platform.Backend
	releaseOnce sync.Once
}

// NewSession creates an idle session that opens its backend with open.
func NewSession(open platform.Opener, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{open: open, logger: logger, state: StateIdle}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) transition(to State) {
	s.mu.Lock()
	from := s.state
	if from != StateReleased {
		s.state = to
	}
	s.mu.Unlock()
	s.logger.Debug("pick state", "from", from.String(), "to", to.String())
}

func (s *Session) start() (platform.Backend, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, ErrSessionUsed
	}
	s.mu.Unlock()

	backend, err := s.open()
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("%w: %w", ErrDisplayOpen, err)
	}

	s.mu.Lock()
	if s.state == StateReleased {
		s.mu.Unlock()
		backend.Release()
		return nil, ErrSessionUsed
	}
	s.backend = backend
	s.mu.Unlock()
	return backend, nil
}

// Pick grabs the pointer and blocks until the user clicks, then samples the
// pixel under the click. Every display resource is released before Pick
// returns, on success and on every error path.
//
// Without a deadline or cancellation on ctx the wait is unbounded. When ctx
// is done first the backend is released, which unblocks the wait, and
// ctx.Err() is returned.
func (s *Session) Pick(ctx context.Context) (Result, error) {
	backend, err := s.start()
	if err != nil {
		return Result{}, err
	}
	defer s.Release()

	if err := backend.GrabPointer(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrGrab, err)
	}
	s.transition(StateGrabbed)

	stop := context.AfterFunc(ctx, s.Release)
	defer stop()

	s.transition(StateAwaitingInput)
	point, err := backend.WaitClick()
	if !stop() {
		// Cancellation already released the backend.
		return Result{}, ctx.Err()
	}
	if err != nil {
		return Result{}, fmt.Errorf("waiting for click: %w", err)
	}
	s.transition(StateCaptured)

	return s.sample(backend, point)
}

// PickAtPointer samples the pixel under the current pointer position
// without grabbing the pointer.
func (s *Session) PickAtPointer(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	backend, err := s.start()
	if err != nil {
		return Result{}, err
	}
	defer s.Release()

	point, err := backend.PointerPosition()
	if err != nil {
		return Result{}, err
	}
	s.transition(StateCaptured)

	return s.sample(backend, point)
}

// sample reads the pixel at point and releases the backend before returning.
func (s *Session) sample(backend platform.Backend, point platform.Point) (Result, error) {
	rgb, readErr := backend.ReadPixel(point)
	monitor, hasMonitor := backend.MonitorAt(point)
	s.Release()

	if readErr != nil {
		return Result{}, fmt.Errorf("reading pixel at (%d,%d): %w", point.X, point.Y, readErr)
	}
	s.logger.Debug("picked color", "x", point.X, "y", point.Y, "color", rgb.String())
	return Result{
		Color:      rgb,
		Point:      point,
		Monitor:    monitor,
		HasMonitor: hasMonitor,
	}, nil
}

// Release gives back every display resource held by the session. It is
// safe to call from any state, more than once, and concurrently with Pick.
func (s *Session) Release() {
	s.releaseOnce.Do(func() {
		s.mu.Lock()
		backend := s.backend
		s.state = StateReleased
		s.mu.Unlock()

		if backend != nil {
			backend.Release()
		}
		s.logger.Debug("pick state", "to", StateReleased.String())
	})
}
