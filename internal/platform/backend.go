package platform

import "github.com/1broseidon/pico/internal/color"

// Point is an absolute position in root-window (screen) coordinates.
type Point struct {
	X int
	Y int
}

// Monitor names the physical output a point was picked on.
type Monitor struct {
	ID   int
	Name string
}

// Backend abstracts the display-server operations a color pick needs.
//
// A Backend owns one display connection together with the cursor and the
// pointer grab acquired through it. Release frees all of them; it must be
// safe to call more than once and from any state.
type Backend interface {
	// GrabPointer shows the crosshair cursor and grabs button presses over
	// the whole screen.
	GrabPointer() error
	// WaitClick blocks until a button press arrives and returns its
	// position.
	WaitClick() (Point, error)
	// PointerPosition returns the current pointer position without grabbing.
	PointerPosition() (Point, error)
	// ReadPixel samples the single pixel at p.
	ReadPixel(p Point) (color.RGB, error)
	// MonitorAt reports which output shows p, when known.
	MonitorAt(p Point) (Monitor, bool)
	// Release ungrabs the pointer, frees the cursor and closes the connection.
	Release()
}

// Opener opens a fresh Backend for one pick.
type Opener func() (Backend, error)
