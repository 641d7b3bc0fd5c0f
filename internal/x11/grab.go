package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// GrabError reports a pointer grab refused by the X server.
type GrabError struct {
	Status byte
}

func (e *GrabError) Error() string {
	return fmt.Sprintf("pointer grab failed: %s", grabStatusText(e.Status))
}

func grabStatusText(status byte) string {
	switch status {
	case xproto.GrabStatusAlreadyGrabbed:
		return "already grabbed by another client"
	case xproto.GrabStatusInvalidTime:
		return "invalid time"
	case xproto.GrabStatusNotViewable:
		return "grab window not viewable"
	case xproto.GrabStatusFrozen:
		return "pointer frozen by another grab"
	default:
		return fmt.Sprintf("status %d", status)
	}
}

// CreateCrosshair creates the crosshair cursor glyph and installs it on the
// root window. The caller frees it with FreeCursor.
func (c *Connection) CreateCrosshair() (xproto.Cursor, error) {
	cursor, err := xcursor.CreateCursor(c.XUtil, xcursor.Crosshair)
	if err != nil {
		return 0, fmt.Errorf("failed to create crosshair cursor: %w", err)
	}

	err = xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(),
		c.Root,
		xproto.CwCursor,
		[]uint32{uint32(cursor)},
	).Check()
	if err != nil {
		xproto.FreeCursor(c.XUtil.Conn(), cursor)
		return 0, fmt.Errorf("failed to define root cursor: %w", err)
	}
	return cursor, nil
}

// FreeCursor restores the root window's default cursor and frees cursor.
func (c *Connection) FreeCursor(cursor xproto.Cursor) {
	if cursor == 0 {
		return
	}
	conn := c.XUtil.Conn()
	xproto.ChangeWindowAttributes(conn, c.Root, xproto.CwCursor, []uint32{xproto.CursorNone})
	xproto.FreeCursor(conn, cursor)
}

// GrabPointer actively grabs button presses over the whole root window,
// showing cursor for the duration of the grab. The grab request is
// synchronous: a non-success status is returned as *GrabError.
func (c *Connection) GrabPointer(cursor xproto.Cursor) error {
	reply, err := xproto.GrabPointer(
		c.XUtil.Conn(),
		true,   // owner_events
		c.Root, // grab_window
		uint16(xproto.EventMaskButtonPress),
		xproto.GrabModeAsync, // pointer_mode
		xproto.GrabModeAsync, // keyboard_mode
		xproto.WindowNone,    // confine_to
		cursor,
		xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		return fmt.Errorf("pointer grab request failed: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return &GrabError{Status: reply.Status}
	}
	return nil
}

// UngrabPointer releases the pointer grab and waits for the server to
// acknowledge it.
func (c *Connection) UngrabPointer() error {
	return xproto.UngrabPointerChecked(c.XUtil.Conn(), xproto.TimeCurrentTime).Check()
}
