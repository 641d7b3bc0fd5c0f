package x11

import (
	"errors"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// ErrConnectionClosed is returned when the event queue ends because the
// connection was closed before a button press arrived.
var ErrConnectionClosed = errors.New("x11 connection closed")

// EventSource delivers X events in arrival order. *xgb.Conn implements it.
type EventSource interface {
	WaitForEvent() (xgb.Event, xgb.Error)
}

// Press is the root-relative position of a button press.
type Press struct {
	X, Y   int
	Button int
}

// WaitButtonPress blocks until a ButtonPress event arrives and returns its
// root coordinates. Other events are discarded. Protocol errors from
// earlier unchecked requests are logged and skipped.
func WaitButtonPress(src EventSource, logger *slog.Logger) (Press, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for {
		ev, xerr := src.WaitForEvent()
		if ev == nil && xerr == nil {
			return Press{}, ErrConnectionClosed
		}
		if xerr != nil {
			logger.Debug("ignoring x11 error while waiting for click", "error", xerr.Error())
			continue
		}

		press, ok := ev.(xproto.ButtonPressEvent)
		if !ok {
			logger.Debug("discarding event", "event", ev.String())
			continue
		}
		return Press{
			X:      int(press.RootX),
			Y:      int(press.RootY),
			Button: int(press.Detail),
		}, nil
	}
}

// WaitButtonPress blocks on this connection's event queue. See the
// package-level WaitButtonPress.
func (c *Connection) WaitButtonPress(logger *slog.Logger) (Press, error) {
	return WaitButtonPress(c.XUtil.Conn(), logger)
}

// PointerPosition returns the pointer's current root coordinates.
func (c *Connection) PointerPosition() (int, int, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}
