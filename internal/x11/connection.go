package x11

import (
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection owns the X11 connection and the root window of its default screen.
type Connection struct {
	XUtil       *xgbutil.XUtil
	Root        xproto.Window
	ScreenIndex int

	closeOnce sync.Once
}

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil:       xu,
		Root:        xu.RootWin(),
		ScreenIndex: xu.Conn().DefaultScreen,
	}, nil
}

// Screen returns the setup information of the connection's default screen.
func (c *Connection) Screen() *xproto.ScreenInfo {
	return c.XUtil.Screen()
}

// Close disconnects from the X11 server. Only the first call has an effect.
func (c *Connection) Close() {
	if c == nil || c.XUtil == nil {
		return
	}
	c.closeOnce.Do(func() {
		c.XUtil.Conn().Close()
	})
}
