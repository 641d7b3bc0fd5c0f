package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// ErrUnsupportedVisual is returned when the root window does not use a
// 24-bit 0xRRGGBB true-color layout.
var ErrUnsupportedVisual = errors.New("unsupported visual: 24-bit RGB true-color required")

// ErrPointOutOfBounds is returned for coordinates outside the root window.
var ErrPointOutOfBounds = errors.New("point outside root window")

// pixelLayout describes how one ZPixmap pixel is stored in a GetImage reply.
type pixelLayout struct {
	bitsPerPixel int
	msbFirst     bool
}

// ReadPixel captures the single pixel at root coordinates (x, y) and returns
// it packed as 0xRRGGBB (higher bits from 32bpp padding included).
func (c *Connection) ReadPixel(x, y int) (uint32, error) {
	setup := c.XUtil.Setup()
	screen := c.Screen()

	if x < 0 || y < 0 || x >= int(screen.WidthInPixels) || y >= int(screen.HeightInPixels) {
		return 0, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrPointOutOfBounds, x, y, screen.WidthInPixels, screen.HeightInPixels)
	}

	layout, err := rootPixelLayout(setup, screen)
	if err != nil {
		return 0, err
	}

	reply, err := xproto.GetImage(
		c.XUtil.Conn(),
		xproto.ImageFormatZPixmap,
		xproto.Drawable(c.Root),
		int16(x), int16(y),
		1, 1,
		0xFFFFFFFF, // all planes
	).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to read pixel at (%d,%d): %w", x, y, err)
	}

	return packedPixel(reply.Data, layout)
}

// rootPixelLayout validates the root visual and returns its pixel storage.
func rootPixelLayout(setup *xproto.SetupInfo, screen *xproto.ScreenInfo) (pixelLayout, error) {
	depth := screen.RootDepth
	if depth != 24 && depth != 32 {
		return pixelLayout{}, fmt.Errorf("%w: root depth is %d", ErrUnsupportedVisual, depth)
	}

	visual := findVisual(screen, screen.RootVisual)
	if visual == nil {
		return pixelLayout{}, fmt.Errorf("%w: root visual 0x%x not listed by the server", ErrUnsupportedVisual, screen.RootVisual)
	}
	if visual.Class != xproto.VisualClassTrueColor && visual.Class != xproto.VisualClassDirectColor {
		return pixelLayout{}, fmt.Errorf("%w: root visual class is %d", ErrUnsupportedVisual, visual.Class)
	}
	if visual.RedMask != 0xFF0000 || visual.GreenMask != 0x00FF00 || visual.BlueMask != 0x0000FF {
		return pixelLayout{}, fmt.Errorf("%w: channel masks %06x/%06x/%06x",
			ErrUnsupportedVisual, visual.RedMask, visual.GreenMask, visual.BlueMask)
	}

	bpp := 0
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			bpp = int(f.BitsPerPixel)
			break
		}
	}
	if bpp != 24 && bpp != 32 {
		return pixelLayout{}, fmt.Errorf("%w: %d bits per pixel at depth %d", ErrUnsupportedVisual, bpp, depth)
	}

	return pixelLayout{
		bitsPerPixel: bpp,
		msbFirst:     setup.ImageByteOrder == xproto.ImageOrderMSBFirst,
	}, nil
}

func findVisual(screen *xproto.ScreenInfo, id xproto.Visualid) *xproto.VisualInfo {
	for _, d := range screen.AllowedDepths {
		for i := range d.Visuals {
			if d.Visuals[i].VisualId == id {
				return &d.Visuals[i]
			}
		}
	}
	return nil
}

// packedPixel assembles the first pixel of a ZPixmap buffer.
func packedPixel(data []byte, layout pixelLayout) (uint32, error) {
	n := layout.bitsPerPixel / 8
	if len(data) < n {
		return 0, fmt.Errorf("short image reply: %d bytes, want %d", len(data), n)
	}

	var v uint32
	if layout.msbFirst {
		for i := 0; i < n; i++ {
			v = v<<8 | uint32(data[i])
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint32(data[i])
		}
	}
	return v, nil
}
