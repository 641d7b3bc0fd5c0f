package color

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// SwatchWidth is the number of terminal cells painted by Swatch.
const SwatchWidth = 4

// Swatch returns width blank cells painted with c as a 24-bit background.
//
// Channel bytes are written verbatim; termenv.RGBColor round-trips through
// float64 and is not byte-exact.
func Swatch(c RGB, width int) string {
	if width < 1 {
		width = SwatchWidth
	}
	return fmt.Sprintf("%s%s;2;%d;%d;%dm%s%s%sm",
		termenv.CSI, termenv.Background, c.R, c.G, c.B,
		strings.Repeat(" ", width),
		termenv.CSI, termenv.ResetSeq,
	)
}
