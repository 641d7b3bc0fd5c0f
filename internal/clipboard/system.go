package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

var (
	systemWriteFn       = clipboard.WriteAll
	systemUnsupportedFn = func() bool { return clipboard.Unsupported }
)

// systemWriter delegates to atotto/clipboard, which drives xclip, xsel,
// wl-copy or termux-clipboard-set, whichever it finds.
type systemWriter struct{}

func (systemWriter) Name() string { return BackendSystem }

func (systemWriter) Write(text string) error {
	if systemUnsupportedFn() {
		return errors.New("no system clipboard utility available")
	}
	return systemWriteFn(text)
}
