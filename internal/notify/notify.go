// Package notify sends desktop notifications for picked colors.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

const appName = "pico"

var notifyFn = beeep.Notify

// Send shows a desktop notification with the given title and message.
func Send(title, message string) error {
	return notifyFn(title, message, "")
}

// Picked announces a picked color. copied reports whether it reached the
// clipboard. Failures are logged and otherwise ignored.
func Picked(text string, copied bool, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if copied {
		text += " copied to clipboard"
	}
	if err := Send(appName, text); err != nil {
		logger.Debug("notification failed", "error", err)
	}
}
