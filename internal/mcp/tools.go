package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/pico/internal/clipboard"
	"github.com/1broseidon/pico/internal/color"
	"github.com/1broseidon/pico/internal/config"
	"github.com/1broseidon/pico/internal/picker"
)

var errPickBusy = errors.New("another pick is already in progress")

func (s *Server) handlePickColor(ctx context.Context, _ *mcpsdk.CallToolRequest, args PickColorInput) (*mcpsdk.CallToolResult, PickColorOutput, error) {
	format, err := color.ParseFormat(args.Format)
	if err != nil {
		return nil, PickColorOutput{}, err
	}
	timeout := s.pickTimeout(args.TimeoutSeconds)

	if !s.pickMu.TryLock() {
		return nil, PickColorOutput{}, errPickBusy
	}
	defer s.pickMu.Unlock()

	env := s.environFn()
	resolved, err := resolveX11Env(env, s.config.Display)
	if err != nil {
		return nil, PickColorOutput{}, err
	}
	if err := applyXAuthority(env, resolved); err != nil {
		s.logger.Debug("failed to export XAUTHORITY", "error", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	session := picker.NewSession(s.openerFn(resolved.Display), s.logger)
	var result picker.Result
	if args.AtPointer {
		result, err = session.PickAtPointer(ctx)
	} else {
		result, err = session.Pick(ctx)
	}
	if err != nil {
		return nil, PickColorOutput{}, describePickError(err, timeout)
	}

	all := color.All(result.Color)
	out := PickColorOutput{
		Text: color.Render(result.Color, format),
		Hex:  all[color.FormatHex.String()],
		RGB:  all[color.FormatRGB.String()],
		RGBA: all[color.FormatRGBA.String()],
		HSL:  all[color.FormatHSL.String()],
		X:    result.Point.X,
		Y:    result.Point.Y,
	}
	if result.HasMonitor {
		out.Monitor = result.Monitor.Name
	}

	copyText := s.config.Clipboard.Enabled
	if args.Copy != nil {
		copyText = *args.Copy
	}
	if copyText {
		out.Copied = clipboard.Copy(s.clipboard, out.Text, s.logger)
	}

	return nil, out, nil
}

func (s *Server) handleConvertColor(_ context.Context, _ *mcpsdk.CallToolRequest, args ConvertColorInput) (*mcpsdk.CallToolResult, ConvertColorOutput, error) {
	format, err := color.ParseFormat(args.Format)
	if err != nil {
		return nil, ConvertColorOutput{}, err
	}
	c, err := color.Parse(args.Color)
	if err != nil {
		return nil, ConvertColorOutput{}, err
	}
	all := color.All(c)
	return nil, ConvertColorOutput{
		Text: color.Render(c, format),
		Hex:  all[color.FormatHex.String()],
		RGB:  all[color.FormatRGB.String()],
		RGBA: all[color.FormatRGBA.String()],
		HSL:  all[color.FormatHSL.String()],
	}, nil
}

// pickTimeout resolves the wait bound for a pick. The result is never zero.
func (s *Server) pickTimeout(requestedSeconds int) time.Duration {
	timeout := DefaultPickTimeout
	switch {
	case requestedSeconds > 0:
		timeout = config.PickTimeout(requestedSeconds)
	case s.config.TimeoutSeconds > 0:
		timeout = config.PickTimeout(s.config.TimeoutSeconds)
	}
	if timeout > MaxPickTimeout {
		timeout = MaxPickTimeout
	}
	return timeout
}

func describePickError(err error, timeout time.Duration) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("no click within %s", timeout)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("pick cancelled")
	default:
		return err
	}
}
