// Package mcp exposes color picking and conversion as MCP tools.
package mcp

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/pico/internal/clipboard"
	"github.com/1broseidon/pico/internal/config"
	"github.com/1broseidon/pico/internal/platform"
)

const (
	ServerName    = "pico"
	ServerVersion = "0.1.0"

	DefaultPickTimeout = 60 * time.Second
	MaxPickTimeout     = 10 * time.Minute
)

// Server is the MCP server for pico.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	logger    *slog.Logger
	clipboard clipboard.Writer

	// pickMu admits one pointer grab at a time.
	pickMu sync.Mutex

	openerFn  func(display string) platform.Opener
	environFn func() []string
}

// NewServer creates a new MCP server that picks from the local X display.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	writer, err := clipboard.New(cfg.ClipboardOptions())
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:    cfg,
		logger:    logger,
		clipboard: writer,
		openerFn: func(display string) platform.Opener {
			return platform.LinuxOpener(display, logger)
		},
		environFn: os.Environ,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pick_color",
		Description: "Show a crosshair on the user's X11 screen and return the color of the pixel they click, in hex, rgb, rgba and hsl notation. Blocks until the click or the timeout. Set at_pointer to sample under the current pointer without waiting. The text field uses the requested format and is copied to the clipboard unless copy is false.",
	}, s.handlePickColor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "convert_color",
		Description: "Convert a color given as #RRGGBB, #RGB, r,g,b or rgb(r, g, b) into hex, rgb, rgba and hsl notation. Does not need a display.",
	}, s.handleConvertColor)
}
