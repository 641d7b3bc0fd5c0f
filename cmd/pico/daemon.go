package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/pico/internal/config"
	"github.com/1broseidon/pico/internal/daemon"
	"github.com/1broseidon/pico/internal/picker"
)

var runDaemonFn = daemon.Run

func runDaemon(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Config file path")
	hotkey := fs.String("hotkey", "", "Key sequence that starts a pick (default: config hotkey)")
	verbose := fs.Bool("verbose", false, "Debug logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: pico daemon [--hotkey SEQ] [--config PATH] [--verbose]")
		fmt.Fprintln(fs.Output(), "")
		fmt.Fprintln(fs.Output(), "Stay resident and pick a color whenever the hotkey is pressed.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return 2
	}

	res, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "pico: %v\n", err)
		return 1
	}
	cfg := res.Config
	if *hotkey != "" {
		cfg.Hotkey = *hotkey
	}
	logger := newLogger(stderr, cfg, *verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runDaemonFn(ctx, cfg, logger); err != nil {
		if errors.Is(err, picker.ErrDisplayOpen) {
			fmt.Fprintln(stderr, "pico: failed to open X display")
		} else {
			fmt.Fprintf(stderr, "pico: %v\n", err)
		}
		return 1
	}
	return 0
}
