package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/pico/internal/config"
	"github.com/1broseidon/pico/internal/tui"
)

var runEditorFn = tui.Run

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pico config path [--path PATH]")
	fmt.Fprintln(w, "  pico config validate [--path PATH]")
	fmt.Fprintln(w, "  pico config print [--path PATH] [--defaults]")
	fmt.Fprintln(w, "  pico config explain [--path PATH] <yaml.path>")
	fmt.Fprintln(w, "  pico config edit [--path PATH]")
}

func runConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(stderr)
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", "Config file path (default: $PICO_CONFIG or ~/.config/pico/config.yaml)")
	printDefaults := fs.Bool("defaults", false, "Print built-in defaults (print only)")
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	switch args[0] {
	case "path":
		resolved, err := config.ResolvePath(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, resolved)
		return 0

	case "validate":
		if _, err := config.Load(*path); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, "config: ok")
		return 0

	case "print":
		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := config.Load(*path)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		writeYAML(stdout, data)
		return 0

	case "explain":
		if fs.NArg() < 1 {
			fmt.Fprintln(stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := config.Load(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		fmt.Fprintf(stdout, "path: %s\n", queryPath)
		fmt.Fprintf(stdout, "source: %s\n", config.FormatSource(src))
		fmt.Fprintln(stdout, "value:")
		writeYAML(stdout, out)
		return 0

	case "edit":
		resolved, err := config.ResolvePath(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		res, err := config.LoadFromPath(resolved)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if err := runEditorFn(resolved, res); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}
