package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/1broseidon/pico/internal/color"
	"github.com/1broseidon/pico/internal/config"
)

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pico convert [--rgb|--rgba|--hsl|--all] <color>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Accepted colors: #RRGGBB, RRGGBB, #RGB, r,g,b, rgb(r, g, b)")
}

func runConvert(args []string, stdout, stderr io.Writer) int {
	var (
		opts       pickOptions
		all        bool
		positional []string
	)
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	fs.BoolVar(&opts.rgb, "rgb", false, "Print rgb(r, g, b)")
	fs.BoolVar(&opts.rgba, "rgba", false, "Print rgba(r, g, b, 1.0)")
	fs.BoolVar(&opts.hsl, "hsl", false, "Print hsl(h, s%, l%)")
	fs.BoolVar(&all, "all", false, "Print every format")
	fs.StringVar(&opts.configPath, "config", "", "Config file path")

	// Flags may follow the color, e.g. "pico convert '#123456' --hsl".
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				printConvertUsage(stdout)
				return 0
			}
			printConvertUsage(stderr)
			return 2
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}
	if len(positional) == 0 {
		printConvertUsage(stderr)
		return 2
	}

	c, err := color.Parse(strings.Join(positional, " "))
	if err != nil {
		fmt.Fprintf(stderr, "pico: %v\n", err)
		return 2
	}

	res, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "pico: %v\n", err)
		return 1
	}
	swatch := showSwatch(res.Config.Swatch, stdout)

	if all {
		if swatch {
			fmt.Fprintln(stdout, color.Swatch(c, color.SwatchWidth))
		}
		for _, f := range color.Formats {
			fmt.Fprintf(stdout, "%-4s  %s\n", f, color.Render(c, f))
		}
		return 0
	}

	format := resolveFormat("pico", opts, res.Config.Format())
	fmt.Fprintln(stdout, outputLine(c, color.Render(c, format), swatch))
	return 0
}
