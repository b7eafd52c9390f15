package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// renderFlags holds all flags for the md2img CLI.
type renderFlags struct {
	config     string
	mode       string
	threshold  int
	backend    string
	serviceURL string
	timeout    int
	title      string
	out        string
	force      bool
	verbose    bool
	version    bool

	input string // positional: markdown file, "-" or empty = stdin
}

// thresholdUnset marks --threshold as not explicitly given, so a config
// file value is not clobbered by the flag default. Valid thresholds are
// >= 0; -1 is safely outside that range.
const thresholdUnset = -1

// parseFlags parses CLI arguments into renderFlags.
func parseFlags(args []string) (*renderFlags, error) {
	f := &renderFlags{}

	fs := flag.NewFlagSet("md2img", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.mode, "mode", "m", "", "render mode: plain, rendered")
	fs.IntVar(&f.threshold, "threshold", thresholdUnset, "character count above which rendering triggers (0 = always)")
	fs.StringVar(&f.backend, "backend", "", "image backend: chrome, service")
	fs.StringVar(&f.serviceURL, "service-url", "", "hosted render service endpoint (backend=service)")
	fs.IntVar(&f.timeout, "timeout", 0, "backend timeout in seconds (0 = default)")
	fs.StringVarP(&f.title, "title", "t", "Result", "document title shown above the rendered content")
	fs.StringVarP(&f.out, "out", "o", "", "image output path (default: input name with .jpg)")
	fs.BoolVar(&f.force, "force", false, "render regardless of the threshold policy")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed diagnostics")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
		f.input = "-"
	case 1:
		f.input = fs.Arg(0)
	default:
		return nil, fmt.Errorf("%w: got %d positional arguments", ErrTooManyArgs, fs.NArg())
	}

	return f, nil
}
