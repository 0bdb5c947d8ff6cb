package main

import (
	"os"
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	verbose    bool
	quiet      bool
	timeout    time.Duration
	config     string
	engine     string
	inkscape   string
	svgOnly    bool
	noInline   bool
	noPlainSVG bool
	version    bool
}

// parseFlags parses command-line flags and returns them together with
// the remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("svg2pdf", flag.ContinueOnError)
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "show per-reference detail and timing")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "only show errors")
	fs.DurationVarP(&flags.timeout, "timeout", "t", 0, "PDF export timeout (e.g., 30s, 2m)")
	fs.StringVarP(&flags.config, "config", "c", "", "config file name or path")
	fs.StringVar(&flags.engine, "engine", "", "PDF engine: inkscape or chrome")
	fs.StringVar(&flags.inkscape, "inkscape", "", "Inkscape binary name or path")
	fs.BoolVar(&flags.svgOnly, "svg-only", false, "write the flattened SVG instead of a PDF")
	fs.BoolVar(&flags.noInline, "no-inline", false, "keep image references instead of inlining them")
	fs.BoolVar(&flags.noPlainSVG, "no-plain-svg", false, "skip Inkscape plain SVG pre-conversion")
	fs.BoolVar(&flags.version, "version", false, "show version information")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return flags, fs.Args(), nil
}
