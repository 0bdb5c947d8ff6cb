package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: svg2pdf <input.svg> <output.pdf> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flatten linked vector images into an SVG document and export it as PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor     Check Inkscape, browser, and environment readiness")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <dur>       PDF export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --engine <name>       PDF engine: inkscape, chrome")
	fmt.Fprintln(w, "      --inkscape <path>     Inkscape binary name or path")
	fmt.Fprintln(w, "      --svg-only            Write the flattened SVG, skip PDF export")
	fmt.Fprintln(w, "      --no-inline           Keep image references instead of inlining them")
	fmt.Fprintln(w, "      --no-plain-svg        Skip Inkscape plain SVG pre-conversion")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-reference detail and timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SVG2PDF_CONFIG, SVG2PDF_ENGINE, SVG2PDF_INKSCAPE, SVG2PDF_TIMEOUT")
	fmt.Fprintln(w, "  override config file values; flags win over both.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'svg2pdf help <command>' for details on a specific command.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: svg2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that Inkscape, a browser, and the environment are ready")
		fmt.Fprintln(env.Stdout, "for conversion. Use --json for machine-readable output.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: svg2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: svg2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
