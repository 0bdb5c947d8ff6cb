package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	svg2pdf "github.com/alnah/go-svg2pdf"
	"github.com/alnah/go-svg2pdf/internal/config"
	"github.com/alnah/go-svg2pdf/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Scan argv directly: maxprocs logging must be decided before flag
	// parsing, and a parse error should not suppress it.
	verbose := false
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
		}
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain dispatches commands and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 && isCommand(args[0]) {
		switch args[0] {
		case "doctor":
			return runDoctorCmd(args[1:], env)
		case "version":
			fmt.Fprintf(env.Stdout, "svg2pdf %s\n", Version)
			return ExitSuccess
		case "help":
			runHelp(args[1:], env)
			return ExitSuccess
		}
	}

	flags, positional, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		// pflag already printed the parse error and usage
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "svg2pdf %s\n", Version)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		printError(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether the argument selects a subcommand rather
// than a positional input file.
func isCommand(arg string) bool {
	switch arg {
	case "doctor", "version", "help":
		return true
	}
	return false
}

// printError writes a fatal error with an actionable hint when one applies.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
}

// hintFor picks an actionable hint for the error, or returns "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, svg2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, exec.ErrNotFound):
		return hints.ForInkscapeMissing()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, svg2pdf.ErrParse):
		return hints.ForParse()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(config.DefaultName))
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
