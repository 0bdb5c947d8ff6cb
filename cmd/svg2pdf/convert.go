package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	svg2pdf "github.com/alnah/go-svg2pdf"
	"github.com/alnah/go-svg2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoOutput         = errors.New("no output specified")
	ErrTooManyArgs      = errors.New("too many arguments")
	ErrReadInput        = errors.New("failed to read SVG file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrInvalidExtension = errors.New("input must have .svg extension")
)

// filePermissions for output files: rw-r--r--.
const filePermissions = 0o644

// runConvert performs a single conversion from inputPath to outputPath.
func runConvert(ctx context.Context, args []string, flags *cliFlags, env *Environment) error {
	inputPath, outputPath, err := resolveArgs(args)
	if err != nil {
		return err
	}
	if err := validateSVGExtension(inputPath); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfigFor(flags, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}
	converter, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = converter.Close() }()

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	// Relative references in the document resolve against its own directory.
	sourceDir, err := filepath.Abs(filepath.Dir(inputPath))
	if err != nil {
		return fmt.Errorf("resolving source directory: %w", err)
	}

	start := time.Now()
	result, err := converter.Convert(ctx, svg2pdf.Input{
		SVG:       string(content),
		SourceDir: sourceDir,
		SVGOnly:   flags.svgOnly,
	})
	if err != nil {
		return err
	}

	reportReferences(result, cfg, env)

	output := result.PDF
	if flags.svgOnly {
		output = result.SVG
	}
	// #nosec G306 -- outputs are meant to be readable
	if err := os.WriteFile(outputPath, output, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	switch {
	case cfg.Quiet:
	case cfg.Verbose:
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n",
			inputPath, outputPath, time.Since(start).Round(time.Millisecond))
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
	}
	return nil
}

// resolveArgs extracts the input and output paths from positional args.
func resolveArgs(args []string) (inputPath, outputPath string, err error) {
	switch len(args) {
	case 0:
		return "", "", ErrNoInput
	case 1:
		return "", "", ErrNoOutput
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrTooManyArgs, args[2])
	}
}

// validateSVGExtension checks that the input has a .svg extension.
func validateSVGExtension(path string) error {
	if ext := filepath.Ext(path); !strings.EqualFold(ext, ".svg") {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// loadConfigFor loads the config selected by flag, env var, or discovery.
// An explicitly named config must resolve; the default one is optional.
func loadConfigFor(flags *cliFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var (
		cfg *config.Config
		err error
	)
	if name == "" {
		cfg, err = config.LoadDefault()
	} else {
		cfg, err = config.LoadConfig(name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Flag values win.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.engine != "" {
		cfg.Engine = flags.engine
	}
	if flags.inkscape != "" {
		cfg.Inkscape = flags.inkscape
	}
	if flags.timeout > 0 {
		cfg.Timeout = flags.timeout.String()
	}
	if flags.noInline {
		cfg.Inline = false
	}
	if flags.noPlainSVG {
		cfg.PlainSVG = false
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	if flags.quiet {
		cfg.Quiet = true
	}
}

// buildOptions translates a validated config into converter options.
func buildOptions(cfg *config.Config) ([]svg2pdf.Option, error) {
	opts := []svg2pdf.Option{
		svg2pdf.WithInlining(cfg.Inline),
		svg2pdf.WithPlainSVG(cfg.PlainSVG),
	}
	if cfg.Engine != "" {
		opts = append(opts, svg2pdf.WithEngine(svg2pdf.Engine(cfg.Engine)))
	}
	if cfg.Inkscape != "" {
		opts = append(opts, svg2pdf.WithInkscapeBinary(cfg.Inkscape))
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, svg2pdf.WithTimeout(timeout))
	}
	return opts, nil
}

// reportReferences prints pipeline warnings and, in verbose mode,
// a line per image reference.
func reportReferences(result *svg2pdf.ConvertResult, cfg *config.Config, env *Environment) {
	if !cfg.Quiet {
		for _, w := range result.Warnings {
			fmt.Fprintf(env.Stderr, "warning: %s\n", w)
		}
		for _, ref := range result.References {
			if ref.Err != nil {
				fmt.Fprintf(env.Stderr, "warning: %s: %v\n", ref.Href, ref.Err)
			}
		}
	}

	if !cfg.Verbose {
		return
	}
	if result.PlainSVG {
		fmt.Fprintln(env.Stdout, "plain SVG pre-conversion applied")
	}
	for _, ref := range result.References {
		fmt.Fprintf(env.Stdout, "%s: %s (%s)\n", ref.Href, ref.Status, ref.Kind)
	}
}
