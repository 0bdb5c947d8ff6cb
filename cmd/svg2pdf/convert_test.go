package main

// Notes:
// - runConvert: tested end-to-end through a stub Converter injected via
//   Environment.NewConverter; no real Inkscape or browser is involved.
// - Tests that reach config loading isolate the working directory and
//   XDG_CONFIG_HOME so a developer's real config cannot leak in; those
//   tests cannot use t.Parallel().
// - resolveArgs/validateSVGExtension/mergeFlags/buildOptions are pure and
//   tested as tables.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	svg2pdf "github.com/alnah/go-svg2pdf"
	"github.com/alnah/go-svg2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// Test infrastructure
// ---------------------------------------------------------------------------

// stubConverter implements Converter with canned results.
type stubConverter struct {
	result   *svg2pdf.ConvertResult
	err      error
	gotInput svg2pdf.Input
	closed   bool
}

func (s *stubConverter) Convert(_ context.Context, in svg2pdf.Input) (*svg2pdf.ConvertResult, error) {
	s.gotInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubConverter) Close() error {
	s.closed = true
	return nil
}

// testEnv returns an Environment wired to the stub plus capture buffers.
func testEnv(conv Converter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		NewConverter: func(_ ...svg2pdf.Option) (Converter, error) {
			return conv, nil
		},
	}
	return env, &stdout, &stderr
}

// isolateConfig moves the test into an empty temp directory and points
// XDG_CONFIG_HOME at another one, so neither a svg2pdf.yaml in the repo
// nor the developer's user config can influence the test. Returns the
// working directory. Incompatible with t.Parallel().
func isolateConfig(t *testing.T) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SVG2PDF_CONFIG", "")
	t.Setenv("SVG2PDF_ENGINE", "")
	t.Setenv("SVG2PDF_INKSCAPE", "")
	t.Setenv("SVG2PDF_TIMEOUT", "")

	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("setup: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return wd
}

// writeInputSVG writes a minimal SVG document into the current directory.
func writeInputSVG(t *testing.T, name string) {
	t.Helper()
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><rect width="10" height="10"/></svg>`
	if err := os.WriteFile(name, []byte(svg), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveArgs - Positional argument validation
// ---------------------------------------------------------------------------

func TestResolveArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantInput  string
		wantOutput string
		wantErr    error
	}{
		{"no args", []string{}, "", "", ErrNoInput},
		{"only input", []string{"in.svg"}, "", "", ErrNoOutput},
		{"input and output", []string{"in.svg", "out.pdf"}, "in.svg", "out.pdf", nil},
		{"three args", []string{"in.svg", "out.pdf", "extra"}, "", "", ErrTooManyArgs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input, output, err := resolveArgs(tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if input != tt.wantInput {
				t.Errorf("input = %q, want %q", input, tt.wantInput)
			}
			if output != tt.wantOutput {
				t.Errorf("output = %q, want %q", output, tt.wantOutput)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateSVGExtension - Input extension check
// ---------------------------------------------------------------------------

func TestValidateSVGExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"lowercase extension", "drawing.svg", false},
		{"uppercase extension", "DRAWING.SVG", false},
		{"mixed case extension", "drawing.Svg", false},
		{"nested path", "assets/icons/logo.svg", false},
		{"wrong extension", "drawing.png", true},
		{"no extension", "drawing", true},
		{"svg in name only", "svg-file.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateSVGExtension(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidExtension) {
					t.Fatalf("err = %v, want ErrInvalidExtension", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("zero flags leave config untouched", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeFlags(&cliFlags{}, cfg)

		if cfg.Engine != "inkscape" {
			t.Errorf("Engine = %q, want inkscape", cfg.Engine)
		}
		if !cfg.Inline || !cfg.PlainSVG {
			t.Error("Inline and PlainSVG defaults should survive an empty flag set")
		}
		if cfg.Verbose || cfg.Quiet {
			t.Error("Verbose and Quiet should stay false")
		}
	})

	t.Run("flags override config values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Engine = "inkscape"
		cfg.Inkscape = "/from/config"
		cfg.Timeout = "30s"

		flags := &cliFlags{
			engine:   "chrome",
			inkscape: "/from/flag",
			timeout:  2 * time.Minute,
		}
		mergeFlags(flags, cfg)

		if cfg.Engine != "chrome" {
			t.Errorf("Engine = %q, want chrome", cfg.Engine)
		}
		if cfg.Inkscape != "/from/flag" {
			t.Errorf("Inkscape = %q, want /from/flag", cfg.Inkscape)
		}
		if cfg.Timeout != "2m0s" {
			t.Errorf("Timeout = %q, want 2m0s", cfg.Timeout)
		}
	})

	t.Run("negative flags disable pipeline stages", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeFlags(&cliFlags{noInline: true, noPlainSVG: true}, cfg)

		if cfg.Inline {
			t.Error("Inline should be false after --no-inline")
		}
		if cfg.PlainSVG {
			t.Error("PlainSVG should be false after --no-plain-svg")
		}
	})

	t.Run("verbosity flags only enable", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Verbose = true
		mergeFlags(&cliFlags{quiet: true}, cfg)

		// A quiet flag must not clear verbose set by config; both can be
		// true, and runConvert treats quiet as the stronger of the two.
		if !cfg.Verbose {
			t.Error("Verbose from config should survive")
		}
		if !cfg.Quiet {
			t.Error("Quiet from flag should be set")
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildOptions - Config to converter options
// ---------------------------------------------------------------------------

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults produce inline and plain svg options", func(t *testing.T) {
		t.Parallel()

		opts, err := buildOptions(config.DefaultConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// inlining, plain svg, engine (default config names one)
		if len(opts) != 3 {
			t.Errorf("got %d options, want 3", len(opts))
		}
	})

	t.Run("full config produces all options", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Engine = "chrome"
		cfg.Inkscape = "/usr/bin/inkscape"
		cfg.Timeout = "45s"

		opts, err := buildOptions(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(opts) != 5 {
			t.Errorf("got %d options, want 5", len(opts))
		}
	})

	t.Run("malformed timeout returns error", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Timeout = "whenever"

		if _, err := buildOptions(cfg); !errors.Is(err, config.ErrInvalidConfig) {
			t.Fatalf("err = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("options are accepted by the converter", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Timeout = "45s"
		opts, err := buildOptions(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		conv, err := svg2pdf.New(opts...)
		if err != nil {
			t.Fatalf("New() rejected built options: %v", err)
		}
		defer conv.Close()
	})
}

// ---------------------------------------------------------------------------
// TestReportReferences - Warning and verbose output
// ---------------------------------------------------------------------------

func TestReportReferences(t *testing.T) {
	t.Parallel()

	result := &svg2pdf.ConvertResult{
		PlainSVG: true,
		Warnings: []string{"plain SVG pre-conversion skipped: inkscape not found"},
		References: []svg2pdf.Reference{
			{Href: "logo.svg", Kind: svg2pdf.KindVector, Status: svg2pdf.StatusInlined},
			{
				Href:   "missing.svg",
				Kind:   svg2pdf.KindVector,
				Status: svg2pdf.StatusMissing,
				Err:    svg2pdf.ErrMissingReference,
			},
		},
	}

	t.Run("default prints warnings to stderr only", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		env := &Environment{Stdout: &stdout, Stderr: &stderr}
		reportReferences(result, config.DefaultConfig(), env)

		if !strings.Contains(stderr.String(), "warning: plain SVG pre-conversion skipped") {
			t.Errorf("stderr should contain pipeline warning, got %q", stderr.String())
		}
		if !strings.Contains(stderr.String(), "warning: missing.svg") {
			t.Errorf("stderr should contain reference warning, got %q", stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout should be empty without --verbose, got %q", stdout.String())
		}
	})

	t.Run("quiet suppresses warnings", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		env := &Environment{Stdout: &stdout, Stderr: &stderr}
		cfg := config.DefaultConfig()
		cfg.Quiet = true
		reportReferences(result, cfg, env)

		if stderr.Len() != 0 {
			t.Errorf("stderr should be empty with --quiet, got %q", stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout should be empty with --quiet, got %q", stdout.String())
		}
	})

	t.Run("verbose prints per-reference lines", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		env := &Environment{Stdout: &stdout, Stderr: &stderr}
		cfg := config.DefaultConfig()
		cfg.Verbose = true
		reportReferences(result, cfg, env)

		out := stdout.String()
		if !strings.Contains(out, "plain SVG pre-conversion applied") {
			t.Errorf("verbose output should mention plain SVG step, got %q", out)
		}
		if !strings.Contains(out, "logo.svg: inlined (vector)") {
			t.Errorf("verbose output should list inlined reference, got %q", out)
		}
		if !strings.Contains(out, "missing.svg: missing (vector)") {
			t.Errorf("verbose output should list missing reference, got %q", out)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfigFor - Config source selection
// ---------------------------------------------------------------------------

func TestLoadConfigFor(t *testing.T) {
	// NO t.Parallel() - isolateConfig changes wd and env

	t.Run("defaults when nothing configured", func(t *testing.T) {
		isolateConfig(t)

		cfg, err := loadConfigFor(&cliFlags{}, &envConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Engine != "inkscape" {
			t.Errorf("Engine = %q, want inkscape", cfg.Engine)
		}
	})

	t.Run("explicit flag path must resolve", func(t *testing.T) {
		isolateConfig(t)

		_, err := loadConfigFor(&cliFlags{config: "./nope.yaml"}, &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("err = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("env config path used when flag empty", func(t *testing.T) {
		isolateConfig(t)

		if err := os.WriteFile("env.yaml", []byte("engine: chrome\n"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := loadConfigFor(&cliFlags{}, &envConfig{ConfigPath: "./env.yaml"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Engine != "chrome" {
			t.Errorf("Engine = %q, want chrome (from env config)", cfg.Engine)
		}
	})

	t.Run("flag path wins over env path", func(t *testing.T) {
		isolateConfig(t)

		if err := os.WriteFile("env.yaml", []byte("engine: chrome\n"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile("flag.yaml", []byte("engine: inkscape\ntimeout: 45s\n"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := loadConfigFor(&cliFlags{config: "./flag.yaml"}, &envConfig{ConfigPath: "./env.yaml"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Engine != "inkscape" || cfg.Timeout != "45s" {
			t.Errorf("got Engine=%q Timeout=%q, want flag.yaml values", cfg.Engine, cfg.Timeout)
		}
	})

	t.Run("default config in cwd picked up", func(t *testing.T) {
		isolateConfig(t)

		if err := os.WriteFile("svg2pdf.yaml", []byte("verbose: true\n"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := loadConfigFor(&cliFlags{}, &envConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.Verbose {
			t.Error("Verbose should come from discovered svg2pdf.yaml")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunConvert - End-to-end conversion through a stub converter
// ---------------------------------------------------------------------------

func TestRunConvert(t *testing.T) {
	// NO t.Parallel() - isolateConfig changes wd and env

	ctx := context.Background()

	t.Run("writes pdf and reports creation", func(t *testing.T) {
		wd := isolateConfig(t)
		writeInputSVG(t, "in.svg")

		stub := &stubConverter{result: &svg2pdf.ConvertResult{PDF: []byte("%PDF-1.7 fake")}}
		env, stdout, stderr := testEnv(stub)

		err := runConvert(ctx, []string{"in.svg", "out.pdf"}, &cliFlags{}, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		written, err := os.ReadFile("out.pdf")
		if err != nil {
			t.Fatalf("output not written: %v", err)
		}
		if string(written) != "%PDF-1.7 fake" {
			t.Errorf("output = %q, want stub PDF bytes", written)
		}

		if !strings.Contains(stdout.String(), "Created out.pdf") {
			t.Errorf("stdout = %q, want Created line", stdout.String())
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr should be empty, got %q", stderr.String())
		}

		if !strings.Contains(stub.gotInput.SVG, "<svg") {
			t.Errorf("converter should receive file content, got %q", stub.gotInput.SVG)
		}
		if stub.gotInput.SourceDir != wd {
			t.Errorf("SourceDir = %q, want %q", stub.gotInput.SourceDir, wd)
		}
		if !stub.closed {
			t.Error("converter should be closed after the run")
		}
	})

	t.Run("verbose prints timing line", func(t *testing.T) {
		isolateConfig(t)
		writeInputSVG(t, "in.svg")

		stub := &stubConverter{result: &svg2pdf.ConvertResult{PDF: []byte("pdf")}}
		env, stdout, _ := testEnv(stub)

		err := runConvert(ctx, []string{"in.svg", "out.pdf"}, &cliFlags{verbose: true}, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout.String(), "in.svg -> out.pdf (") {
			t.Errorf("stdout = %q, want timing line", stdout.String())
		}
	})

	t.Run("quiet prints nothing", func(t *testing.T) {
		isolateConfig(t)
		writeInputSVG(t, "in.svg")

		stub := &stubConverter{result: &svg2pdf.ConvertResult{
			PDF:      []byte("pdf"),
			Warnings: []string{"something non-fatal"},
		}}
		env, stdout, stderr := testEnv(stub)

		err := runConvert(ctx, []string{"in.svg", "out.pdf"}, &cliFlags{quiet: true}, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout should be empty with --quiet, got %q", stdout.String())
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr should be empty with --quiet, got %q", stderr.String())
		}
	})

	t.Run("svg-only writes flattened svg", func(t *testing.T) {
		isolateConfig(t)
		writeInputSVG(t, "in.svg")

		stub := &stubConverter{result: &svg2pdf.ConvertResult{SVG: []byte("<svg flattened/>")}}
		env, _, _ := testEnv(stub)

		err := runConvert(ctx, []string{"in.svg", "out.svg"}, &cliFlags{svgOnly: true}, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		written, err := os.ReadFile("out.svg")
		if err != nil {
			t.Fatalf("output not written: %v", err)
		}
		if string(written) != "<svg flattened/>" {
			t.Errorf("output = %q, want flattened SVG", written)
		}
		if !stub.gotInput.SVGOnly {
			t.Error("SVGOnly should be passed through to the converter")
		}
	})

	t.Run("missing input file", func(t *testing.T) {
		isolateConfig(t)

		stub := &stubConverter{result: &svg2pdf.ConvertResult{PDF: []byte("pdf")}}
		env, _, _ := testEnv(stub)

		err := runConvert(ctx, []string{"absent.svg", "out.pdf"}, &cliFlags{}, env)
		if !errors.Is(err, ErrReadInput) {
			t.Fatalf("err = %v, want ErrReadInput", err)
		}
		if exitCodeFor(err) != ExitIO {
			t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitIO)
		}
	})

	t.Run("unwritable output path", func(t *testing.T) {
		isolateConfig(t)
		writeInputSVG(t, "in.svg")

		stub := &stubConverter{result: &svg2pdf.ConvertResult{PDF: []byte("pdf")}}
		env, _, _ := testEnv(stub)

		out := filepath.Join("no-such-dir", "out.pdf")
		err := runConvert(ctx, []string{"in.svg", out}, &cliFlags{}, env)
		if !errors.Is(err, ErrWriteOutput) {
			t.Fatalf("err = %v, want ErrWriteOutput", err)
		}
	})

	t.Run("converter error propagates", func(t *testing.T) {
		isolateConfig(t)
		writeInputSVG(t, "in.svg")

		stub := &stubConverter{err: svg2pdf.ErrExportTool}
		env, _, _ := testEnv(stub)

		err := runConvert(ctx, []string{"in.svg", "out.pdf"}, &cliFlags{}, env)
		if !errors.Is(err, svg2pdf.ErrExportTool) {
			t.Fatalf("err = %v, want ErrExportTool", err)
		}
		if exitCodeFor(err) != ExitExport {
			t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitExport)
		}
	})

	t.Run("invalid config aborts before converter construction", func(t *testing.T) {
		isolateConfig(t)
		writeInputSVG(t, "in.svg")

		if err := os.WriteFile("bad.yaml", []byte("engine: [unclosed\n"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		constructed := 0
		var stderr bytes.Buffer
		env := &Environment{
			Stdout: &bytes.Buffer{},
			Stderr: &stderr,
			NewConverter: func(_ ...svg2pdf.Option) (Converter, error) {
				constructed++
				return &stubConverter{}, nil
			},
		}

		err := runConvert(ctx, []string{"in.svg", "out.pdf"}, &cliFlags{config: "./bad.yaml"}, env)
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Fatalf("err = %v, want ErrInvalidConfig", err)
		}
		if constructed != 0 {
			t.Error("converter should not be constructed when config is invalid")
		}
	})

	t.Run("invalid engine from config rejected", func(t *testing.T) {
		isolateConfig(t)
		writeInputSVG(t, "in.svg")

		stub := &stubConverter{result: &svg2pdf.ConvertResult{PDF: []byte("pdf")}}
		env, _, _ := testEnv(stub)

		err := runConvert(ctx, []string{"in.svg", "out.pdf"}, &cliFlags{engine: "pdflatex"}, env)
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Fatalf("err = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("unknown env var produces typo warning", func(t *testing.T) {
		isolateConfig(t)
		t.Setenv("SVG2PDF_TIMOUT", "2m")
		writeInputSVG(t, "in.svg")

		stub := &stubConverter{result: &svg2pdf.ConvertResult{PDF: []byte("pdf")}}
		env, _, stderr := testEnv(stub)

		if err := runConvert(ctx, []string{"in.svg", "out.pdf"}, &cliFlags{}, env); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr.String(), "SVG2PDF_TIMOUT") {
			t.Errorf("stderr should warn about SVG2PDF_TIMOUT, got %q", stderr.String())
		}
	})

	t.Run("env engine overrides config file", func(t *testing.T) {
		isolateConfig(t)
		t.Setenv("SVG2PDF_ENGINE", "bogus")
		writeInputSVG(t, "in.svg")

		if err := os.WriteFile("svg2pdf.yaml", []byte("engine: chrome\n"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		stub := &stubConverter{result: &svg2pdf.ConvertResult{PDF: []byte("pdf")}}
		env, _, _ := testEnv(stub)

		// The bogus env engine must reach validation, proving it replaced
		// the valid value from the config file.
		err := runConvert(ctx, []string{"in.svg", "out.pdf"}, &cliFlags{}, env)
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Fatalf("err = %v, want ErrInvalidConfig from env override", err)
		}
	})

	t.Run("flag engine overrides env engine", func(t *testing.T) {
		isolateConfig(t)
		t.Setenv("SVG2PDF_ENGINE", "bogus")
		writeInputSVG(t, "in.svg")

		stub := &stubConverter{result: &svg2pdf.ConvertResult{PDF: []byte("pdf")}}
		env, _, _ := testEnv(stub)

		// A valid flag value must win over the invalid env value.
		err := runConvert(ctx, []string{"in.svg", "out.pdf"}, &cliFlags{engine: "chrome"}, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
