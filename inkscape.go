package svg2pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/alnah/go-svg2pdf/internal/fileutil"
	"github.com/alnah/go-svg2pdf/internal/process"
)

// CommandRunner abstracts command execution to enable testing without
// real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. Each command runs in
// its own process group so cancellation kills the whole tree, not just
// the direct child.
type ExecRunner struct{}

// Run executes the command and captures its output. When ctx ends before
// the command does, the command's process group is killed and the context
// error is returned.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			process.KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}

	err := cmd.Run()
	// Surface the cancellation instead of the kill-induced exit error
	// ("signal: killed") so callers can match context errors.
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return stdout.String(), stderr.String(), err
}

// inkscapeExporter exports PDFs by invoking the Inkscape CLI on a temp
// file. Inkscape keeps vector content vectorized when exporting SVG to
// PDF.
type inkscapeExporter struct {
	bin    string
	runner CommandRunner
}

// newInkscapeExporter creates an exporter around the given binary name or
// path.
func newInkscapeExporter(bin string, runner CommandRunner) *inkscapeExporter {
	return &inkscapeExporter{bin: bin, runner: runner}
}

// ExportPDF writes svg to a temporary file, converts it with Inkscape,
// and returns the PDF bytes. Both temp files are removed regardless of
// outcome.
func (e *inkscapeExporter) ExportPDF(ctx context.Context, svg []byte) ([]byte, error) {
	svgPath, cleanup, err := fileutil.WriteTempFile(svg, "svg")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pdfPath := strings.TrimSuffix(svgPath, ".svg") + ".pdf"
	defer func() { _ = os.Remove(pdfPath) }()

	_, stderr, err := e.runner.Run(ctx, e.bin, svgPath,
		"--export-type=pdf", "--export-filename="+pdfPath)
	if err != nil {
		return nil, toolError(ErrExportTool, err, stderr)
	}

	pdf, err := os.ReadFile(pdfPath) // #nosec G304 -- temp path created above
	if err != nil {
		return nil, fmt.Errorf("%w: no output produced: %v", ErrExportTool, err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: produced an empty file", ErrExportTool)
	}
	return pdf, nil
}

// Close implements pdfExporter; the inkscape engine holds no resources.
func (e *inkscapeExporter) Close() error { return nil }

// toolError wraps an external tool failure with its captured stderr,
// keeping both the sentinel and the cause matchable with errors.Is.
func toolError(sentinel, cause error, stderr string) error {
	if s := strings.TrimSpace(stderr); s != "" {
		return fmt.Errorf("%w: %w: %s", sentinel, cause, s)
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
