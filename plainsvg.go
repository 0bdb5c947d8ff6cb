package svg2pdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/beevik/etree"

	"github.com/alnah/go-svg2pdf/internal/fileutil"
	"github.com/alnah/go-svg2pdf/internal/pipeline"
)

// preconvertPlainSVG round-trips the document through Inkscape's plain
// SVG export to strip editor markup. The temp file is created inside
// sourceDir so relative references in the document keep resolving while
// Inkscape processes it.
//
// A missing Inkscape binary downgrades to a warning and the caller
// proceeds on the original tree; any other failure is fatal.
func (c *Converter) preconvertPlainSVG(ctx context.Context, doc *etree.Document, sourceDir string) (*etree.Document, string, error) {
	content, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("serializing document: %w", err)
	}

	srcPath, cleanup, err := fileutil.WriteTempFileIn(sourceDir, content, "svg")
	if err != nil {
		return nil, "", err
	}
	defer cleanup()

	outPath := strings.TrimSuffix(srcPath, ".svg") + "-plain.svg"
	defer func() { _ = os.Remove(outPath) }()

	runCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	_, stderr, err := c.runner.Run(runCtx, c.cfg.inkscape, srcPath,
		"--export-plain-svg", "--export-type=svg", "--export-filename="+outPath)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Sprintf("%s not found, skipping plain SVG pre-conversion", c.cfg.inkscape), nil
		}
		return nil, "", toolError(ErrPlainSVG, err, stderr)
	}

	plain, err := os.ReadFile(outPath) // #nosec G304 -- temp path created above
	if err != nil {
		return nil, "", fmt.Errorf("%w: no output produced: %v", ErrPlainSVG, err)
	}
	if len(plain) == 0 {
		return nil, "", fmt.Errorf("%w: produced an empty file", ErrPlainSVG)
	}

	plainDoc, err := pipeline.Parse(plain)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrPlainSVG, err)
	}
	return plainDoc, "", nil
}
