package svg2pdf

import (
	"context"
	"fmt"

	"github.com/alnah/go-svg2pdf/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pdfExporter   = (*inkscapeExporter)(nil)
	_ pdfExporter   = (*chromeExporter)(nil)
	_ CommandRunner = (*ExecRunner)(nil)
)

// pdfExporter abstracts SVG to PDF export to allow different backends.
type pdfExporter interface {
	ExportPDF(ctx context.Context, svg []byte) ([]byte, error)
	Close() error
}

// Converter orchestrates the SVG flattening and export pipeline.
// Create with New(), use Convert() for conversion, and Close() when done.
// A Converter is reusable but not safe for concurrent use: the chrome
// engine holds a single browser instance.
type Converter struct {
	cfg      converterConfig
	runner   CommandRunner
	exporter pdfExporter
}

// New creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithEngine).
// Returns ErrInvalidEngine when WithEngine named an unknown backend;
// engine binaries are not checked here, only at conversion time.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:  defaultTimeout,
			engine:   EngineInkscape,
			inkscape: defaultInkscapeBinary,
			inline:   true,
			plainSVG: true,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	engine, ok := parseEngine(c.cfg.engine)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEngine, c.cfg.engine)
	}
	c.cfg.engine = engine

	if c.runner == nil {
		c.runner = &ExecRunner{}
	}

	// Create the exporter if not injected (e.g., by tests).
	if c.exporter == nil {
		switch engine {
		case EngineInkscape:
			c.exporter = newInkscapeExporter(c.cfg.inkscape, c.runner)
		case EngineChrome:
			c.exporter = newChromeExporter(c.cfg.timeout)
		}
	}

	return c, nil
}

// Convert runs the full pipeline: parse, plain SVG pre-conversion for
// editor-flavored documents, reference resolution, vector inlining,
// serialization, and PDF export. The context is used for cancellation;
// each external tool invocation is additionally bounded by the configured
// timeout. Per-reference failures are reported on the result, never as an
// error. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.SVG == "" {
		return nil, ErrEmptySVG
	}

	doc, err := pipeline.Parse([]byte(input.SVG))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	res := &ConvertResult{}

	// Editor-flavored documents go through Inkscape first so the later
	// stages see plain SVG.
	if c.cfg.plainSVG && pipeline.HasEditorNamespace(doc) {
		plain, warning, err := c.preconvertPlainSVG(ctx, doc, input.SourceDir)
		switch {
		case err != nil:
			return nil, err
		case warning != "":
			res.Warnings = append(res.Warnings, warning)
		default:
			doc = plain
			res.PlainSVG = true
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	refs := pipeline.ResolveReferences(doc, input.SourceDir)
	if c.cfg.inline {
		pipeline.InlineVectors(refs)
	}
	res.References = toReferences(refs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	svgBytes, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	res.SVG = svgBytes

	// Skip PDF export in SVGOnly mode
	if input.SVGOnly {
		return res, nil
	}

	exportCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	pdf, err := c.exporter.ExportPDF(exportCtx, svgBytes)
	if err != nil {
		return nil, err
	}
	res.PDF = pdf

	return res, nil
}

// Close releases engine resources (the chrome engine's browser).
func (c *Converter) Close() error {
	if c.exporter != nil {
		return c.exporter.Close()
	}
	return nil
}

// toReferences converts pipeline reference records to their public form.
func toReferences(refs []*pipeline.Reference) []Reference {
	if len(refs) == 0 {
		return nil
	}
	out := make([]Reference, len(refs))
	for i, r := range refs {
		out[i] = Reference{
			Href:   r.Href,
			Path:   r.Path,
			Kind:   ReferenceKind(r.Kind),
			Status: ReferenceStatus(r.Status),
			Err:    r.Err,
		}
	}
	return out
}
