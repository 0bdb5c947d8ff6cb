package svg2pdf

import (
	"strings"
	"time"
)

// Engine selects the PDF export backend.
type Engine string

// Available engines.
const (
	// EngineInkscape shells out to the Inkscape CLI. Default.
	EngineInkscape Engine = "inkscape"
	// EngineChrome prints through headless Chrome via go-rod.
	EngineChrome Engine = "chrome"
)

// parseEngine normalizes an engine name (case-insensitive).
func parseEngine(e Engine) (Engine, bool) {
	switch Engine(strings.ToLower(string(e))) {
	case EngineInkscape:
		return EngineInkscape, true
	case EngineChrome:
		return EngineChrome, true
	}
	return "", false
}

// ReferenceKind classifies what an image reference points at.
type ReferenceKind string

// Reference kinds.
const (
	KindVector      ReferenceKind = "vector"
	KindRaster      ReferenceKind = "raster"
	KindUnsupported ReferenceKind = "unsupported"
)

// ReferenceStatus describes what the pipeline did with a reference.
type ReferenceStatus string

// Reference statuses.
const (
	StatusSkipped   ReferenceStatus = "skipped"
	StatusMissing   ReferenceStatus = "missing"
	StatusRewritten ReferenceStatus = "rewritten"
	StatusInlined   ReferenceStatus = "inlined"
)

// Reference records the outcome of processing one image reference.
type Reference struct {
	Href   string // attribute value as found in the input document
	Path   string // resolved absolute path (empty for skipped references)
	Kind   ReferenceKind
	Status ReferenceStatus
	Err    error // per-reference failure, if any; never aborts a run
}

// Input contains conversion parameters.
type Input struct {
	SVG       string // SVG content (required)
	SourceDir string // base directory for relative references (optional)
	SVGOnly   bool   // stop after flattening, skip PDF export (for debugging)
}

// ConvertResult holds conversion outputs.
type ConvertResult struct {
	PDF        []byte      // final PDF (nil when Input.SVGOnly is set)
	SVG        []byte      // flattened document as handed to the export engine
	References []Reference // per-reference outcomes in document order
	PlainSVG   bool        // document went through plain SVG pre-conversion
	Warnings   []string    // non-fatal pipeline warnings
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout  time.Duration
	engine   Engine
	inkscape string
	inline   bool
	plainSVG bool
}

// Defaults used when no option overrides them.
const (
	defaultTimeout        = 30 * time.Second
	defaultInkscapeBinary = "inkscape"
)

// WithTimeout bounds each external tool invocation (Inkscape run or
// browser render), not the whole conversion.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("svg2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the PDF export backend. New returns
// ErrInvalidEngine for engines it does not know.
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = e
	}
}

// WithInkscapeBinary overrides the Inkscape binary name or path used by
// the inkscape engine and the plain SVG pre-conversion. Empty values are
// ignored.
func WithInkscapeBinary(path string) Option {
	return func(c *Converter) {
		if path != "" {
			c.cfg.inkscape = path
		}
	}
}

// WithInlining toggles vector inlining. When disabled the pipeline still
// rewrites references to absolute paths but keeps the image elements.
func WithInlining(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.inline = enabled
	}
}

// WithPlainSVG toggles the Inkscape plain SVG pre-conversion applied to
// documents carrying editor namespaces.
func WithPlainSVG(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.plainSVG = enabled
	}
}
