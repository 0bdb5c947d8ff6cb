package svg2pdf

import (
	"errors"

	"github.com/alnah/go-svg2pdf/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptySVG      = errors.New("svg content cannot be empty")
	ErrParse         = errors.New("svg parsing failed")
	ErrPlainSVG      = errors.New("plain SVG pre-conversion failed")
	ErrExportTool    = errors.New("pdf export tool failed")
	ErrInvalidEngine = errors.New("invalid engine")

	// Chrome engine errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// Per-reference errors, re-exported so callers can classify
// Reference.Err without importing the internal pipeline package.
var (
	ErrMissingReference = pipeline.ErrMissingReference
	ErrReferenceParse   = pipeline.ErrReferenceParse
)
