package main

import (
	"errors"
	"os"

	svg2pdf "github.com/alnah/go-svg2pdf"
	"github.com/alnah/go-svg2pdf/internal/config"
)

// Exit codes for the svg2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, arguments, or configuration
	ExitIO      = 3 // File not found, permission denied
	ExitExport  = 4 // PDF export tool or browser failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err) when adding context.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Export tool and browser errors (exit 4)
	if errors.Is(err, svg2pdf.ErrExportTool) ||
		errors.Is(err, svg2pdf.ErrPlainSVG) ||
		errors.Is(err, svg2pdf.ErrBrowserConnect) ||
		errors.Is(err, svg2pdf.ErrPageCreate) ||
		errors.Is(err, svg2pdf.ErrPageLoad) ||
		errors.Is(err, svg2pdf.ErrPDFGeneration) {
		return ExitExport
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoOutput) {
		return ExitIO
	}

	// Usage and validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, svg2pdf.ErrEmptySVG) ||
		errors.Is(err, svg2pdf.ErrInvalidEngine) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
