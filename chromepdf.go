package svg2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-svg2pdf/internal/fileutil"
	"github.com/alnah/go-svg2pdf/internal/pipeline"
)

// Print geometry for the chrome engine.
const (
	// pixelsPerInch is the CSS reference pixel density Chrome assumes.
	pixelsPerInch = 96.0

	// US Letter fallback when the document declares no usable size.
	paperWidthInches  = 8.5
	paperHeightInches = 11.0
)

// chromeExporter prints SVG to PDF through headless Chrome via go-rod.
// Chrome keeps vector content vectorized when printing SVG.
// Rod automatically downloads Chromium on first run if not found.
type chromeExporter struct {
	browser *rod.Browser
	timeout time.Duration
}

// newChromeExporter creates a chromeExporter with the given timeout.
func newChromeExporter(timeout time.Duration) *chromeExporter {
	return &chromeExporter{timeout: timeout}
}

// ensureBrowser lazily connects to the browser. An explicit
// ROD_BROWSER_BIN wins, then a system browser found on the path, else rod
// falls back to its managed Chromium.
func (e *chromeExporter) ensureBrowser() error {
	if e.browser != nil {
		return nil
	}

	l := launcher.New()

	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	} else if path, found := launcher.LookPath(); found {
		l = l.Bin(path)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.browser = rod.New().ControlURL(u)
	if err := e.browser.Connect(); err != nil {
		e.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// ExportPDF opens svg from a temp file in headless Chrome and prints it
// to PDF. Returns explicit errors instead of panicking when browser
// operations fail.
func (e *chromeExporter) ExportPDF(ctx context.Context, svg []byte) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(svg, "svg")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := e.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := e.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOptions(svg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// printOptions builds print parameters sized to the document: the paper
// matches the root width/height (or viewBox extent) at 96 px/in with zero
// margins so the SVG canvas fills the page exactly, falling back to US
// Letter when the document declares no usable size.
func printOptions(svg []byte) *proto.PagePrintToPDF {
	width, height := paperWidthInches, paperHeightInches
	if doc, err := pipeline.Parse(svg); err == nil {
		if w, h, ok := pipeline.DisplaySize(doc); ok {
			width, height = w/pixelsPerInch, h/pixelsPerInch
		}
	}

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// Close releases browser resources.
func (e *chromeExporter) Close() error {
	if e.browser != nil {
		err := e.browser.Close()
		e.browser = nil
		return err
	}
	return nil
}
