// Package svg2pdf converts SVG documents to PDF while keeping linked
// vector images as vector content.
//
// SVG documents often reference other files through <image> elements.
// Export tools rasterize those references, which ruins print quality for
// linked charts, diagrams, and logos that are themselves SVG. This
// package flattens the document first: linked vector images are inlined
// as transformed groups, raster references are rewritten to absolute
// paths, and only then is the result handed to an export engine.
//
// # Quick Start
//
// Create a converter, convert a document, and close when done:
//
//	conv, err := svg2pdf.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, svg2pdf.Input{
//	    SVG:       string(content),
//	    SourceDir: "/path/to/svg",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result contains the PDF bytes (result.PDF), the flattened SVG
// (result.SVG) for debugging, and a per-reference report
// (result.References). Use Input.SVGOnly to skip PDF export.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Parse the SVG into a mutable element tree (beevik/etree)
//  2. Plain SVG pre-conversion via Inkscape for editor-flavored documents
//  3. Reference resolution (relative and file:// paths become absolute)
//  4. Vector inlining (linked SVG content replaces <image> elements)
//  5. PDF export via Inkscape or headless Chrome (go-rod)
//
// Failures on individual references never abort a conversion; they are
// reported on the affected Reference and the element keeps its
// absolute-path rewrite as the fallback.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := svg2pdf.New(
//	    svg2pdf.WithTimeout(2 * time.Minute),
//	    svg2pdf.WithEngine(svg2pdf.EngineChrome),
//	    svg2pdf.WithInkscapeBinary("/opt/inkscape/bin/inkscape"),
//	)
//
// # Engines
//
// The inkscape engine (default) shells out to the Inkscape CLI and needs
// an Inkscape installation. The chrome engine prints through headless
// Chrome/Chromium: go-rod automatically downloads a managed Chromium
// instance on first run (~/.cache/rod/browser/) when no system browser is
// found.
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to point at a pre-installed browser;
// the sandbox is also disabled automatically when ROD_BROWSER_BIN or
// CI=true is set.
package svg2pdf
