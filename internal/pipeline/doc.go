// Package pipeline implements the SVG flattening stages.
//
// This package handles everything that happens to the document tree before
// export:
//   - Parsing SVG into a mutable element tree (beevik/etree) that keeps
//     namespace prefixes, attribute order, and the XML declaration intact
//   - Resolving image references against the source directory and
//     rewriting them to absolute paths
//   - Classifying references as vector, raster, or unsupported
//   - Inlining linked vector documents as transformed groups
//
// PDF export is handled separately by the root svg2pdf package using
// Inkscape or headless Chrome (go-rod). This separation keeps the pipeline
// free of subprocess and browser concerns: it takes a tree, mutates it,
// and reports what it did through Reference records.
package pipeline
