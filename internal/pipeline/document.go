package pipeline

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Namespace URIs recognized by the pipeline.
const (
	svgNamespace   = "http://www.w3.org/2000/svg"
	xlinkNamespace = "http://www.w3.org/1999/xlink"
)

// editorPrefixes are the namespace prefixes that mark a document as
// carrying editor-specific markup.
var editorPrefixes = []string{"inkscape", "sodipodi"}

// errNoRoot reports a document without a root element.
var errNoRoot = errors.New("document has no root element")

// newDocument creates an empty document configured for SVG parsing.
// The charset reader lets the XML decoder handle documents that declare
// a non-UTF-8 encoding such as ISO-8859-1.
func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	return doc
}

// Parse parses SVG content into a mutable document tree. Namespace
// prefixes, attribute order, and any XML declaration survive a later
// serialization unchanged.
func Parse(data []byte) (*etree.Document, error) {
	doc := newDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if doc.Root() == nil {
		return nil, errNoRoot
	}
	return doc, nil
}

// Load reads and parses the SVG file at path.
func Load(path string) (*etree.Document, error) {
	doc := newDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("loading %s: %w", path, errNoRoot)
	}
	return doc, nil
}

// HasEditorNamespace reports whether the document's root element declares
// an Inkscape or Sodipodi namespace prefix. Such documents carry editor
// markup that downstream converters may mishandle, and are candidates for
// Inkscape's plain-SVG pre-conversion.
func HasEditorNamespace(doc *etree.Document) bool {
	root := doc.Root()
	if root == nil {
		return false
	}
	for _, a := range root.Attr {
		if a.Space != "xmlns" {
			continue
		}
		for _, prefix := range editorPrefixes {
			if a.Key == prefix {
				return true
			}
		}
	}
	return false
}

// DisplaySize reports the document's rendered size in user units,
// preferring explicit root width/height attributes over the viewBox
// extent. ok is false when neither yields a usable size.
func DisplaySize(doc *etree.Document) (w, h float64, ok bool) {
	root := doc.Root()
	if root == nil {
		return 0, 0, false
	}
	rw, okW := parseLength(root.SelectAttrValue("width", ""))
	rh, okH := parseLength(root.SelectAttrValue("height", ""))
	if okW && okH && rw > 0 && rh > 0 {
		return rw, rh, true
	}
	if vb, okVB := parseViewBox(root.SelectAttrValue("viewBox", "")); okVB {
		return vb.W, vb.H, true
	}
	return 0, 0, false
}
