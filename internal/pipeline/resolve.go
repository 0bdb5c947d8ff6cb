package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/beevik/etree"

	"github.com/alnah/go-svg2pdf/internal/fileutil"
)

// Kind classifies what an image reference points at.
type Kind string

// Reference kinds.
const (
	KindVector      Kind = "vector"
	KindRaster      Kind = "raster"
	KindUnsupported Kind = "unsupported"
)

// Status describes what the pipeline did with a reference.
type Status string

// Reference statuses.
const (
	// StatusSkipped marks references left byte-untouched: data URIs,
	// remote URLs, and same-document fragments.
	StatusSkipped Status = "skipped"
	// StatusMissing marks references whose resolved path does not exist.
	// The absolute path is still written into the attribute.
	StatusMissing Status = "missing"
	// StatusRewritten marks references whose attribute now holds the
	// resolved absolute path.
	StatusRewritten Status = "rewritten"
	// StatusInlined marks vector references replaced by their content.
	StatusInlined Status = "inlined"
)

// Per-reference errors. These are recorded on the affected Reference and
// never abort a run.
var (
	ErrMissingReference = errors.New("referenced file not found")
	ErrReferenceParse   = errors.New("referenced file is not valid SVG")
)

// Reference tracks one image element's external reference through the
// pipeline.
type Reference struct {
	Element *etree.Element // the <image> element; replaced when inlined
	Href    string         // attribute value as found in the document
	Path    string         // resolved absolute path (empty when skipped)
	Kind    Kind
	Status  Status
	Err     error
}

// ResolveReferences walks the document for image elements carrying an
// href, resolves relative and file:// references against baseDir, and
// rewrites the attribute to the absolute path in place. It returns one
// Reference per href in document order. Elements without an href
// attribute do not participate.
func ResolveReferences(doc *etree.Document, baseDir string) []*Reference {
	root := doc.Root()
	if root == nil {
		return nil
	}
	var refs []*Reference
	for _, el := range imageElements(root) {
		attr := hrefAttr(el)
		if attr == nil {
			continue
		}
		refs = append(refs, resolveReference(el, attr, baseDir))
	}
	return refs
}

// resolveReference resolves a single href and classifies its target.
func resolveReference(el *etree.Element, attr *etree.Attr, baseDir string) *Reference {
	ref := &Reference{Element: el, Href: attr.Value}

	if skippedHref(ref.Href) {
		ref.Status = StatusSkipped
		return ref
	}

	path := hrefPath(ref.Href)
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	ref.Path = path
	attr.Value = path

	if !fileutil.FileExists(path) {
		kind := classifyExtension(path)
		if kind == "" {
			kind = KindUnsupported
		}
		ref.Kind = kind
		ref.Status = StatusMissing
		ref.Err = fmt.Errorf("%w: %s", ErrMissingReference, path)
		return ref
	}

	ref.Kind = classify(path)
	ref.Status = StatusRewritten
	return ref
}

// skippedHref reports whether an href must be left byte-untouched:
// inline data, remote URLs, and same-document fragment references.
func skippedHref(href string) bool {
	return href == "" ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "http://") ||
		strings.HasPrefix(href, "https://") ||
		strings.HasPrefix(href, "#")
}

// hrefPath converts an href value to a filesystem path, stripping any
// file:// scheme and its percent-encoding.
func hrefPath(href string) string {
	if !strings.HasPrefix(href, "file://") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return strings.TrimPrefix(href, "file://")
	}
	path := u.Path
	// Windows file URIs carry the drive letter behind a leading slash
	// (file:///C:/...); drop the slash so filepath recognizes the root.
	if runtime.GOOS == "windows" && len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return path
}

// imageElements collects image elements under root in document order.
// Only SVG-namespace (or unprefixed) image tags participate; foreign
// namespaces are left alone.
func imageElements(root *etree.Element) []*etree.Element {
	var els []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == "image" && isSVGElement(e) {
			els = append(els, e)
		}
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return els
}

// isSVGElement reports whether the element lives in the SVG namespace or
// carries no namespace at all.
func isSVGElement(e *etree.Element) bool {
	uri := e.NamespaceURI()
	return uri == "" || uri == svgNamespace
}

// hrefAttr finds the element's reference attribute: the SVG 2 plain href
// wins over the SVG 1.1 xlink:href form when both are present. The
// returned pointer aliases the element's attribute slice so the caller
// can rewrite the value in place.
func hrefAttr(el *etree.Element) *etree.Attr {
	var xlink *etree.Attr
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key != "href" {
			continue
		}
		if a.Space == "" {
			return a
		}
		if xlink == nil && a.NamespaceURI() == xlinkNamespace {
			xlink = a
		}
	}
	return xlink
}
