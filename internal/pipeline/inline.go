package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"
)

// viewBox is an SVG coordinate-space declaration: a minimum point plus an
// extent, as carried by the viewBox attribute.
type viewBox struct {
	MinX, MinY, W, H float64
}

// InlineVectors replaces each resolved vector reference with a group
// containing the linked document's content, transformed so its rendered
// box matches the reference's declared x/y/width/height. Failures are
// recorded on the affected reference and leave the absolute-path rewrite
// in place; the pass never aborts.
//
// TODO: hrefs inside inlined subtrees keep their original values; resolve
// them against the linked file's directory.
func InlineVectors(refs []*Reference) {
	for _, ref := range refs {
		if ref.Kind != KindVector || ref.Status != StatusRewritten {
			continue
		}
		if err := inlineVector(ref); err != nil {
			ref.Err = err
			continue
		}
		ref.Status = StatusInlined
	}
}

// inlineVector loads the linked document and splices its content into the
// host tree at the reference element's position.
func inlineVector(ref *Reference) error {
	linked, err := Load(ref.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingReference, ref.Path)
		}
		return fmt.Errorf("%w: %v", ErrReferenceParse, err)
	}

	parent := ref.Element.Parent()
	if parent == nil {
		return fmt.Errorf("reference element %s is detached from the document", ref.Href)
	}

	group := replacementGroup(ref.Element, linked.Root())
	idx := ref.Element.Index()
	parent.RemoveChildAt(idx)
	parent.InsertChildAt(idx, group)
	return nil
}

// replacementGroup builds a <g> carrying the composed geometry transform
// and the linked root's namespace declarations, then moves the linked
// root's children into it.
func replacementGroup(image, linkedRoot *etree.Element) *etree.Element {
	group := etree.NewElement(groupTag(image))

	if transform := composeTransform(image, linkedRoot); transform != "" {
		group.CreateAttr("transform", transform)
	}

	// Namespace declarations on the linked root travel with the content
	// so moved children keep valid prefixes.
	for _, a := range linkedRoot.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			group.CreateAttr(a.FullKey(), a.Value)
		}
	}

	for len(linkedRoot.Child) > 0 {
		group.AddChild(linkedRoot.Child[0])
	}
	return group
}

// groupTag names the replacement group with the host element's namespace
// prefix so the group stays in the same namespace as its surroundings.
func groupTag(image *etree.Element) string {
	if image.Space != "" {
		return image.Space + ":g"
	}
	return "g"
}

// composeTransform builds the transform mapping the linked document's
// intrinsic coordinate space onto the reference's declared box. Order
// matters: a transform already declared on the reference applies
// outermost, then the translation to the declared position, then the
// scale to the declared size, and innermost the viewBox origin shift.
// Identity parts are omitted; the result is "" when nothing applies.
func composeTransform(image, linkedRoot *etree.Element) string {
	space, known := intrinsicSpace(linkedRoot)

	x := floatAttr(image, "x", 0)
	y := floatAttr(image, "y", 0)

	sx, sy := 1.0, 1.0
	if known {
		w, okW := parseLength(image.SelectAttrValue("width", ""))
		h, okH := parseLength(image.SelectAttrValue("height", ""))
		if okW && okH && w > 0 && h > 0 {
			sx, sy = w/space.W, h/space.H
		}
	}

	var parts []string
	if declared := image.SelectAttrValue("transform", ""); declared != "" {
		parts = append(parts, declared)
	}
	if x != 0 || y != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s,%s)", formatFloat(x), formatFloat(y)))
	}
	if sx != 1 || sy != 1 {
		parts = append(parts, fmt.Sprintf("scale(%s,%s)", formatFloat(sx), formatFloat(sy)))
	}
	if space.MinX != 0 || space.MinY != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s,%s)", formatFloat(-space.MinX), formatFloat(-space.MinY)))
	}
	return strings.Join(parts, " ")
}

// intrinsicSpace determines the linked document's own coordinate space:
// its viewBox when present, else its width/height attributes. The second
// return is false when the document declares no usable size, in which
// case content is inlined without scaling.
func intrinsicSpace(root *etree.Element) (viewBox, bool) {
	if vb, ok := parseViewBox(root.SelectAttrValue("viewBox", "")); ok {
		return vb, true
	}
	w, okW := parseLength(root.SelectAttrValue("width", ""))
	h, okH := parseLength(root.SelectAttrValue("height", ""))
	if okW && okH && w > 0 && h > 0 {
		return viewBox{W: w, H: h}, true
	}
	return viewBox{}, false
}

// parseViewBox parses a viewBox attribute: four numbers separated by
// whitespace and/or commas. Degenerate extents are rejected.
func parseViewBox(s string) (viewBox, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) != 4 {
		return viewBox{}, false
	}
	var nums [4]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return viewBox{}, false
		}
		nums[i] = v
	}
	vb := viewBox{MinX: nums[0], MinY: nums[1], W: nums[2], H: nums[3]}
	if vb.W <= 0 || vb.H <= 0 {
		return viewBox{}, false
	}
	return vb, true
}

// parseLength parses an SVG length attribute, accepting a bare number or
// a px-suffixed one. Other units are rejected and the caller falls back
// to its default.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// floatAttr parses a numeric attribute, returning dflt when the attribute
// is absent or unparseable.
func floatAttr(el *etree.Element, key string, dflt float64) float64 {
	v, ok := parseLength(el.SelectAttrValue(key, ""))
	if !ok {
		return dflt
	}
	return v
}

// formatFloat renders a float with the shortest exact representation so
// transforms stay stable and readable (0.5 rather than 0.500000).
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
