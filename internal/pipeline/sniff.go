package pipeline

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Raster decoders registered for content sniffing of references
	// without a usable extension.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// sniffLimit bounds how much of a file the prolog check reads.
const sniffLimit = 512

// classify determines the reference kind for an existing file, first by
// extension and then by content when the extension is not decisive.
func classify(path string) Kind {
	if kind := classifyExtension(path); kind != "" {
		return kind
	}
	return sniffKind(path)
}

// classifyExtension maps a file extension to a reference kind. It returns
// "" when the extension alone does not decide and the content must be
// sniffed.
func classifyExtension(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return KindVector
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return KindRaster
	case ".pdf", ".eps", ".ps", ".svgz", ".tif", ".tiff":
		// Formats the export tools do not accept inside <image>.
		return KindUnsupported
	default:
		return ""
	}
}

// sniffKind inspects file content: an XML or svg prolog means vector, a
// decodable raster header means raster, anything else is unsupported.
func sniffKind(path string) Kind {
	f, err := os.Open(path) // #nosec G304 -- resolved reference path
	if err != nil {
		return KindUnsupported
	}
	defer f.Close()

	head := make([]byte, sniffLimit)
	n, _ := io.ReadFull(f, head)
	if looksLikeSVG(head[:n]) {
		return KindVector
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return KindUnsupported
	}
	if _, _, err := image.DecodeConfig(f); err == nil {
		return KindRaster
	}
	return KindUnsupported
}

// looksLikeSVG reports whether content starts like an XML document or a
// bare svg root element.
func looksLikeSVG(head []byte) bool {
	head = bytes.TrimPrefix(head, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	head = bytes.TrimLeft(head, " \t\r\n")
	return bytes.HasPrefix(head, []byte("<?xml")) || bytes.HasPrefix(head, []byte("<svg"))
}
