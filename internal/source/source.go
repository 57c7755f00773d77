// Package source opens slide background references as images. Each
// provider kind mirrors one BackgroundRef form: solid color, image file,
// PDF page, QR code.
package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"github.com/strodow/plucky/internal/template"
)

// Provider produces the background layer for a slide. The renderer
// scales the result to fill the output frame.
type Provider interface {
	// Background returns the source image. targetWidth/targetHeight are
	// hints for providers that rasterize on demand.
	Background(targetWidth, targetHeight int) (image.Image, error)
}

// Open resolves a BackgroundRef string to a provider. An empty ref
// returns (nil, nil): the slide has no background of its own.
func Open(ref string) (Provider, error) {
	switch {
	case ref == "":
		return nil, nil
	case strings.HasPrefix(ref, "#"):
		c, ok := template.ParseColor(ref)
		if !ok {
			return nil, fmt.Errorf("invalid color ref %q", ref)
		}
		return &SolidColor{Color: c}, nil
	case strings.HasPrefix(ref, "pdf:"):
		return parsePDFRef(ref)
	case strings.HasPrefix(ref, "qr:"):
		return &QR{Payload: strings.TrimPrefix(ref, "qr:")}, nil
	default:
		return &ImageFile{Path: ref}, nil
	}
}

func parsePDFRef(ref string) (*PDFPage, error) {
	body := strings.TrimPrefix(ref, "pdf:")
	path := body
	page := 0
	if i := strings.LastIndex(body, "#"); i >= 0 {
		n, err := strconv.Atoi(body[i+1:])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page in pdf ref %q", ref)
		}
		path = body[:i]
		page = n - 1
	}
	return &PDFPage{Path: path, Page: page}, nil
}

// ImageFile loads a PNG or JPEG from disk.
type ImageFile struct {
	Path string
}

func (s *ImageFile) Background(targetWidth, targetHeight int) (image.Image, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return img, nil
}
