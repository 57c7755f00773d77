package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// PDFPage rasterizes one page of a PDF document, e.g. an announcement
// deck imported as slide backgrounds. Page is zero-based.
type PDFPage struct {
	Path string
	Page int
}

func (s *PDFPage) Background(targetWidth, targetHeight int) (image.Image, error) {
	doc, err := fitz.New(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", s.Path, err)
	}
	defer doc.Close()

	if s.Page < 0 || s.Page >= doc.NumPage() {
		return nil, fmt.Errorf("pdf %s has no page %d", s.Path, s.Page+1)
	}

	dpi := 144.0
	if targetHeight > 0 {
		if rect, err := doc.Bound(s.Page); err == nil && rect.Dy() > 0 {
			// Page bounds are in points (1/72 inch); pick a DPI that
			// rasterizes to roughly the target height.
			dpi = float64(targetHeight) / float64(rect.Dy()) * 72.0
			if dpi < 36 {
				dpi = 36
			}
			if dpi > 600 {
				dpi = 600
			}
		}
	}
	return doc.ImageDPI(s.Page, dpi)
}
