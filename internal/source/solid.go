package source

import (
	"image"
	"image/color"
)

// SolidColor fills the background with one color.
type SolidColor struct {
	Color color.NRGBA
}

func (s *SolidColor) Background(targetWidth, targetHeight int) (image.Image, error) {
	// The renderer scale-fills, so one pixel is enough.
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, s.Color)
	return img, nil
}
