package frame

import (
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the size of one pixel on the wire: B, G, R, A.
const BytesPerPixel = 4

// Buffer is a fixed-resolution pixel buffer in BGRA byte order,
// row-major, no padding between rows. Alpha is straight (unassociated);
// premultiplication happens only at the SDI fill boundary.
type Buffer struct {
	width  int
	height int
	pix    []byte
}

// New returns a fully transparent buffer of the given dimensions.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*BytesPerPixel),
	}, nil
}

// NewFilled returns a buffer with every pixel set to c.
func NewFilled(width, height int, c color.NRGBA) (*Buffer, error) {
	b, err := New(width, height)
	if err != nil {
		return nil, err
	}
	b.Fill(c)
	return b, nil
}

// FromBytes wraps an existing BGRA byte slice. The slice length must be
// exactly width*height*4; any mismatch is a hard error.
func FromBytes(width, height int, pix []byte) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}
	if want := width * height * BytesPerPixel; len(pix) != want {
		return nil, fmt.Errorf("frame byte length %d does not match %dx%d (want %d)", len(pix), width, height, want)
	}
	return &Buffer{width: width, height: height, pix: pix}, nil
}

// FromImage converts any image into a buffer, preserving straight alpha.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				nrgba.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
			}
		}
	}
	b := &Buffer{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pix:    make([]byte, bounds.Dx()*bounds.Dy()*BytesPerPixel),
	}
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i+0] = nrgba.Pix[i+2] // B
		b.pix[i+1] = nrgba.Pix[i+1] // G
		b.pix[i+2] = nrgba.Pix[i+0] // R
		b.pix[i+3] = nrgba.Pix[i+3] // A
	}
	return b
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Bytes exposes the raw BGRA pixel data. Length is always width*height*4.
func (b *Buffer) Bytes() []byte { return b.pix }

// Clone returns an independent copy. Targets whose APIs take ownership
// of the pixel data are handed clones, never the original.
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, pix: pix}
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c color.NRGBA) {
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i+0] = c.B
		b.pix[i+1] = c.G
		b.pix[i+2] = c.R
		b.pix[i+3] = c.A
	}
}

// At returns the pixel at (x, y) as straight-alpha NRGBA.
func (b *Buffer) At(x, y int) color.NRGBA {
	i := (y*b.width + x) * BytesPerPixel
	return color.NRGBA{R: b.pix[i+2], G: b.pix[i+1], B: b.pix[i+0], A: b.pix[i+3]}
}

// ToImage converts the buffer back to an NRGBA image, e.g. for PNG export
// or a screen surface.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i := 0; i < len(b.pix); i += 4 {
		img.Pix[i+0] = b.pix[i+2]
		img.Pix[i+1] = b.pix[i+1]
		img.Pix[i+2] = b.pix[i+0]
		img.Pix[i+3] = b.pix[i+3]
	}
	return img
}
