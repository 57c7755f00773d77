// Package render rasterizes slides into BGRA frame buffers according to
// a resolved render plan.
package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/strodow/plucky/internal/frame"
	"github.com/strodow/plucky/internal/slide"
	"github.com/strodow/plucky/internal/source"
	"github.com/strodow/plucky/internal/template"
)

// ReferenceHeight is the design height font point sizes are authored
// against.
const ReferenceHeight = 1080

// minFontPx keeps text legible at tiny preview sizes; below this the
// glyphs degenerate to invisible smudges.
const minFontPx = 8

// Renderer rasterizes one slide against a resolved plan. Implementations
// must be safe for concurrent use across different slides.
type Renderer interface {
	Render(s *slide.Slide, plan template.RenderPlan, width, height int) (*frame.Buffer, error)
}

// Raster is the production Renderer built on the x/image font stack.
type Raster struct {
	fonts *FontRegistry
	log   *slog.Logger

	// open resolves background refs; swapped in tests.
	open func(ref string) (source.Provider, error)
}

func NewRaster(fonts *FontRegistry, log *slog.Logger) *Raster {
	if log == nil {
		log = slog.Default()
	}
	return &Raster{fonts: fonts, log: log, open: source.Open}
}

// Render produces a frame of exactly width x height. Background first:
// the slide's own source scaled to fill, else the layout background
// color for background slides, else fully transparent so a content-only
// slide composites over a separate background layer. Text boxes draw
// shadow, then outline, then the main glyph fill, in that order.
//
// Missing images and fonts degrade with a logged warning; Render only
// errors on degenerate dimensions.
func (r *Raster) Render(s *slide.Slide, plan template.RenderPlan, width, height int) (*frame.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid dimensions %dx%d", width, height)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	r.paintBackground(canvas, s, plan)

	for _, box := range plan.Boxes {
		text := s.Text[box.ID]
		if strings.TrimSpace(text) == "" {
			continue
		}
		r.drawTextBox(canvas, box, text, width, height)
	}
	return frame.FromImage(canvas), nil
}

func (r *Raster) paintBackground(canvas *image.NRGBA, s *slide.Slide, plan template.RenderPlan) {
	bounds := canvas.Bounds()

	prov, err := r.open(s.BackgroundRef)
	if err != nil {
		r.log.Warn("background ref unusable", "slide", s.ID, "ref", s.BackgroundRef, "err", err)
	}
	if prov != nil {
		img, err := prov.Background(bounds.Dx(), bounds.Dy())
		if err == nil {
			drawCover(canvas, img)
			return
		}
		r.log.Warn("background source failed", "slide", s.ID, "ref", s.BackgroundRef, "err", err)
	}

	// Only background slides take the layout fill; content-only slides
	// stay transparent to composite over the persistent background.
	if s.IsBackground && plan.HasBackgroundColor {
		fillNRGBA(canvas, plan.BackgroundColor)
	}
}

// drawCover scales src to fill dst completely, cropping the overflow
// around the center.
func drawCover(dst *image.NRGBA, src image.Image) {
	db := dst.Bounds()
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return
	}
	crop := sb
	// Crop the source to the destination aspect ratio.
	if sb.Dx()*db.Dy() > sb.Dy()*db.Dx() { // source wider
		cw := sb.Dy() * db.Dx() / db.Dy()
		x0 := sb.Min.X + (sb.Dx()-cw)/2
		crop = image.Rect(x0, sb.Min.Y, x0+cw, sb.Max.Y)
	} else if sb.Dx()*db.Dy() < sb.Dy()*db.Dx() { // source taller
		ch := sb.Dx() * db.Dy() / db.Dx()
		y0 := sb.Min.Y + (sb.Dy()-ch)/2
		crop = image.Rect(sb.Min.X, y0, sb.Max.X, y0+ch)
	}
	xdraw.BiLinear.Scale(dst, db, src, crop, xdraw.Src, nil)
}

func fillNRGBA(dst *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i+0] = c.R
		dst.Pix[i+1] = c.G
		dst.Pix[i+2] = c.B
		dst.Pix[i+3] = c.A
	}
}

func (r *Raster) drawTextBox(canvas *image.NRGBA, box template.PlanBox, text string, width, height int) {
	style := box.Style
	scale := float64(height) / ReferenceHeight

	sizePx := float64(style.FontSize) * scale
	if sizePx < minFontPx {
		sizePx = minFontPx
	}

	face, found, err := r.fonts.Face(style.FontFamily, sizePx, style.Bold, style.Italic)
	if err != nil {
		r.log.Warn("face construction failed", "family", style.FontFamily, "err", err)
		return
	}
	defer face.Close()
	if !found {
		r.log.Warn("font family not found, using fallback", "family", style.FontFamily)
	}

	if style.ForceAllCaps {
		text = strings.ToUpper(text)
	}

	boxX := int(box.XPc / 100 * float64(width))
	boxY := int(box.YPc / 100 * float64(height))
	boxW := int(box.WidthPc / 100 * float64(width))
	boxH := int(box.HeightPc / 100 * float64(height))
	if boxW <= 0 || boxH <= 0 {
		return
	}

	lines := wrapText(face, text, fixed.I(boxW))
	if len(lines) == 0 {
		return
	}

	metrics := face.Metrics()
	lineH := metrics.Height.Ceil()
	blockH := lineH * len(lines)

	var startY int
	switch box.VAlign {
	case template.AlignTop:
		startY = boxY
	case template.AlignBottom:
		startY = boxY + boxH - blockH
	default:
		startY = boxY + (boxH-blockH)/2
	}

	for i, line := range lines {
		lineW := font.MeasureString(face, line).Ceil()
		var x int
		switch box.HAlign {
		case template.AlignLeft:
			x = boxX
		case template.AlignRight:
			x = boxX + boxW - lineW
		default:
			x = boxX + (boxW-lineW)/2
		}
		baseline := startY + i*lineH + metrics.Ascent.Ceil()

		if style.ShadowEnabled {
			sx := scaledOffset(style.ShadowOffsetX, scale)
			sy := scaledOffset(style.ShadowOffsetY, scale)
			drawString(canvas, face, line, x+sx, baseline+sy, style.ShadowColor)
		}
		if style.OutlineEnabled {
			ow := int(float64(style.OutlineWidth)*scale + 0.5)
			if ow < 1 {
				ow = 1
			}
			for dy := -ow; dy <= ow; dy++ {
				for dx := -ow; dx <= ow; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if dx*dx+dy*dy > ow*ow {
						continue
					}
					drawString(canvas, face, line, x+dx, baseline+dy, style.OutlineColor)
				}
			}
		}
		drawString(canvas, face, line, x, baseline, style.FontColor)
		if style.Bold && found {
			// Faux bold for families registered without a bold variant.
			drawString(canvas, face, line, x+1, baseline, style.FontColor)
		}
		if style.Underline {
			drawUnderline(canvas, x, baseline, lineW, sizePx, style.FontColor)
		}
	}
}

func scaledOffset(v int, scale float64) int {
	o := int(float64(v)*scale + 0.5)
	if v != 0 && o == 0 {
		if v > 0 {
			return 1
		}
		return -1
	}
	return o
}

func drawString(dst *image.NRGBA, face font.Face, s string, x, y int, c color.NRGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func drawUnderline(dst *image.NRGBA, x, baseline, lineW int, sizePx float64, c color.NRGBA) {
	thickness := int(sizePx / 14)
	if thickness < 1 {
		thickness = 1
	}
	top := baseline + thickness + 1
	uni := image.NewUniform(c)
	rect := image.Rect(x, top, x+lineW, top+thickness)
	xdraw.Draw(dst, rect.Intersect(dst.Bounds()), uni, image.Point{}, xdraw.Over)
}

// wrapText splits text on explicit newlines and word-wraps each
// paragraph to maxWidth. A single word wider than the box stays on its
// own line rather than being dropped.
func wrapText(face font.Face, text string, maxWidth fixed.Int26_6) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, word := range words[1:] {
			candidate := cur + " " + word
			if font.MeasureString(face, candidate) > maxWidth {
				lines = append(lines, cur)
				cur = word
				continue
			}
			cur = candidate
		}
		lines = append(lines, cur)
	}
	return lines
}
