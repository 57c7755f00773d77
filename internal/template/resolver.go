package template

import "image/color"

// HAlign is a resolved horizontal alignment.
type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

// VAlign is a resolved vertical alignment.
type VAlign int

const (
	AlignMiddle VAlign = iota
	AlignTop
	AlignBottom
)

// ResolvedStyle has every field populated; draw code can use it without
// further defaulting.
type ResolvedStyle struct {
	FontFamily   string
	FontSize     int // points at the 1080p reference height
	FontColor    color.NRGBA
	Bold         bool
	Italic       bool
	Underline    bool
	ForceAllCaps bool

	OutlineEnabled bool
	OutlineColor   color.NRGBA
	OutlineWidth   int

	ShadowEnabled bool
	ShadowColor   color.NRGBA
	ShadowOffsetX int
	ShadowOffsetY int
}

// PlanBox is one fully resolved text box of a render plan.
type PlanBox struct {
	ID       string
	XPc      float64
	YPc      float64
	WidthPc  float64
	HeightPc float64
	HAlign   HAlign
	VAlign   VAlign
	Style    ResolvedStyle
}

// RenderPlan is the renderer-ready description of one layout. An empty
// Boxes slice means "draw background only".
type RenderPlan struct {
	Layout             string
	BackgroundColor    color.NRGBA
	HasBackgroundColor bool
	Boxes              []PlanBox
}

// minimalStyle is the last-resort style when neither the named style nor
// the default style exists: white 48pt in whatever sans the renderer maps
// an empty family to, no outline, no shadow.
func minimalStyle() ResolvedStyle {
	return ResolvedStyle{
		FontFamily: "Arial",
		FontSize:   48,
		FontColor:  color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
}

// Resolve turns a layout name into a render plan. Resolution never
// fails: a missing layout falls back to FallbackLayoutName, a missing
// fallback produces an empty plan, and style lookups degrade through
// DefaultStyleName down to a hardcoded minimal style. A live show must
// always be able to render something.
//
// Resolve does not mutate the collections and is safe to call
// concurrently for different slides.
func (c *Collections) Resolve(layoutName string) RenderPlan {
	plan := RenderPlan{Layout: layoutName}

	layout, ok := c.Layouts[layoutName]
	if !ok {
		layout, ok = c.Layouts[FallbackLayoutName]
		if !ok {
			return plan // empty plan: background only
		}
		plan.Layout = FallbackLayoutName
	}

	if bg, ok := ParseColor(layout.BackgroundColor); ok {
		plan.BackgroundColor = bg
		plan.HasBackgroundColor = true
	}

	for _, box := range layout.TextBoxes {
		if box.ID == "" {
			continue
		}
		plan.Boxes = append(plan.Boxes, PlanBox{
			ID:       box.ID,
			XPc:      box.XPc,
			YPc:      box.YPc,
			WidthPc:  box.WidthPc,
			HeightPc: box.HeightPc,
			HAlign:   parseHAlign(box.HAlign),
			VAlign:   parseVAlign(box.VAlign),
			Style:    c.resolveStyle(box.Style),
		})
	}
	return plan
}

func (c *Collections) resolveStyle(name string) ResolvedStyle {
	style, ok := c.Styles[name]
	if !ok {
		style, ok = c.Styles[DefaultStyleName]
		if !ok {
			return minimalStyle()
		}
	}

	out := minimalStyle()
	if style.FontFamily != "" {
		out.FontFamily = style.FontFamily
	}
	if style.FontSize > 0 {
		out.FontSize = style.FontSize
	}
	if fc, ok := ParseColor(style.FontColor); ok {
		out.FontColor = fc
	}
	out.Bold = style.Bold
	out.Italic = style.Italic
	out.Underline = style.Underline
	out.ForceAllCaps = style.ForceAllCaps

	if style.Outline.Enabled {
		out.OutlineEnabled = true
		out.OutlineColor = color.NRGBA{A: 0xFF} // black
		if oc, ok := ParseColor(style.Outline.Color); ok {
			out.OutlineColor = oc
		}
		out.OutlineWidth = style.Outline.Width
		if out.OutlineWidth <= 0 {
			out.OutlineWidth = 1
		}
	}
	if style.Shadow.Enabled {
		out.ShadowEnabled = true
		out.ShadowColor = color.NRGBA{A: 0x80} // translucent black
		if sc, ok := ParseColor(style.Shadow.Color); ok {
			out.ShadowColor = sc
		}
		out.ShadowOffsetX = style.Shadow.OffsetX
		out.ShadowOffsetY = style.Shadow.OffsetY
		if out.ShadowOffsetX == 0 && out.ShadowOffsetY == 0 {
			out.ShadowOffsetX, out.ShadowOffsetY = 2, 2
		}
	}
	return out
}

func parseHAlign(s string) HAlign {
	switch s {
	case "left":
		return AlignLeft
	case "right":
		return AlignRight
	default:
		return AlignCenter
	}
}

func parseVAlign(s string) VAlign {
	switch s {
	case "top":
		return AlignTop
	case "bottom":
		return AlignBottom
	default:
		return AlignMiddle
	}
}
