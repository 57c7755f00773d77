// Package template holds the named layout and style collections and
// resolves them into renderer-ready plans. Authoring happens outside the
// core; this package only reads the collections.
package template

import (
	"image/color"
	"strconv"
	"strings"
)

// FallbackLayoutName is consulted when a requested layout is absent.
const FallbackLayoutName = "System Default Fallback"

// DefaultStyleName is consulted when a text box names an absent style.
const DefaultStyleName = "Default"

// Style is the authored form of a text style. Optional fields keep their
// zero value when unset; resolution fills documented defaults exactly
// once so draw code never re-checks them.
type Style struct {
	FontFamily   string  `yaml:"font_family"`
	FontSize     int     `yaml:"font_size"` // points at the 1080p reference height
	FontColor    string  `yaml:"font_color"`
	Bold         bool    `yaml:"bold,omitempty"`
	Italic       bool    `yaml:"italic,omitempty"`
	Underline    bool    `yaml:"underline,omitempty"`
	ForceAllCaps bool    `yaml:"force_all_caps,omitempty"`
	Outline      Outline `yaml:"outline,omitempty"`
	Shadow       Shadow  `yaml:"shadow,omitempty"`
}

type Outline struct {
	Enabled bool   `yaml:"enabled"`
	Color   string `yaml:"color,omitempty"`
	Width   int    `yaml:"width,omitempty"`
}

type Shadow struct {
	Enabled bool   `yaml:"enabled"`
	Color   string `yaml:"color,omitempty"`
	OffsetX int    `yaml:"offset_x,omitempty"`
	OffsetY int    `yaml:"offset_y,omitempty"`
}

// TextBox places one styled text region inside a layout. Geometry is in
// percentage units of the output frame.
type TextBox struct {
	ID       string  `yaml:"id"`
	XPc      float64 `yaml:"x_pc"`
	YPc      float64 `yaml:"y_pc"`
	WidthPc  float64 `yaml:"width_pc"`
	HeightPc float64 `yaml:"height_pc"`
	HAlign   string  `yaml:"h_align,omitempty"` // left, center, right
	VAlign   string  `yaml:"v_align,omitempty"` // top, center, bottom
	Style    string  `yaml:"style,omitempty"`
}

// Layout is a named arrangement of text boxes with an optional
// layout-level background color.
type Layout struct {
	BackgroundColor string    `yaml:"background_color,omitempty"`
	TextBoxes       []TextBox `yaml:"text_boxes"`
}

// Collections bundles the two named lookups the resolver works against.
type Collections struct {
	Styles  map[string]Style  `yaml:"styles"`
	Layouts map[string]Layout `yaml:"layouts"`
}

// ParseColor reads "#RRGGBB" or "#RRGGBBAA". The second return reports
// whether the input parsed; callers degrade to their own fallback when it
// did not.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, false
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.NRGBA{}, false
	}
	c := color.NRGBA{A: 0xFF}
	if len(hex) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, true
}
