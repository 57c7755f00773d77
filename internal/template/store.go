package template

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a Collections document from a YAML file.
func Load(path string) (*Collections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Collections
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse templates %s: %w", path, err)
	}
	if c.Styles == nil {
		c.Styles = map[string]Style{}
	}
	if c.Layouts == nil {
		c.Layouts = map[string]Layout{}
	}
	return &c, nil
}

// Write saves the collections to a YAML file.
func Write(c *Collections, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Builtin returns the collections shipped with the binary: a default
// style and a lower-third lyric layout, plus the system fallback layout.
func Builtin() *Collections {
	return &Collections{
		Styles: map[string]Style{
			DefaultStyleName: {
				FontFamily: "Arial",
				FontSize:   58,
				FontColor:  "#FFFFFF",
				Shadow:     Shadow{Enabled: true, Color: "#000000C0", OffsetX: 3, OffsetY: 3},
			},
			"Song Title": {
				FontFamily: "Arial",
				FontSize:   32,
				FontColor:  "#FFFFFF",
				Bold:       true,
			},
		},
		Layouts: map[string]Layout{
			"Lyrics Lower Third": {
				TextBoxes: []TextBox{
					{ID: "lyrics", XPc: 5, YPc: 65, WidthPc: 90, HeightPc: 30, HAlign: "center", VAlign: "center", Style: DefaultStyleName},
					{ID: "title", XPc: 5, YPc: 2, WidthPc: 90, HeightPc: 10, HAlign: "left", VAlign: "top", Style: "Song Title"},
				},
			},
			FallbackLayoutName: {
				TextBoxes: []TextBox{
					{ID: "lyrics", XPc: 5, YPc: 20, WidthPc: 90, HeightPc: 60, HAlign: "center", VAlign: "center", Style: DefaultStyleName},
				},
			},
		},
	}
}
