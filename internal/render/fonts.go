package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontRegistry maps family names to parsed fonts, with the embedded Go
// fonts as the platform fallback so an unresolvable family degrades to a
// usable face instead of aborting a render.
type FontRegistry struct {
	mu       sync.RWMutex
	families map[string]*sfnt.Font

	fallback map[fontVariant]*sfnt.Font
}

type fontVariant struct {
	bold   bool
	italic bool
}

// NewFontRegistry returns a registry seeded with the embedded fallback
// faces only.
func NewFontRegistry() (*FontRegistry, error) {
	r := &FontRegistry{
		families: map[string]*sfnt.Font{},
		fallback: map[fontVariant]*sfnt.Font{},
	}
	for _, f := range []struct {
		variant fontVariant
		data    []byte
	}{
		{fontVariant{}, goregular.TTF},
		{fontVariant{bold: true}, gobold.TTF},
		{fontVariant{italic: true}, goitalic.TTF},
		{fontVariant{bold: true, italic: true}, gobolditalic.TTF},
	} {
		parsed, err := opentype.Parse(f.data)
		if err != nil {
			return nil, fmt.Errorf("parse embedded font: %w", err)
		}
		r.fallback[f.variant] = parsed
	}
	return r, nil
}

// LoadDir registers every .ttf/.otf file found in dir under its family
// name. Unparseable files are logged and skipped.
func (r *FontRegistry) LoadDir(dir string, log *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("font file unreadable", "path", path, "err", err)
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			log.Warn("font file unparseable", "path", path, "err", err)
			continue
		}
		name := familyName(parsed, entry.Name())
		r.mu.Lock()
		r.families[strings.ToLower(name)] = parsed
		r.mu.Unlock()
	}
	return nil
}

func familyName(f *sfnt.Font, filename string) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// Face builds a font.Face for the requested family and size. A family
// that cannot be resolved degrades to the embedded fallback matching the
// bold/italic flags; found reports whether the family itself matched.
func (r *FontRegistry) Face(family string, sizePt float64, bold, italic bool) (font.Face, bool, error) {
	r.mu.RLock()
	parsed, found := r.families[strings.ToLower(family)]
	r.mu.RUnlock()
	if !found {
		parsed = r.fallback[fontVariant{bold: bold, italic: italic}]
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, found, fmt.Errorf("face %q %gpt: %w", family, sizePt, err)
	}
	return face, found, nil
}
