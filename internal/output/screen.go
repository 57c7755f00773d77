package output

import (
	"fmt"
	"sync"

	"github.com/strodow/plucky/internal/frame"
)

// Geometry places a fullscreen surface on one monitor, in desktop
// coordinates.
type Geometry struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}

// Surface is the window-system boundary: a borderless fullscreen window
// the GUI layer provides. The output package never touches widget code
// directly.
type Surface interface {
	ShowFullscreenOn(g Geometry) error
	SetFrame(b *frame.Buffer) error
	Hide() error
}

// ScreenTarget shows program frames on a fullscreen surface.
type ScreenTarget struct {
	mu      sync.Mutex
	name    string
	surface Surface
	geom    Geometry
	active  bool
}

func NewScreenTarget(name string, surface Surface, geom Geometry) *ScreenTarget {
	return &ScreenTarget{name: name, surface: surface, geom: geom}
}

func (t *ScreenTarget) Name() string { return t.name }

func (t *ScreenTarget) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *ScreenTarget) SetActive(active bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if active == t.active {
		return nil
	}
	if active {
		if err := t.surface.ShowFullscreenOn(t.geom); err != nil {
			return fmt.Errorf("show screen output: %w", err)
		}
		t.active = true
		return nil
	}
	t.active = false
	if err := t.surface.Hide(); err != nil {
		return fmt.Errorf("hide screen output: %w", err)
	}
	return nil
}

func (t *ScreenTarget) AcceptFrame(b *frame.Buffer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return fmt.Errorf("screen target %s is not active", t.name)
	}
	return t.surface.SetFrame(b)
}
