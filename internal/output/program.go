package output

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/strodow/plucky/internal/frame"
	"github.com/strodow/plucky/internal/render"
	"github.com/strodow/plucky/internal/slide"
	"github.com/strodow/plucky/internal/template"
)

// Controller holds the two scene slots. Preview follows the operator's
// selection immediately; Program only changes on Take or ClearProgram,
// so the live outputs never see a half-built frame.
type Controller struct {
	mu        sync.Mutex
	renderer  render.Renderer
	templates *template.Collections
	router    *Router
	log       *slog.Logger

	programWidth  int
	programHeight int
	previewWidth  int
	previewHeight int

	previewBackground *slide.Slide
	previewContent    *slide.Slide
	previewFrame      *frame.Buffer

	programFrame *frame.Buffer
	live         bool
}

func NewController(r render.Renderer, templates *template.Collections, router *Router, log *slog.Logger, programWidth, programHeight int) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		renderer:      r,
		templates:     templates,
		router:        router,
		log:           log,
		programWidth:  programWidth,
		programHeight: programHeight,
		previewWidth:  programWidth / 4,
		previewHeight: programHeight / 4,
	}
}

// SetPreviewSize changes the resolution preview frames are rendered at.
// The program resolution is fixed for the controller's lifetime.
func (c *Controller) SetPreviewSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.previewWidth = width
	c.previewHeight = height
}

// UpdatePreview replaces the preview scene and re-renders it. Last
// write wins; there is no queueing. Either slide may be nil.
func (c *Controller) UpdatePreview(background, content *slide.Slide) (*frame.Buffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.previewBackground = background
	c.previewContent = content

	fb, err := c.renderScene(background, content, c.previewWidth, c.previewHeight)
	if err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	c.previewFrame = fb
	return fb.Clone(), nil
}

// Take renders the current preview scene at program resolution and
// promotes it to the program slot, then broadcasts it. If any render
// fails, the previous program frame is kept untouched and the error is
// returned; a live frame is never replaced by a broken one. Delivery
// failures are returned too, but by then the program slot has already
// been updated.
func (c *Controller) Take() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fb, err := c.renderScene(c.previewBackground, c.previewContent, c.programWidth, c.programHeight)
	if err != nil {
		return fmt.Errorf("take: %w", err)
	}
	c.programFrame = fb
	c.live = true
	c.log.Info("take", "width", c.programWidth, "height", c.programHeight)
	return c.router.Broadcast(fb)
}

// ClearProgram goes off air: the program slot becomes a fully
// transparent frame and is broadcast, while preview stays untouched.
func (c *Controller) ClearProgram() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	fb, err := frame.New(c.programWidth, c.programHeight)
	if err != nil {
		return fmt.Errorf("clear program: %w", err)
	}
	c.programFrame = fb
	c.live = false
	c.log.Info("program cleared")
	return c.router.Broadcast(c.programFrame)
}

// Live reports whether the program slot holds taken content.
func (c *Controller) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// PreviewFrame returns a copy of the last rendered preview frame, or
// nil if nothing has been previewed yet.
func (c *Controller) PreviewFrame() *frame.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.previewFrame == nil {
		return nil
	}
	return c.previewFrame.Clone()
}

// ProgramFrame returns a copy of the current program frame, or nil
// before the first Take or ClearProgram.
func (c *Controller) ProgramFrame() *frame.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.programFrame == nil {
		return nil
	}
	return c.programFrame.Clone()
}

// renderScene rasterizes the background and content slides and
// composites them. Both nil yields a fully transparent frame.
func (c *Controller) renderScene(background, content *slide.Slide, width, height int) (*frame.Buffer, error) {
	if background == nil && content == nil {
		return frame.New(width, height)
	}

	var bg, fg *frame.Buffer
	var err error
	if background != nil {
		plan := c.templates.Resolve(background.Layout)
		bg, err = c.renderer.Render(background, plan, width, height)
		if err != nil {
			return nil, fmt.Errorf("background slide %s: %w", background.ID, err)
		}
	}
	if content != nil {
		plan := c.templates.Resolve(content.Layout)
		fg, err = c.renderer.Render(content, plan, width, height)
		if err != nil {
			return nil, fmt.Errorf("content slide %s: %w", content.ID, err)
		}
	}
	return frame.Compose(bg, fg)
}
