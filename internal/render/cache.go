package render

import (
	"sync"

	"github.com/strodow/plucky/internal/frame"
	"github.com/strodow/plucky/internal/slide"
	"github.com/strodow/plucky/internal/template"
)

type cacheKey struct {
	slideID string
	layout  string
	width   int
	height  int
}

// Cache memoizes rendered frames keyed by slide identity, resolved
// layout and render resolution. The presentation layer signals content
// or template changes through Invalidate; the cache never guesses
// staleness on its own.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*frame.Buffer
}

func NewCache() *Cache {
	return &Cache{entries: map[cacheKey]*frame.Buffer{}}
}

func (c *Cache) Get(slideID, layout string, width, height int) (*frame.Buffer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fb, ok := c.entries[cacheKey{slideID, layout, width, height}]
	return fb, ok
}

func (c *Cache) Put(slideID, layout string, width, height int, fb *frame.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{slideID, layout, width, height}] = fb
}

// Invalidate drops every cached frame for one slide, at all resolutions
// and layouts.
func (c *Cache) Invalidate(slideID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.slideID == slideID {
			delete(c.entries, k)
		}
	}
}

// Reset drops everything, e.g. after a template collection reload.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[cacheKey]*frame.Buffer{}
}

// CachingRenderer wraps a Renderer with a Cache. Frames handed out are
// cloned so callers can pass them to ownership-taking targets.
type CachingRenderer struct {
	Inner Renderer
	Cache *Cache
}

func (r *CachingRenderer) Render(s *slide.Slide, plan template.RenderPlan, width, height int) (*frame.Buffer, error) {
	if fb, ok := r.Cache.Get(s.ID, plan.Layout, width, height); ok {
		return fb.Clone(), nil
	}
	fb, err := r.Inner.Render(s, plan, width, height)
	if err != nil {
		return nil, err
	}
	r.Cache.Put(s.ID, plan.Layout, width, height, fb)
	return fb.Clone(), nil
}
