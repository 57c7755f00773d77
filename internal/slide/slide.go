// Package slide defines the read-only content unit handed to the output
// core by the presentation layer. The core never mutates a Slide; it only
// reads it to produce frames.
package slide

import "github.com/google/uuid"

// Slide is an immutable-once-rendered content unit. Background concerns
// (image, solid color, PDF page, QR code) are referenced through
// BackgroundRef, which the source package knows how to open.
type Slide struct {
	ID           string
	IsBackground bool
	// BackgroundRef names the background source: empty for none,
	// "#RRGGBB[AA]" for a solid color, "pdf:path#page" for a PDF page,
	// "qr:payload" for a QR code, anything else is an image file path.
	BackgroundRef string
	// Layout names the layout to resolve against the template collections.
	Layout string
	// Text maps text-box ids to their content. An id with no matching box
	// in the resolved plan renders nothing.
	Text map[string]string
}

// New returns a slide with a fresh identity.
func New(layout string) *Slide {
	return &Slide{
		ID:     uuid.NewString(),
		Layout: layout,
		Text:   map[string]string{},
	}
}
