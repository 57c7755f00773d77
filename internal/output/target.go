// Package output routes composited program frames to live outputs: a
// fullscreen surface on a monitor, an SDI keyer device, or both.
package output

import "github.com/strodow/plucky/internal/frame"

// Target is one live output. Targets are independent: the router never
// assumes anything about delivery order across them, and one target's
// failure must not affect another's delivery.
type Target interface {
	Name() string

	// SetActive enables or disables the target. Enabling twice without
	// an intervening disable must not re-acquire hardware resources;
	// disabling releases any exclusive handle before returning.
	SetActive(active bool) error
	Active() bool

	// AcceptFrame delivers one frame. The buffer is the target's own
	// copy; it may retain or mutate it.
	AcceptFrame(b *frame.Buffer) error
}
