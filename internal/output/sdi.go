package output

import (
	"fmt"
	"sync"

	"github.com/strodow/plucky/internal/decklink"
	"github.com/strodow/plucky/internal/frame"
)

// SdiTarget drives an external-keying device pair through a decklink
// session. Enabling claims the pair and turns the keyer on; disabling
// releases the pair so another session can use it.
type SdiTarget struct {
	mu   sync.Mutex
	name string
	sess *decklink.Session

	fillIndex int
	keyIndex  int
	mode      decklink.VideoMode
	level     uint8

	active bool
}

func NewSdiTarget(name string, sess *decklink.Session, fillIndex, keyIndex int, mode decklink.VideoMode) *SdiTarget {
	return &SdiTarget{
		name:      name,
		sess:      sess,
		fillIndex: fillIndex,
		keyIndex:  keyIndex,
		mode:      mode,
		level:     255,
	}
}

func (t *SdiTarget) Name() string { return t.name }

func (t *SdiTarget) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Mode returns the video mode the target opens its device pair with.
func (t *SdiTarget) Mode() decklink.VideoMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

func (t *SdiTarget) SetActive(active bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if active == t.active {
		return nil
	}
	if !active {
		t.active = false
		if err := t.sess.ReleaseDevices(); err != nil {
			return fmt.Errorf("release sdi devices: %w", err)
		}
		return nil
	}

	if err := t.sess.Open(); err != nil {
		return fmt.Errorf("open sdi session: %w", err)
	}
	if err := t.sess.SelectDevices(t.fillIndex, t.keyIndex, t.mode); err != nil {
		return fmt.Errorf("select sdi devices: %w", err)
	}
	if err := t.sess.EnableKeyer(); err != nil {
		t.sess.ReleaseDevices()
		return fmt.Errorf("enable keyer: %w", err)
	}
	if err := t.sess.SetKeyerLevel(t.level); err != nil {
		t.sess.ReleaseDevices()
		return fmt.Errorf("set keyer level: %w", err)
	}
	t.active = true
	return nil
}

// SetKeyerLevel stores the keyer opacity and applies it immediately
// when the device pair is up.
func (t *SdiTarget) SetKeyerLevel(level uint8) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.level = level
	if !t.active {
		return nil
	}
	return t.sess.SetKeyerLevel(level)
}

func (t *SdiTarget) AcceptFrame(b *frame.Buffer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return fmt.Errorf("sdi target %s is not active", t.name)
	}
	return t.sess.SendFrame(b)
}
