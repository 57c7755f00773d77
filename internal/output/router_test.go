package output

import (
	"errors"
	"image/color"
	"sync"
	"testing"

	"github.com/strodow/plucky/internal/decklink"
	"github.com/strodow/plucky/internal/frame"
)

func newFrame(t *testing.T, w, h int) *frame.Buffer {
	t.Helper()
	b, err := frame.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// fakeTarget records deliveries and can be told to fail.
type fakeTarget struct {
	mu       sync.Mutex
	name     string
	active   bool
	fail     error
	received []*frame.Buffer
	enables  int
}

func (t *fakeTarget) Name() string { return t.name }

func (t *fakeTarget) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *fakeTarget) SetActive(active bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if active && !t.active {
		t.enables++
	}
	t.active = active
	return nil
}

func (t *fakeTarget) AcceptFrame(b *frame.Buffer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail != nil {
		return t.fail
	}
	t.received = append(t.received, b)
	return nil
}

func (t *fakeTarget) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.received)
}

func TestBroadcastReachesActiveTargetsOnly(t *testing.T) {
	r := NewRouter(nil)
	on := &fakeTarget{name: "on", active: true}
	off := &fakeTarget{name: "off"}
	r.Register(on)
	r.Register(off)

	if err := r.Broadcast(newFrame(t, 8, 8)); err != nil {
		t.Fatal(err)
	}
	if on.count() != 1 {
		t.Errorf("active target received %d frames, want 1", on.count())
	}
	if off.count() != 0 {
		t.Errorf("inactive target received %d frames, want 0", off.count())
	}
}

func TestBroadcastFailureIsolation(t *testing.T) {
	r := NewRouter(nil)
	screen := &fakeTarget{name: "screen", active: true}
	sdi := &fakeTarget{name: "sdi", active: true, fail: errors.New("device unplugged")}
	r.Register(screen)
	r.Register(sdi)

	var notified []string
	r.Notify = func(target string, err error) { notified = append(notified, target) }

	err := r.Broadcast(newFrame(t, 8, 8))
	if err == nil {
		t.Fatal("sdi failure not reported")
	}
	if screen.count() != 1 {
		t.Errorf("healthy target received %d frames, want 1", screen.count())
	}
	if len(notified) != 1 || notified[0] != "sdi" {
		t.Errorf("notified %v, want [sdi]", notified)
	}
	if sdi.Active() {
		t.Error("failed target still active")
	}
	if screen.Active() != true {
		t.Error("healthy target deactivated")
	}

	// The failed target stays out of the fan-out until re-enabled.
	if err := r.Broadcast(newFrame(t, 8, 8)); err != nil {
		t.Fatalf("second broadcast: %v", err)
	}
	if screen.count() != 2 {
		t.Errorf("healthy target received %d frames, want 2", screen.count())
	}
}

func TestBroadcastClonesPerTarget(t *testing.T) {
	r := NewRouter(nil)
	a := &fakeTarget{name: "a", active: true}
	b := &fakeTarget{name: "b", active: true}
	r.Register(a)
	r.Register(b)

	src, err := frame.NewFilled(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Broadcast(src); err != nil {
		t.Fatal(err)
	}
	if &a.received[0].Bytes()[0] == &src.Bytes()[0] {
		t.Error("target received the source buffer, not a copy")
	}
	if &a.received[0].Bytes()[0] == &b.received[0].Bytes()[0] {
		t.Error("two targets share one buffer")
	}
	// Same content everywhere.
	if a.received[0].At(2, 2) != b.received[0].At(2, 2) {
		t.Error("targets received different frames in one broadcast")
	}
}

func TestBroadcastNoActiveTargets(t *testing.T) {
	r := NewRouter(nil)
	r.Register(&fakeTarget{name: "idle"})
	if err := r.Broadcast(newFrame(t, 4, 4)); err != nil {
		t.Errorf("broadcast with no active targets: %v", err)
	}
	if err := r.Broadcast(nil); err == nil {
		t.Error("nil frame accepted")
	}
}

func TestTargetLookup(t *testing.T) {
	r := NewRouter(nil)
	r.Register(&fakeTarget{name: "screen"})
	if _, ok := r.Target("screen"); !ok {
		t.Error("registered target not found")
	}
	if _, ok := r.Target("missing"); ok {
		t.Error("unknown name resolved")
	}
}

func TestScreenTargetIdempotentActivation(t *testing.T) {
	surf := &fakeSurface{}
	target := NewScreenTarget("screen", surf, Geometry{Width: 1920, Height: 1080})

	if err := target.SetActive(true); err != nil {
		t.Fatal(err)
	}
	if err := target.SetActive(true); err != nil {
		t.Fatal(err)
	}
	if surf.shows != 1 {
		t.Errorf("surface shown %d times, want 1", surf.shows)
	}
	if err := target.SetActive(false); err != nil {
		t.Fatal(err)
	}
	if surf.hides != 1 {
		t.Errorf("surface hidden %d times, want 1", surf.hides)
	}
	if err := target.AcceptFrame(newFrame(t, 4, 4)); err == nil {
		t.Error("inactive screen target accepted a frame")
	}
}

func TestSdiTargetIdempotentActivation(t *testing.T) {
	sim := decklink.NewSimulator()
	sess := decklink.NewSession(sim, nil)
	mode := decklink.VideoMode{Width: 16, Height: 9, FrameRateNum: 30, FrameRateDen: 1}
	target := NewSdiTarget("sdi", sess, 0, 1, mode)

	if err := target.SetActive(true); err != nil {
		t.Fatal(err)
	}
	// Second enable must not try to re-initialize the device pair,
	// which the hardware would reject.
	if err := target.SetActive(true); err != nil {
		t.Fatalf("repeated enable: %v", err)
	}
	if on, _ := sim.KeyerState(); !on {
		t.Error("keyer not enabled")
	}

	if err := target.AcceptFrame(newFrame(t, 16, 9)); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if sim.FrameCount() != 1 {
		t.Errorf("device received %d pairs, want 1", sim.FrameCount())
	}

	if err := target.SetActive(false); err != nil {
		t.Fatal(err)
	}
	if sess.State() != decklink.APIReady {
		t.Errorf("disable left session at %s, want API_READY", sess.State())
	}
	// Re-enable acquires the pair again.
	if err := target.SetActive(true); err != nil {
		t.Fatalf("re-enable: %v", err)
	}
}

type fakeSurface struct {
	shows  int
	hides  int
	frames int
	last   *frame.Buffer
}

func (s *fakeSurface) ShowFullscreenOn(g Geometry) error { s.shows++; return nil }
func (s *fakeSurface) Hide() error                       { s.hides++; return nil }
func (s *fakeSurface) SetFrame(b *frame.Buffer) error {
	s.frames++
	s.last = b
	return nil
}
