package decklink

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/strodow/plucky/internal/frame"
)

// State tracks how far the session has progressed through the hardware
// lifecycle. Transitions only move through Open, SelectDevices,
// SendFrame, ReleaseDevices and Close; keyer controls never change it.
type State int

const (
	Uninitialized State = iota
	APIReady
	DeviceReady
	Streaming
	Errored
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "UNINITIALIZED"
	case APIReady:
		return "API_READY"
	case DeviceReady:
		return "DEVICE_READY"
	case Streaming:
		return "STREAMING"
	case Errored:
		return "ERROR"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session owns one fill/key device pair for its whole lifetime. It is
// the only path to the wrapper API, so lifecycle order is enforced in
// one place instead of at every call site.
type Session struct {
	mu    sync.Mutex
	api   API
	log   *slog.Logger
	state State

	fillIndex int
	keyIndex  int
	mode      VideoMode
}

func NewSession(api API, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{api: api, log: log, state: Uninitialized}
}

// State returns the session's current lifecycle position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mode returns the video mode the device pair was opened with. Only
// meaningful at DeviceReady or later.
func (s *Session) Mode() VideoMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// fail records a hardware failure. The device keeps showing its last
// received frame; no blanking is attempted.
func (s *Session) fail(op string, code StatusCode) error {
	s.state = Errored
	err := &StatusError{Op: op, Code: code}
	s.log.Error("decklink hardware call failed", "op", op, "code", code.String())
	return err
}

// Open initializes the wrapper API. Calling it on an already-open
// session is a no-op.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Uninitialized {
		return nil
	}
	if err := statusErr("InitializeDLL", s.api.InitializeAPI()); err != nil {
		return err
	}
	s.state = APIReady
	if v, code := s.api.Version(); code.Ok() {
		s.log.Info("decklink api ready", "version", v.String())
	}
	return nil
}

// Devices enumerates the attached devices by name.
func (s *Session) Devices() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Uninitialized {
		return nil, errors.New("decklink: session not open")
	}
	n, code := s.api.DeviceCount()
	if err := statusErr("GetDeviceCount", code); err != nil {
		return nil, err
	}
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name, code := s.api.DeviceName(i)
		if err := statusErr("GetDeviceName", code); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// SelectDevices claims a fill/key device pair and opens it in the given
// mode. Validation failures leave the session at API_READY; a hardware
// failure during initialization moves it to ERROR.
func (s *Session) SelectDevices(fillIndex, keyIndex int, mode VideoMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case Uninitialized:
		return errors.New("decklink: session not open")
	case DeviceReady, Streaming:
		return fmt.Errorf("decklink: device pair already initialized (fill=%d key=%d)", s.fillIndex, s.keyIndex)
	case Errored:
		return errors.New("decklink: session is in error state, release devices first")
	}

	if fillIndex == keyIndex {
		return fmt.Errorf("decklink: fill and key must be distinct devices, both are %d", fillIndex)
	}
	n, code := s.api.DeviceCount()
	if err := statusErr("GetDeviceCount", code); err != nil {
		return err
	}
	if n < 2 {
		return fmt.Errorf("decklink: external keying needs 2 devices, found %d", n)
	}
	if fillIndex < 0 || fillIndex >= n || keyIndex < 0 || keyIndex >= n {
		return fmt.Errorf("decklink: device index out of range (fill=%d key=%d count=%d)", fillIndex, keyIndex, n)
	}
	if mode.Width <= 0 || mode.Height <= 0 || mode.FrameRateNum <= 0 || mode.FrameRateDen <= 0 {
		return fmt.Errorf("decklink: invalid video mode %s", mode)
	}

	code = s.api.InitializeDevicePair(fillIndex, keyIndex, mode.Width, mode.Height, mode.FrameRateNum, mode.FrameRateDen)
	if !code.Ok() {
		return s.fail("InitializeDevice", code)
	}
	s.fillIndex = fillIndex
	s.keyIndex = keyIndex
	s.mode = mode
	s.state = DeviceReady
	s.log.Info("decklink device pair ready", "fill", fillIndex, "key", keyIndex, "mode", mode.String())
	return nil
}

// SendFrame derives the fill and key buffers from one straight-alpha
// frame and transmits them as a synchronized pair. The first accepted
// frame moves the session to STREAMING.
func (s *Session) SendFrame(b *frame.Buffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != DeviceReady && s.state != Streaming {
		return fmt.Errorf("decklink: cannot send frame in state %s", s.state)
	}
	if b == nil {
		return errors.New("decklink: nil frame")
	}
	if b.Width() != s.mode.Width || b.Height() != s.mode.Height {
		return fmt.Errorf("decklink: frame is %dx%d, device pair runs %dx%d",
			b.Width(), b.Height(), s.mode.Width, s.mode.Height)
	}

	fill, key := frame.DeriveFillKey(b)
	want := s.mode.Width * s.mode.Height * 4
	if len(fill) != want || len(key) != want {
		return fmt.Errorf("decklink: derived buffers are %d/%d bytes, want %d", len(fill), len(key), want)
	}

	code := s.api.UpdateExternalKeyingFrames(fill, key)
	if !code.Ok() {
		return s.fail("UpdateExternalKeyingFrames", code)
	}
	s.state = Streaming
	return nil
}

// EnableKeyer turns on external keying. Below DEVICE_READY it logs and
// returns nil so UI toggles cannot crash a half-configured session.
func (s *Session) EnableKeyer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != DeviceReady && s.state != Streaming {
		s.log.Warn("keyer enable ignored", "state", s.state.String())
		return nil
	}
	if code := s.api.EnableKeyer(true); !code.Ok() {
		return s.fail("EnableKeyer", code)
	}
	return nil
}

// DisableKeyer turns off external keying, with the same below-ready
// no-op behavior as EnableKeyer.
func (s *Session) DisableKeyer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != DeviceReady && s.state != Streaming {
		s.log.Warn("keyer disable ignored", "state", s.state.String())
		return nil
	}
	if code := s.api.DisableKeyer(); !code.Ok() {
		return s.fail("DisableKeyer", code)
	}
	return nil
}

// SetKeyerLevel sets the keyer opacity, 0 fully transparent to 255
// fully opaque.
func (s *Session) SetKeyerLevel(level uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != DeviceReady && s.state != Streaming {
		s.log.Warn("keyer level ignored", "state", s.state.String(), "level", level)
		return nil
	}
	if code := s.api.SetKeyerLevel(level); !code.Ok() {
		return s.fail("SetKeyerLevel", code)
	}
	return nil
}

// KeyerActive reports whether the hardware keyer is currently on.
func (s *Session) KeyerActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != DeviceReady && s.state != Streaming {
		return false
	}
	active, code := s.api.IsKeyerActive()
	return code.Ok() && active
}

// ReleaseDevices tears the session back down to API_READY: keyer off,
// then device pair shutdown. Each step runs even if an earlier one
// failed.
func (s *Session) ReleaseDevices() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releaseDevicesLocked()
}

func (s *Session) releaseDevicesLocked() error {
	if s.state == Uninitialized || s.state == APIReady {
		return nil
	}
	var errs []error
	if err := statusErr("DisableKeyer", s.api.DisableKeyer()); err != nil {
		errs = append(errs, err)
	}
	if err := statusErr("ShutdownDevice", s.api.ShutdownDevicePair()); err != nil {
		errs = append(errs, err)
	}
	s.state = APIReady
	return errors.Join(errs...)
}

// Close releases everything: keyer, device pair, then the API itself.
// Best effort, every step is attempted.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Uninitialized {
		return nil
	}
	var errs []error
	if err := s.releaseDevicesLocked(); err != nil {
		errs = append(errs, err)
	}
	if err := statusErr("ShutdownDLL", s.api.ShutdownAPI()); err != nil {
		errs = append(errs, err)
	}
	s.state = Uninitialized
	return errors.Join(errs...)
}

// Version reports the vendor API version string.
func (s *Session) Version() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Uninitialized {
		return "", errors.New("decklink: session not open")
	}
	v, code := s.api.Version()
	if err := statusErr("GetAPIVersion", code); err != nil {
		return "", err
	}
	return v.String(), nil
}
