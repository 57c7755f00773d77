package decklink

import "sync"

// Simulator implements the wrapper API in memory. Tests drive the
// Session through it, and the demo path uses it when no hardware is
// present. Failure injection fields let tests exercise the error
// branches without a card.
type Simulator struct {
	mu sync.Mutex

	Devices []string

	// Failure injection. When set, the corresponding call returns the
	// code instead of succeeding.
	FailInitAPI    StatusCode
	FailInitDevice StatusCode
	FailUpdate     StatusCode
	FailKeyer      StatusCode

	apiUp      bool
	deviceUp   bool
	fillIndex  int
	keyIndex   int
	mode       VideoMode
	keyerOn    bool
	keyerLevel uint8

	frames   int
	lastFill []byte
	lastKey  []byte
}

// NewSimulator returns a simulator exposing two keyer-capable devices.
func NewSimulator() *Simulator {
	return &Simulator{
		Devices:    []string{"DeckLink Duo 2 (1)", "DeckLink Duo 2 (2)"},
		keyerLevel: 255,
	}
}

func (s *Simulator) InitializeAPI() StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailInitAPI != 0 {
		return s.FailInitAPI
	}
	s.apiUp = true
	return StatusOK
}

func (s *Simulator) ShutdownAPI() StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiUp = false
	s.deviceUp = false
	return StatusOK
}

func (s *Simulator) DeviceCount() (int, StatusCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.apiUp {
		return 0, StatusFail
	}
	return len(s.Devices), StatusOK
}

func (s *Simulator) DeviceName(index int) (string, StatusCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.apiUp {
		return "", StatusFail
	}
	if index < 0 || index >= len(s.Devices) {
		return "", StatusInvalidArg
	}
	return s.Devices[index], StatusOK
}

func (s *Simulator) InitializeDevicePair(fillIndex, keyIndex, width, height int, frNum, frDen int64) StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.apiUp {
		return StatusFail
	}
	if s.FailInitDevice != 0 {
		return s.FailInitDevice
	}
	// The hardware rejects double-initialization of a pair.
	if s.deviceUp {
		return StatusFail
	}
	if fillIndex < 0 || fillIndex >= len(s.Devices) ||
		keyIndex < 0 || keyIndex >= len(s.Devices) {
		return StatusInvalidArg
	}
	s.deviceUp = true
	s.fillIndex = fillIndex
	s.keyIndex = keyIndex
	s.mode = VideoMode{Width: width, Height: height, FrameRateNum: frNum, FrameRateDen: frDen}
	return StatusOK
}

func (s *Simulator) ShutdownDevicePair() StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deviceUp = false
	s.keyerOn = false
	return StatusOK
}

func (s *Simulator) UpdateExternalKeyingFrames(fill, key []byte) StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deviceUp {
		return StatusFail
	}
	if s.FailUpdate != 0 {
		return s.FailUpdate
	}
	want := s.mode.Width * s.mode.Height * 4
	if len(fill) != want || len(key) != want {
		return StatusInvalidArg
	}
	s.frames++
	s.lastFill = append(s.lastFill[:0], fill...)
	s.lastKey = append(s.lastKey[:0], key...)
	return StatusOK
}

func (s *Simulator) EnableKeyer(external bool) StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deviceUp {
		return StatusFail
	}
	if s.FailKeyer != 0 {
		return s.FailKeyer
	}
	s.keyerOn = true
	return StatusOK
}

func (s *Simulator) DisableKeyer() StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deviceUp {
		return StatusFalse
	}
	s.keyerOn = false
	return StatusOK
}

func (s *Simulator) SetKeyerLevel(level uint8) StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deviceUp {
		return StatusFail
	}
	if s.FailKeyer != 0 {
		return s.FailKeyer
	}
	s.keyerLevel = level
	return StatusOK
}

func (s *Simulator) IsKeyerActive() (bool, StatusCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deviceUp {
		return false, StatusFalse
	}
	if s.keyerOn {
		return true, StatusOK
	}
	return false, StatusFalse
}

func (s *Simulator) Version() (APIVersion, StatusCode) {
	// 12.4.1 packed major.minor.patch.
	return APIVersion(12<<24 | 4<<16 | 1<<8), StatusOK
}

// FrameCount reports how many synchronized pairs the simulator accepted.
func (s *Simulator) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// LastFrames returns copies of the most recent fill and key buffers.
func (s *Simulator) LastFrames() (fill, key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.lastFill...), append([]byte(nil), s.lastKey...)
}

// KeyerState reports the simulated keyer enable flag and level.
func (s *Simulator) KeyerState() (bool, uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyerOn, s.keyerLevel
}
