// Package decklink talks to the vendor's external-keying wrapper
// library. Every call returns an HRESULT-style status code; the Session
// type layers a lifecycle state machine on top so callers cannot reach
// the hardware out of order.
package decklink

import "fmt"

// StatusCode is the integer result every wrapper call returns.
// 0 is success, 1 is "success but condition false", anything else is
// an error code that must be decoded and surfaced.
type StatusCode uint32

const (
	StatusOK    StatusCode = 0x00000000
	StatusFalse StatusCode = 0x00000001

	StatusFail         StatusCode = 0x80004005
	StatusInvalidArg   StatusCode = 0x80070057
	StatusPointer      StatusCode = 0x80004003
	StatusNoInterface  StatusCode = 0x80004002
	StatusOutOfMemory  StatusCode = 0x8007000E
	StatusNotSupported StatusCode = 0x80004001
)

// Ok reports whether the code is a success code (including the
// "false condition" variant).
func (c StatusCode) Ok() bool { return c == StatusOK || c == StatusFalse }

func (c StatusCode) String() string {
	switch c {
	case StatusOK:
		return "OK"
	case StatusFalse:
		return "S_FALSE"
	case StatusFail:
		return "E_FAIL"
	case StatusInvalidArg:
		return "E_INVALIDARG"
	case StatusPointer:
		return "E_POINTER"
	case StatusNoInterface:
		return "E_NOINTERFACE"
	case StatusOutOfMemory:
		return "E_OUTOFMEMORY"
	case StatusNotSupported:
		return "E_NOTIMPL"
	default:
		return fmt.Sprintf("0x%08X", uint32(c))
	}
}

// StatusError wraps a failing wrapper call with the operation name so
// logs show which hardware call failed.
type StatusError struct {
	Op   string
	Code StatusCode
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("decklink: %s failed: %s", e.Op, e.Code)
}

// statusErr returns nil for success codes.
func statusErr(op string, code StatusCode) error {
	if code.Ok() {
		return nil
	}
	return &StatusError{Op: op, Code: code}
}

// VideoMode describes the fixed raster the device pair is opened with.
type VideoMode struct {
	Width        int
	Height       int
	FrameRateNum int64
	FrameRateDen int64
}

// DefaultMode is 1080p29.97, the mode the supported keyer cards run in.
var DefaultMode = VideoMode{
	Width:        1920,
	Height:       1080,
	FrameRateNum: 30000,
	FrameRateDen: 1001,
}

func (m VideoMode) String() string {
	return fmt.Sprintf("%dx%d@%d/%d", m.Width, m.Height, m.FrameRateNum, m.FrameRateDen)
}

// APIVersion is the packed vendor API version as reported by the
// wrapper: one byte per component, major in the high byte.
type APIVersion uint32

func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", byte(v>>24), byte(v>>16), byte(v>>8))
}

// API is the wrapper library's call surface. The real binding loads a
// shared library at runtime; the Simulator implements the same surface
// in memory for tests and the demo path.
type API interface {
	InitializeAPI() StatusCode
	ShutdownAPI() StatusCode

	DeviceCount() (int, StatusCode)
	DeviceName(index int) (string, StatusCode)

	InitializeDevicePair(fillIndex, keyIndex, width, height int, frNum, frDen int64) StatusCode
	ShutdownDevicePair() StatusCode

	// UpdateExternalKeyingFrames transmits one synchronized fill/key
	// pair. Both buffers are BGRA and must be exactly width*height*4
	// bytes for the mode the pair was initialized with.
	UpdateExternalKeyingFrames(fill, key []byte) StatusCode

	EnableKeyer(external bool) StatusCode
	DisableKeyer() StatusCode
	SetKeyerLevel(level uint8) StatusCode
	IsKeyerActive() (bool, StatusCode)

	Version() (APIVersion, StatusCode)
}
