//go:build darwin || linux

package decklink

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// libraryNames are tried in order when no explicit path is configured.
var libraryNames = []string{
	"libplucky_decklink.so",
	"libplucky_decklink.dylib",
}

// Library binds the wrapper shared library through purego, avoiding a
// cgo dependency. All symbols are resolved at open time so a missing
// export surfaces immediately instead of at the first live call.
type Library struct {
	handle uintptr

	initializeDLL  func() uint32
	shutdownDLL    func() uint32
	getDeviceCount func(*int32) uint32
	getDeviceName  func(int32, *byte, int32) uint32

	initializeDevice func(int32, int32, int32, int32, int64, int64) uint32
	shutdownDevice   func() uint32

	updateFrames func(unsafe.Pointer, unsafe.Pointer) uint32

	enableKeyer   func(int32) uint32
	disableKeyer  func() uint32
	setKeyerLevel func(uint8) uint32
	isKeyerActive func(*int32) uint32

	getAPIVersion func(*uint32) uint32
}

// OpenLibrary loads the wrapper library. An empty path tries the
// well-known library names on the default search path.
func OpenLibrary(path string) (*Library, error) {
	paths := []string{path}
	if path == "" {
		paths = libraryNames
	}

	var handle uintptr
	var lastErr error
	for _, p := range paths {
		h, err := purego.Dlopen(p, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			handle = h
			break
		}
		lastErr = err
	}
	if handle == 0 {
		return nil, fmt.Errorf("load decklink wrapper: %w", lastErr)
	}

	l := &Library{handle: handle}
	purego.RegisterLibFunc(&l.initializeDLL, handle, "InitializeDLL")
	purego.RegisterLibFunc(&l.shutdownDLL, handle, "ShutdownDLL")
	purego.RegisterLibFunc(&l.getDeviceCount, handle, "GetDeviceCount")
	purego.RegisterLibFunc(&l.getDeviceName, handle, "GetDeviceName")
	purego.RegisterLibFunc(&l.initializeDevice, handle, "InitializeDevice")
	purego.RegisterLibFunc(&l.shutdownDevice, handle, "ShutdownDevice")
	purego.RegisterLibFunc(&l.updateFrames, handle, "UpdateExternalKeyingFrames")
	purego.RegisterLibFunc(&l.enableKeyer, handle, "EnableKeyer")
	purego.RegisterLibFunc(&l.disableKeyer, handle, "DisableKeyer")
	purego.RegisterLibFunc(&l.setKeyerLevel, handle, "SetKeyerLevel")
	purego.RegisterLibFunc(&l.isKeyerActive, handle, "IsKeyerActive")
	purego.RegisterLibFunc(&l.getAPIVersion, handle, "GetAPIVersion")
	return l, nil
}

func (l *Library) InitializeAPI() StatusCode { return StatusCode(l.initializeDLL()) }
func (l *Library) ShutdownAPI() StatusCode   { return StatusCode(l.shutdownDLL()) }

func (l *Library) DeviceCount() (int, StatusCode) {
	var n int32
	code := StatusCode(l.getDeviceCount(&n))
	return int(n), code
}

func (l *Library) DeviceName(index int) (string, StatusCode) {
	buf := make([]byte, 256)
	code := StatusCode(l.getDeviceName(int32(index), &buf[0], int32(len(buf))))
	if !code.Ok() {
		return "", code
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i]), code
		}
	}
	return string(buf), code
}

func (l *Library) InitializeDevicePair(fillIndex, keyIndex, width, height int, frNum, frDen int64) StatusCode {
	return StatusCode(l.initializeDevice(
		int32(fillIndex), int32(keyIndex),
		int32(width), int32(height),
		frNum, frDen,
	))
}

func (l *Library) ShutdownDevicePair() StatusCode { return StatusCode(l.shutdownDevice()) }

func (l *Library) UpdateExternalKeyingFrames(fill, key []byte) StatusCode {
	if len(fill) == 0 || len(key) == 0 {
		return StatusPointer
	}
	return StatusCode(l.updateFrames(
		unsafe.Pointer(&fill[0]),
		unsafe.Pointer(&key[0]),
	))
}

func (l *Library) EnableKeyer(external bool) StatusCode {
	var ext int32
	if external {
		ext = 1
	}
	return StatusCode(l.enableKeyer(ext))
}

func (l *Library) DisableKeyer() StatusCode { return StatusCode(l.disableKeyer()) }

func (l *Library) SetKeyerLevel(level uint8) StatusCode {
	return StatusCode(l.setKeyerLevel(level))
}

func (l *Library) IsKeyerActive() (bool, StatusCode) {
	var active int32
	code := StatusCode(l.isKeyerActive(&active))
	return active != 0, code
}

func (l *Library) Version() (APIVersion, StatusCode) {
	var v uint32
	code := StatusCode(l.getAPIVersion(&v))
	return APIVersion(v), code
}
