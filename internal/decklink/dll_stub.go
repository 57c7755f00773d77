//go:build !darwin && !linux

package decklink

import "errors"

type Library struct{}

// OpenLibrary is unavailable on platforms without a wrapper build.
func OpenLibrary(path string) (*Library, error) {
	return nil, errors.New("decklink: wrapper library not supported on this platform")
}

func (l *Library) InitializeAPI() StatusCode             { return StatusNotSupported }
func (l *Library) ShutdownAPI() StatusCode               { return StatusNotSupported }
func (l *Library) DeviceCount() (int, StatusCode)        { return 0, StatusNotSupported }
func (l *Library) DeviceName(int) (string, StatusCode)   { return "", StatusNotSupported }
func (l *Library) ShutdownDevicePair() StatusCode        { return StatusNotSupported }
func (l *Library) DisableKeyer() StatusCode              { return StatusNotSupported }
func (l *Library) SetKeyerLevel(uint8) StatusCode        { return StatusNotSupported }
func (l *Library) IsKeyerActive() (bool, StatusCode)     { return false, StatusNotSupported }
func (l *Library) Version() (APIVersion, StatusCode)     { return 0, StatusNotSupported }
func (l *Library) EnableKeyer(bool) StatusCode           { return StatusNotSupported }
func (l *Library) UpdateExternalKeyingFrames(fill, key []byte) StatusCode {
	return StatusNotSupported
}
func (l *Library) InitializeDevicePair(fillIndex, keyIndex, width, height int, frNum, frDen int64) StatusCode {
	return StatusNotSupported
}
