// Package system holds host-level helpers: raising the open-file limit
// before font and template directories are scanned, and probing the
// machine for the doctor report.
package system

import (
	"log/slog"
	"syscall"
)

// InitResourceLimits raises the soft open-file limit. Rendering a long
// set list touches many font, image and PDF files at once and the stock
// limit on some distributions is 1024.
func InitResourceLimits(log *slog.Logger) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn("could not read open file limit", "error", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn("could not raise open file limit", "error", err)
		return
	}
	log.Debug("open file limit raised", "limit", rLimit.Cur)
}
