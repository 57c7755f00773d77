package source

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// QR renders a QR code slide background, e.g. a connect link shown to
// the congregation before the service.
type QR struct {
	Payload string
}

func (s *QR) Background(targetWidth, targetHeight int) (image.Image, error) {
	if s.Payload == "" {
		return nil, fmt.Errorf("empty qr payload")
	}
	size := targetHeight
	if targetWidth > 0 && targetWidth < size {
		size = targetWidth
	}
	if size <= 0 {
		size = 512
	}
	code, err := qrcode.New(s.Payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return code.Image(size), nil
}
