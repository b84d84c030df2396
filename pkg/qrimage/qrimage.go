// Package qrimage renders QR code PNGs.
package qrimage

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// RecoveryLevel picks the error-correction level for a payload: short payloads
// get the lowest level, longer ones progressively stronger correction.
func RecoveryLevel(payload string) qrcode.RecoveryLevel {
	switch n := len(payload); {
	case n < 50:
		return qrcode.Low
	case n < 100:
		return qrcode.Medium
	case n < 200:
		return qrcode.High
	default:
		return qrcode.Highest
	}
}

// PNG encodes payload as a size x size PNG image.
func PNG(payload string, size int) ([]byte, error) {
	const op = "qrimage.PNG"

	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(payload, RecoveryLevel(payload), size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return png, nil
}
