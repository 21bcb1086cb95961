package quantize

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
)

// ContentSeed generates a deterministic seed from image content.
// This hashes the pixel data so the same image always clusters the same way,
// regardless of filename or location.
func ContentSeed(img image.Image) (int64, error) {
	if img == nil {
		return 0, fmt.Errorf("image cannot be nil")
	}

	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are safe to convert
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are safe to convert
	hasher.Write(dimBytes)

	// A grid of roughly 100x100 samples is enough to tell images apart.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 4)

	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixelBytes[0] = byte(r >> 8)
			pixelBytes[1] = byte(g >> 8)
			pixelBytes[2] = byte(b >> 8)
			pixelBytes[3] = byte(a >> 8)
			hasher.Write(pixelBytes)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])), nil // #nosec G115 -- hash conversion is safe
}
