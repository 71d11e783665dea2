// Package phash computes the four perceptual similarity hashes of a decoded
// pixel grid. Each hash is an independent 64-bit fingerprint; Hamming
// distance is only meaningful between hashes of the same algorithm, which
// goimagehash enforces through its hash kinds.
package phash

import (
	"errors"
	"fmt"
	"image"

	"github.com/corona10/goimagehash"

	"github.com/SyreCollins/img-metadata/core"
)

// ErrDegenerateImage means the pixel grid is too small to resample.
var ErrDegenerateImage = errors.New("phash: image too small to hash")

// Compute returns all four hashes, hex-encoded. The input is never mutated.
func Compute(img image.Image) (*core.HashSet, error) {
	b := img.Bounds()
	if b.Dx()*b.Dy() <= 1 {
		return nil, ErrDegenerateImage
	}

	avg, err := goimagehash.AverageHash(img)
	if err != nil {
		return nil, fmt.Errorf("phash: average: %w", err)
	}
	diff, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return nil, fmt.Errorf("phash: difference: %w", err)
	}
	perc, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("phash: perception: %w", err)
	}
	wav, err := WaveletHash(img)
	if err != nil {
		return nil, fmt.Errorf("phash: wavelet: %w", err)
	}

	return &core.HashSet{
		Average:    hexHash(avg),
		Difference: hexHash(diff),
		Wavelet:    hexHash(wav),
		Perceptual: hexHash(perc),
	}, nil
}

func hexHash(h *goimagehash.ImageHash) string {
	return fmt.Sprintf("%016x", h.GetHash())
}
