package phash

import (
	"image"
	"sort"

	"github.com/corona10/goimagehash"
	"github.com/nfnt/resize"
)

const (
	waveletScale = 64 // resample side, power of two
	bandSide     = 8  // approximation band kept for the hash
)

// WaveletHash computes a 64-bit Haar wavelet hash: resample to a 64x64
// grayscale plane, run a 2D Haar decomposition down to an 8x8 approximation
// band, and threshold each coefficient against the band's median. The
// result carries the WHash kind so distances against other kinds error out.
func WaveletHash(img image.Image) (*goimagehash.ImageHash, error) {
	b := img.Bounds()
	if b.Dx()*b.Dy() <= 1 {
		return nil, ErrDegenerateImage
	}
	small := resize.Resize(waveletScale, waveletScale, img, resize.Bicubic)

	// Luminance plane in [0, 1].
	plane := make([]float64, waveletScale*waveletScale)
	min := small.Bounds().Min
	for y := 0; y < waveletScale; y++ {
		for x := 0; x < waveletScale; x++ {
			r, g, bl, _ := small.At(min.X+x, min.Y+y).RGBA()
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)
			plane[y*waveletScale+x] = lum / 65535.0
		}
	}

	// Decompose until the approximation quadrant is bandSide wide.
	for side := waveletScale; side > bandSide; side /= 2 {
		haarStep(plane, waveletScale, side)
	}

	band := make([]float64, 0, bandSide*bandSide)
	for y := 0; y < bandSide; y++ {
		for x := 0; x < bandSide; x++ {
			band = append(band, plane[y*waveletScale+x])
		}
	}
	med := median(band)

	var hash uint64
	for _, c := range band {
		hash <<= 1
		if c > med {
			hash |= 1
		}
	}
	return goimagehash.NewImageHash(hash, goimagehash.WHash), nil
}

// haarStep runs one Haar level over the top-left side x side quadrant of a
// stride-wide plane: averages land in the first half, details in the
// second, rows first then columns.
func haarStep(plane []float64, stride, side int) {
	half := side / 2
	tmp := make([]float64, side)

	for y := 0; y < side; y++ {
		row := plane[y*stride : y*stride+side]
		for i := 0; i < half; i++ {
			tmp[i] = (row[2*i] + row[2*i+1]) / 2
			tmp[half+i] = (row[2*i] - row[2*i+1]) / 2
		}
		copy(row, tmp)
	}
	for x := 0; x < side; x++ {
		for i := 0; i < half; i++ {
			a, b := plane[(2*i)*stride+x], plane[(2*i+1)*stride+x]
			tmp[i] = (a + b) / 2
			tmp[half+i] = (a - b) / 2
		}
		for i := 0; i < side; i++ {
			plane[i*stride+x] = tmp[i]
		}
	}
}

// median returns the middle value of vs without reordering it.
func median(vs []float64) float64 {
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
