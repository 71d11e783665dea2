// Package colors computes histogram statistics, dominant-color palettes and
// geometric summaries from a decoded pixel grid.
package colors

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/nfnt/resize"

	"github.com/SyreCollins/img-metadata/core"
)

// ErrDegenerateImage means the pixel grid is too small to analyze.
var ErrDegenerateImage = errors.New("colors: image too small to analyze")

const (
	// Downsample grid side for the dominant-color count.
	dominantSide = 100
	// DefaultTopK is the palette length when the caller passes no limit.
	DefaultTopK = 5
)

// Stats fills the 768-slot histogram (256 bins per channel, R then G then B)
// in one pass over the RGB-converted pixels and derives mean, median,
// population standard deviation and RMS per channel from the bins.
func Stats(img image.Image) (*core.ColorStats, error) {
	b := img.Bounds()
	n := int64(b.Dx()) * int64(b.Dy())
	if n <= 1 {
		return nil, ErrDegenerateImage
	}

	stats := &core.ColorStats{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			stats.Histogram[r>>8]++
			stats.Histogram[256+(g>>8)]++
			stats.Histogram[512+(bl>>8)]++
		}
	}

	for ch := 0; ch < 3; ch++ {
		bins := stats.Histogram[ch*256 : ch*256+256]

		var sum, sumSq float64
		for i, count := range bins {
			v := float64(i)
			sum += v * float64(count)
			sumSq += v * v * float64(count)
		}
		mean := sum / float64(n)
		stats.Mean[ch] = mean
		stats.RMS[ch] = math.Sqrt(sumSq / float64(n))
		stats.StdDev[ch] = math.Sqrt(math.Max(0, sumSq/float64(n)-mean*mean))

		half := (n + 1) / 2
		var cum int64
		for i, count := range bins {
			cum += count
			if cum >= half {
				stats.Median[ch] = float64(i)
				break
			}
		}
	}
	return stats, nil
}

// Dominant downsamples the image to a fixed small grid, counts exact pixel
// values and returns the top-k most frequent colors, most frequent first,
// ties broken by first encounter. Images already inside the grid are
// counted as-is.
func Dominant(img image.Image, k int) ([]core.DominantColor, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrDegenerateImage
	}
	grid := img
	if b.Dx() > dominantSide || b.Dy() > dominantSide {
		grid = resize.Resize(dominantSide, dominantSide, img, resize.NearestNeighbor)
	}

	type rgb struct{ r, g, b uint8 }
	counts := make(map[rgb]int)
	var order []rgb
	gb := grid.Bounds()
	for y := gb.Min.Y; y < gb.Max.Y; y++ {
		for x := gb.Min.X; x < gb.Max.X; x++ {
			r, g, bl, _ := grid.At(x, y).RGBA()
			c := rgb{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
			if counts[c] == 0 {
				order = append(order, c)
			}
			counts[c]++
		}
	}

	// Stable sort keeps first-encounter order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > k {
		order = order[:k]
	}

	out := make([]core.DominantColor, 0, len(order))
	for _, c := range order {
		out = append(out, core.DominantColor{
			Hex:   fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b),
			R:     c.r,
			G:     c.g,
			B:     c.b,
			Count: counts[c],
		})
	}
	return out, nil
}

// AspectRatio reduces width:height by their greatest common divisor.
func AspectRatio(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	g := gcd(w, h)
	return fmt.Sprintf("%d:%d", w/g, h/g)
}

// Megapixels returns width*height in millions, rounded to two decimals.
func Megapixels(w, h int) float64 {
	return math.Round(float64(w)*float64(h)/1e6*100) / 100
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
