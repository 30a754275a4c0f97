package stdimg

import (
	"fmt"
	"image"
)

// Histogram holds per-channel value counts of an image.
type Histogram struct {
	R, G, B [256]int
	Total   int // pixels counted
}

// ComputeHistogram counts the red, green and blue values of src.
// Alpha is ignored.
func ComputeHistogram(src *image.NRGBA) Histogram {
	var h Histogram
	if src == nil {
		return h
	}
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := src.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			h.R[src.Pix[i+0]]++
			h.G[src.Pix[i+1]]++
			h.B[src.Pix[i+2]]++
			i += 4
		}
	}
	h.Total = b.Dx() * b.Dy()
	return h
}

// Clipping is the fraction of channel samples pinned at 0 or 255.
type Clipping struct {
	Shadows    float64
	Highlights float64
}

// Clipped reports, over all three channels, which fraction of samples sit
// at the ends of the range. A graded image with large values here has lost
// detail that the source still had.
func (h Histogram) Clipped() Clipping {
	if h.Total == 0 {
		return Clipping{}
	}
	n := float64(3 * h.Total)
	lo := h.R[0] + h.G[0] + h.B[0]
	hi := h.R[255] + h.G[255] + h.B[255]
	return Clipping{Shadows: float64(lo) / n, Highlights: float64(hi) / n}
}

// Mean returns the average value per channel.
func (h Histogram) Mean() (r, g, b float64) {
	if h.Total == 0 {
		return 0, 0, 0
	}
	mean := func(c *[256]int) float64 {
		sum := 0
		for v, n := range c {
			sum += v * n
		}
		return float64(sum) / float64(h.Total)
	}
	return mean(&h.R), mean(&h.G), mean(&h.B)
}

func (c Clipping) String() string {
	return fmt.Sprintf("shadows %.2f%%, highlights %.2f%%", c.Shadows*100, c.Highlights*100)
}
