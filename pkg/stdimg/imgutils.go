// Package stdimg holds the small set of pixel helpers the grader needs
// around the engine: format normalization, EXIF orientation and channel
// statistics. Everything operates on *image.NRGBA.
package stdimg

import (
	"image"
	"image/color"
)

// ToNRGBA converts any image.Image to *image.NRGBA (non-premultiplied RGBA),
// keeping its bounds. An *image.NRGBA input is copied, never aliased.
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	if n, ok := src.(*image.NRGBA); ok {
		return CloneNRGBA(n)
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := out.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			// go through the color model so translucent pixels are un-premultiplied
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
			i += 4
		}
	}
	return out
}

// CloneNRGBA returns a copy of src with the same bounds and a tightly packed stride.
func CloneNRGBA(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	n := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := src.PixOffset(b.Min.X, y)
		j := out.PixOffset(b.Min.X, y)
		copy(out.Pix[j:j+n], src.Pix[i:i+n])
	}
	return out
}
