package stdimg

import (
	"image"
)

// AutoOrient applies an EXIF orientation (1..8) and returns the upright image.
// Orientation 1 or an unknown value returns img as-is; otherwise the result
// is a new *image.NRGBA anchored at the origin.
func AutoOrient(img image.Image, orientation int) image.Image {
	if img == nil {
		return nil
	}
	if orientation <= 1 || orientation > 8 {
		return img
	}
	src := ToNRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	ow, oh := w, h
	if orientation >= 5 {
		// 5..8 swap the axes
		ow, oh = h, w
	}
	// at maps an output coordinate to the source coordinate it copies from
	var at func(x, y int) (int, int)
	switch orientation {
	case 2: // mirror horizontal
		at = func(x, y int) (int, int) { return w - 1 - x, y }
	case 3: // rotate 180
		at = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case 4: // mirror vertical
		at = func(x, y int) (int, int) { return x, h - 1 - y }
	case 5: // transpose
		at = func(x, y int) (int, int) { return y, x }
	case 6: // rotate 90 CW
		at = func(x, y int) (int, int) { return y, h - 1 - x }
	case 7: // transverse
		at = func(x, y int) (int, int) { return w - 1 - y, h - 1 - x }
	case 8: // rotate 90 CCW
		at = func(x, y int) (int, int) { return w - 1 - y, x }
	}
	out := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	for y := 0; y < oh; y++ {
		for x := 0; x < ow; x++ {
			sx, sy := at(x, y)
			si := src.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}
