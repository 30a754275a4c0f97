package cli

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/grade/pkg/stdimg"
)

var stdin = bufio.NewReader(os.Stdin)

// PromptLine displays a prompt and reads a full line of input from the user.
// The returned string is trimmed of surrounding whitespace (including the newline).
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	return readLine(stdin)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	// a last line without a newline still counts
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file. The format is
// detected from the content, not the extension. JPEG files carrying an
// EXIF orientation are returned upright.
func LoadImage(path string) (image.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	if format == "jpeg" {
		if o, err := extractJPEGOrientation(b); err == nil && o > 1 {
			img = stdimg.AutoOrient(img, o)
		}
	}
	return img, format, nil
}

// extractJPEGOrientation returns the EXIF orientation (1..8) from JPEG bytes.
func extractJPEGOrientation(data []byte) (int, error) {
	tiffStart, err := findEXIF(data)
	if err != nil {
		return 0, err
	}
	t := data[tiffStart:]
	if len(t) < 8 {
		return 0, fmt.Errorf("tiff header truncated")
	}
	var order binary.ByteOrder
	switch string(t[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return 0, fmt.Errorf("unknown tiff byte order")
	}
	if order.Uint16(t[2:4]) != 0x002A {
		return 0, fmt.Errorf("invalid tiff magic")
	}
	ifd := int(order.Uint32(t[4:8]))
	if ifd < 8 || ifd+2 > len(t) {
		return 0, fmt.Errorf("ifd0 out of range")
	}
	n := int(order.Uint16(t[ifd : ifd+2]))
	for e := 0; e < n; e++ {
		ent := ifd + 2 + e*12
		if ent+12 > len(t) {
			break
		}
		// orientation is a single SHORT stored inline
		if order.Uint16(t[ent:ent+2]) == 0x0112 && order.Uint16(t[ent+2:ent+4]) == 3 {
			o := int(order.Uint16(t[ent+8 : ent+10]))
			if o < 1 || o > 8 {
				return 0, fmt.Errorf("invalid orientation %d", o)
			}
			return o, nil
		}
	}
	return 0, fmt.Errorf("orientation tag not found")
}

// findEXIF scans JPEG segments for an APP1 Exif block and returns the
// offset of its TIFF header.
func findEXIF(data []byte) (int, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, fmt.Errorf("not a jpeg")
	}
	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA || marker == 0xD9 { // start of scan, end of image
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
			return i + 10, nil
		}
		if segLen < 2 {
			break
		}
		i += 2 + segLen
	}
	return 0, fmt.Errorf("no exif segment")
}

// SaveImage saves an image.Image to disk using format inferred from the filename extension.
// Supports .png, .jpg/.jpeg, .gif, .bmp and .tif/.tiff; anything else is written as PNG.
func SaveImage(path string, img image.Image, jpegQuality int) (err error) {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		if jpegQuality < 1 || jpegQuality > 100 {
			jpegQuality = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case ".gif":
		err = gif.Encode(w, img, nil)
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return w.Flush()
}

// GetImageInfoImage returns a short info string for an image.Image
func GetImageInfoImage(img image.Image, format string) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}
	b := img.Bounds()
	if format == "" {
		format = "unknown"
	}
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d", strings.ToUpper(format), b.Dx(), b.Dy()), nil
}
