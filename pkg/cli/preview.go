package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/anthonynsimon/bild/transform"
)

// Terminal preview for the kitty graphics protocol, the iTerm2-style inline
// image protocol, and chafa as a character-cell fallback.
//
// The image is downscaled to the preview area before encoding so a large
// photo does not push megabytes of base64 through the terminal on every
// apply. PREVIEW_BACKEND (kitty, inline, chafa) forces a backend first.

var previewDebug bool

// previewOut is the terminal the escape sequences are written to.
var previewOut io.Writer = os.Stdout

func debugf(format string, args ...interface{}) {
	if previewDebug {
		fmt.Fprintf(os.Stderr, "grade-preview: "+format+"\n", args...)
	}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	// ghostty implements the kitty protocol
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	return os.Getenv("KONSOLE_VERSION") != ""
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		debugf("TERM_PROGRAM indicates inline-capable: %s", os.Getenv("TERM_PROGRAM"))
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "wezterm") || strings.Contains(term, "warp") || strings.Contains(term, "tabby") ||
		strings.Contains(term, "vscode") {
		debugf("TERM suggests inline-capable: %s", term)
		return true
	}
	return os.Getenv("ITERM_SESSION_ID") != ""
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether any preview backend looks usable.
func PreviewSupported() bool {
	supported := isKitty() || isInlineImageCapable() || hasChafa()
	debugf("PreviewSupported -> %v", supported)
	return supported
}

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int // Cols * cell width
	PixelHeight int // Rows * cell height
}

const (
	cellW   = 8
	cellH   = 16
	minCols = 6
	minRows = 3
	maxCols = 80
	maxRows = 40
)

// computePreviewSize fits w x h into at most maxCols x maxRows cells,
// preserving aspect ratio and never scaling up.
func computePreviewSize(w, h int) PreviewSize {
	scale := math.Min(1, math.Min(float64(maxCols*cellW)/float64(w), float64(maxRows*cellH)/float64(h)))
	cols := int(math.Round(float64(w) * scale / cellW))
	rows := int(math.Round(float64(h) * scale / cellH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)
	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * cellW, PixelHeight: rows * cellH}
}

// fitPreview downscales img so it fits the preview area. Images already
// small enough are returned as-is.
func fitPreview(img image.Image, size PreviewSize) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := math.Min(float64(size.PixelWidth)/float64(w), float64(size.PixelHeight)/float64(h))
	if scale >= 1 {
		return img
	}
	tw := max(1, int(math.Round(float64(w)*scale)))
	th := max(1, int(math.Round(float64(h)*scale)))
	debugf("downscaling preview %dx%d -> %dx%d", w, h, tw, th)
	return transform.Resize(img, tw, th, transform.Linear)
}

// PreviewImage downscales img, encodes it as PNG (or JPEG when format is
// "jpeg"/"jpg" and the backend is not kitty) and shows it in the terminal.
func PreviewImage(img image.Image, format string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("empty image")
	}
	size := computePreviewSize(b.Dx(), b.Dy())
	img = fitPreview(img, size)

	backend := strings.ToLower(os.Getenv("PREVIEW_BACKEND"))
	f := strings.ToLower(format)
	if backend == "kitty" || (backend == "" && isKitty()) {
		f = "png"
	}
	var buf bytes.Buffer
	if f == "jpeg" || f == "jpg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: DefaultJPEGQuality}); err != nil {
			return fmt.Errorf("jpeg encode failed: %w", err)
		}
		f = "jpeg"
	} else {
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode failed: %w", err)
		}
		f = "png"
	}
	return previewBytes(buf.Bytes(), f, size, backend)
}

func previewBytes(blob []byte, format string, size PreviewSize, backend string) error {
	senders := map[string]func([]byte, string, PreviewSize) error{
		"kitty":  sendKittyImage,
		"inline": sendInlineImage,
		"iterm":  sendInlineImage,
		"chafa":  sendChafaImage,
	}
	if backend != "" {
		if send, ok := senders[backend]; ok {
			err := send(blob, format, size)
			if err == nil {
				return nil
			}
			debugf("override %s failed: %v", backend, err)
		} else {
			debugf("unknown PREVIEW_BACKEND value: %s", backend)
		}
	}

	// inline first, many modern terminals implement it
	var errs []string
	if isInlineImageCapable() {
		if err := sendInlineImage(blob, format, size); err == nil {
			return nil
		} else {
			errs = append(errs, "inline: "+err.Error())
		}
	}
	if isKitty() {
		if err := sendKittyImage(blob, "png", size); err == nil {
			return nil
		} else {
			errs = append(errs, "kitty: "+err.Error())
		}
	}
	if hasChafa() {
		if err := sendChafaImage(blob, format, size); err == nil {
			return nil
		} else {
			errs = append(errs, "chafa: "+err.Error())
		}
	}
	if len(errs) == 0 {
		return fmt.Errorf("no preview protocol matched")
	}
	return fmt.Errorf("preview failed: %s", strings.Join(errs, "; "))
}

// postImageNewlines returns how many newlines to emit after an image so the
// prompt shows below it.
func postImageNewlines(rows int) int {
	switch {
	case rows <= 2:
		return 1
	case rows <= 6:
		return 2
	case rows <= 20:
		return 3
	}
	return 4
}

// sendKittyImage transmits data with the kitty graphics protocol in base64
// chunks of at most 4096 bytes. The first chunk carries the placement.
func sendKittyImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	debugf("sendKittyImage %d bytes (%s) cols=%d rows=%d", len(data), format, size.Cols, size.Rows)
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	var sb strings.Builder
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		m := "1"
		if end == len(enc) {
			m = "0"
		}
		if pos == 0 {
			// a=T transmit and display, f=100 PNG, q=2 no replies
			fmt.Fprintf(&sb, "\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, m, enc[pos:end])
		} else {
			fmt.Fprintf(&sb, "\x1b_Gm=%s;%s\x1b\\", m, enc[pos:end])
		}
	}
	sb.WriteString(strings.Repeat("\n", postImageNewlines(size.Rows)))
	_, err := io.WriteString(previewOut, sb.String())
	return err
}

// sendInlineImage emits the iTerm2-style OSC 1337 inline file sequence.
func sendInlineImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	name := "preview.png"
	if strings.HasPrefix(format, "j") {
		name = "preview.jpg"
	}
	meta := fmt.Sprintf("size=%d;width=%dpx;height=%dpx", len(data), size.PixelWidth, size.PixelHeight)
	seq := "\x1b]1337;File=name=" + name + ";inline=1;" + meta + ":" + base64.StdEncoding.EncodeToString(data) + "\a"
	n, err := io.WriteString(previewOut, seq+strings.Repeat("\n", postImageNewlines(0)))
	debugf("wrote %d bytes for inline image (err=%v)", n, err)
	return err
}

// sendChafaImage pipes data to chafa for a block-character rendering.
func sendChafaImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	if os.Getenv("NO_CHAFA") == "1" {
		return fmt.Errorf("chafa usage disabled via NO_CHAFA=1")
	}
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found in PATH: %w", err)
	}
	debugf("sendChafaImage %d bytes (format=%s)", len(data), format)
	fill, symbols := "block", "block"
	if v := os.Getenv("CHAFA_FILL"); v != "" {
		fill = v
	}
	if v := os.Getenv("CHAFA_SYMBOLS"); v != "" {
		symbols = v
	}
	cmd := exec.Command("chafa", "--fill="+fill, "--symbols="+symbols, "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = previewOut
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	_, err := io.WriteString(previewOut, strings.Repeat("\n", postImageNewlines(size.Rows)))
	return err
}
