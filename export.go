package fractalview

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

// FrameImage converts a frame's packed RGB bytes to an opaque NRGBA image.
func FrameImage(frame *FrameEvent) (*image.NRGBA, error) {
	if want := frame.Rect.BufferLen(); len(frame.Pixels) != want {
		return nil, &SizeError{Expected: want, Actual: len(frame.Pixels)}
	}
	w, h := frame.Rect.Width, frame.Rect.Height
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i < len(frame.Pixels); i, j = i+3, j+4 {
		img.Pix[j] = frame.Pixels[i]
		img.Pix[j+1] = frame.Pixels[i+1]
		img.Pix[j+2] = frame.Pixels[i+2]
		img.Pix[j+3] = 0xff
	}
	return img, nil
}

// WritePNG encodes frame as a PNG.
func WritePNG(w io.Writer, frame *FrameEvent) error {
	img, err := FrameImage(frame)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePPM writes frame as a binary (P6) PPM. The pixel bytes are already in
// PPM order so they are copied through unchanged.
func WritePPM(w io.Writer, frame *FrameEvent) error {
	if want := frame.Rect.BufferLen(); len(frame.Pixels) != want {
		return &SizeError{Expected: want, Actual: len(frame.Pixels)}
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", frame.Rect.Width, frame.Rect.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	if _, err := bw.Write(frame.Pixels); err != nil {
		return fmt.Errorf("write ppm pixels: %w", err)
	}
	return bw.Flush()
}

// SaveFrame writes frame to dir as <timestamp>_<label>.png, creating dir if
// needed, and returns the path written.
func SaveFrame(dir, label string, frame *FrameEvent) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	return path, writeFile(path, func(w io.Writer) error { return WritePNG(w, frame) })
}

// Thumbnail scales frame to fit within maxW x maxH, keeping its aspect ratio.
func Thumbnail(frame *FrameEvent, maxW, maxH int) (*image.NRGBA, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, fmt.Errorf("thumbnail size %dx%d must be positive", maxW, maxH)
	}
	src, err := FrameImage(frame)
	if err != nil {
		return nil, err
	}
	w, h := frame.Rect.Width, frame.Rect.Height
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	tw := max(1, int(float64(w)*scale))
	th := max(1, int(float64(h)*scale))

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel makes a screenshot label safe to embed in a file name. Runs
// of anything outside [A-Za-z0-9._-] collapse to one underscore and leading
// dots are dropped so the result is never hidden or relative.
func sanitizeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	gap := false
	for _, r := range strings.TrimSpace(label) {
		ok := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' || r == '-' || r == '.' || r == '_'
		if !ok {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('_')
		}
		gap = false
		b.WriteRune(r)
	}
	if s := strings.TrimLeft(b.String(), "."); s != "" {
		return s
	}
	return "frame"
}
