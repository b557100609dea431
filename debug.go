package magenta

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// logger receives all library logging. It discards everything until the host
// installs its own with SetLogger.
var logger = zap.NewNop()

// SetLogger routes library logging to l. A nil l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Named("magenta")
}

// globalDebug enables segmentation timing logs and placeholder warnings.
// magenta is single-threaded, like the game loop that drives it.
var globalDebug bool

// SetDebugMode toggles debug logging of segmentation stats and missing
// animations.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugStats holds per-atlas segmentation timings and results.
// Only logged when debug mode is on.
type debugStats struct {
	width, height int
	blobCount     int
	hasMeta       bool
	padding       int
	scanTime      time.Duration
	decodeTime    time.Duration
	inferTime     time.Duration
}

var (
	overlayFrame  = color.NRGBA{G: 255, A: 255}
	overlaySource = color.NRGBA{G: 255, B: 255, A: 255}
	overlayMeta   = color.NRGBA{R: 255, G: 255, A: 255}
)

// DebugOverlay returns a copy of src with the segmentation drawn over it:
// frame bounds in green, trimmed source rectangles in cyan and the metadata
// blob in yellow.
func DebugOverlay(src image.Image, s Segmentation) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(out, image.Point{}, src, b, draw.Src, nil)

	for _, f := range s.Frames {
		strokeRect(out, f.Bounds(), overlayFrame)
		r := SourceRect(f, s.Padding)
		if !r.Empty() {
			strokeRect(out, image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height)), overlaySource)
		}
	}
	if s.HasMeta {
		strokeRect(out, s.MetaRegion.Bounds(), overlayMeta)
	}
	return out
}

// strokeRect outlines the half-open rectangle r, clipped to img.
func strokeRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, c)
		img.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, c)
		img.SetNRGBA(r.Max.X-1, y, c)
	}
}

// WritePNG encodes img to a PNG file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("magenta: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("magenta: encode %s: %w", path, err)
	}
	return f.Close()
}
