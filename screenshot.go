package magenta

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Screenshots queues labeled captures of the rendered frame. Queue them from
// Update or Draw with Capture and call Flush at the end of Draw; each label
// becomes a timestamped PNG in Dir.
type Screenshots struct {
	Dir   string
	queue []string
}

// NewScreenshots returns a queue writing into dir.
func NewScreenshots(dir string) *Screenshots {
	return &Screenshots{Dir: dir}
}

// Capture queues a screenshot for the current frame.
func (s *Screenshots) Capture(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued screenshots.
func (s *Screenshots) Pending() int { return len(s.queue) }

// Flush captures screen once and writes it for every queued label. It
// returns the written paths.
func (s *Screenshots) Flush(screen *ebiten.Image) ([]string, error) {
	if len(s.queue) == 0 {
		return nil, nil
	}
	defer func() { s.queue = s.queue[:0] }()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("magenta: screenshot: %w", err)
	}
	img := CaptureImage(screen)
	stamp := time.Now().Format("20060102_150405")

	var paths []string
	var errs error
	for _, label := range s.queue {
		p := screenshotPath(s.Dir, stamp, label)
		if err := WritePNG(p, img); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		logger.Info("saved screenshot", zap.String("path", p))
		paths = append(paths, p)
	}
	return paths, errs
}

func screenshotPath(dir, stamp, label string) string {
	return filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
}

// CaptureImage reads img back as a straight-alpha NRGBA image. Ebiten only
// allows this once the game loop is running.
func CaptureImage(img *ebiten.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	img.ReadPixels(out.Pix)
	unpremultiply(out.Pix)
	return out
}

// unpremultiply converts premultiplied RGBA8 pixels to straight alpha in
// place. Opaque and fully transparent pixels are unchanged.
func unpremultiply(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := int(pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		pix[i] = uint8(min(int(pix[i])*255/a, 255))
		pix[i+1] = uint8(min(int(pix[i+1])*255/a, 255))
		pix[i+2] = uint8(min(int(pix[i+2])*255/a, 255))
	}
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
