package main

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/phanxgames/magenta"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// PadHeight selects how frames in a packed row are padded vertically.
type PadHeight int

const (
	// PadHeightNone leaves every frame at its own height.
	PadHeightNone PadHeight = iota
	// PadHeightRow pads every frame to the tallest frame in its row, keeping
	// it held at the anchor edge.
	PadHeightRow
)

func parsePadHeight(s string) (PadHeight, error) {
	switch strings.ToLower(s) {
	case "none":
		return PadHeightNone, nil
	case "row":
		return PadHeightRow, nil
	}
	return 0, fmt.Errorf("invalid pad-height %q (want none or row)", s)
}

// metaStripWidth is the width of the embedded metadata strip in pixels.
const metaStripWidth = 8

var (
	debugFill   = color.NRGBA{B: 255, A: 100}
	debugAnchor = color.NRGBA{B: 255, A: 255}
	debugShift  = color.NRGBA{G: 128, B: 128, A: 255}
)

// Options controls packing.
type Options struct {
	// Pad is the magenta gap between frames and around the sheet. At least 1.
	Pad int
	// PadBlob is the transparent border added inside every frame.
	PadBlob   int
	Anchor    magenta.Anchor
	PadHeight PadHeight
	// Upscale multiplies the sheet size with nearest-neighbour sampling.
	Upscale int
	// Meta embeds a metadata strip recording the frame border below the
	// frames.
	Meta bool
	// Debug tints frame borders and marks anchor points.
	Debug bool
}

// BlobError reports sprites that cannot be packed.
type BlobError struct {
	Msg string
}

func (e *BlobError) Error() string { return e.Msg }

var errNoSprites = errors.New("no sprites found on a transparent background")

// frame is one sprite being packed: its source box and the padding on each
// side of it in the sheet.
type frame struct {
	blob       magenta.Blob
	l, r, t, b int
}

func (f *frame) paddedWidth() int  { return f.blob.Width() + f.l + f.r }
func (f *frame) paddedHeight() int { return f.blob.Height() + f.t + f.b }

// FindSprites returns the boxes of the sprites on src's transparent
// background, ordered left to right then top to bottom.
func FindSprites(src image.Image) []magenta.Blob {
	blobs := magenta.ScanFunc(magenta.GridFromImage(src), magenta.Color.IsTransparent)
	slices.SortStableFunc(blobs, func(a, b magenta.Blob) int {
		if c := cmp.Compare(a.XMin, b.XMin); c != 0 {
			return c
		}
		return cmp.Compare(a.YMin, b.YMin)
	})
	return blobs
}

func checkSprites(blobs []magenta.Blob, bounds image.Rectangle) error {
	for i, b := range blobs {
		if b.XMin < 0 || b.YMin < 0 || b.XMax >= bounds.Dx() || b.YMax >= bounds.Dy() {
			return &BlobError{Msg: fmt.Sprintf("%v (%d) is outside the image (%dx%d)", b, i, bounds.Dx(), bounds.Dy())}
		}
	}
	for i, b1 := range blobs {
		for j := i + 1; j < len(blobs); j++ {
			if b2 := blobs[j]; b1.Overlaps(b2) {
				return &BlobError{Msg: fmt.Sprintf("%v (%d) and %v (%d) overlap", b1, i, b2, j)}
			}
		}
	}
	return nil
}

// Pack moves every sprite of src into a grid of boxes on a magenta sheet.
// The grid has ceil(sqrt(n)) columns.
func Pack(src image.Image, opts Options) (*image.NRGBA, error) {
	if opts.Pad < 1 {
		return nil, fmt.Errorf("pad must be at least 1, got %d", opts.Pad)
	}
	if opts.PadBlob < 0 {
		return nil, fmt.Errorf("pad-blob must not be negative, got %d", opts.PadBlob)
	}
	upscale := max(opts.Upscale, 1)
	if opts.Meta && opts.PadBlob*upscale > math.MaxUint8 {
		return nil, fmt.Errorf("frame border of %d pixels does not fit the metadata strip", opts.PadBlob*upscale)
	}

	// Work in a zero-origin copy so blob coordinates index it directly.
	sb := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	draw.Copy(img, image.Point{}, src, sb, draw.Src, nil)

	blobs := FindSprites(img)
	if len(blobs) == 0 {
		return nil, errNoSprites
	}
	if err := checkSprites(blobs, img.Bounds()); err != nil {
		return nil, err
	}
	zap.L().Debug("found sprites", zap.Int("count", len(blobs)))
	for i, b := range blobs {
		zap.L().Debug("sprite", zap.Int("index", i), zap.Stringer("blob", b))
		warnSentinel(img, b, i)
	}

	frames := make([]frame, len(blobs))
	for i, b := range blobs {
		p := opts.PadBlob
		frames[i] = frame{blob: b, l: p, r: p, t: p, b: p}
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(frames)))))
	rows := (len(frames) + cols - 1) / cols
	zap.L().Debug("packing", zap.Int("cols", cols), zap.Int("rows", rows))

	rowHeights := make([]int, rows)
	rowWidths := make([]int, rows)
	for i := range frames {
		m := i / cols
		rowHeights[m] = max(rowHeights[m], frames[i].paddedHeight())
		rowWidths[m] += frames[i].paddedWidth()
	}
	if opts.PadHeight == PadHeightRow {
		for i := range frames {
			f := &frames[i]
			extra := rowHeights[i/cols] - f.paddedHeight()
			switch {
			case opts.Anchor.IsBottom():
				f.t += extra
			case opts.Anchor.IsTop():
				f.b += extra
			}
		}
	}

	w := slices.Max(rowWidths) + (cols+1)*opts.Pad
	h := (rows + 1) * opts.Pad
	for _, rh := range rowHeights {
		h += rh
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(magenta.Background.RGBA()), image.Point{}, draw.Src)

	y, x := opts.Pad, opts.Pad
	for i := range frames {
		f := &frames[i]
		m := i / cols
		fy := y
		if opts.Anchor.IsBottom() {
			fy += rowHeights[m] - f.paddedHeight()
		}

		fill := image.Image(image.Transparent)
		if opts.Debug {
			fill = image.NewUniform(debugFill)
		}
		padded := image.Rect(x, fy, x+f.paddedWidth(), fy+f.paddedHeight())
		draw.Draw(out, padded, fill, image.Point{}, draw.Src)
		draw.Copy(out, image.Pt(x+f.l, fy+f.t), img, f.blob.Bounds(), draw.Src, nil)

		if opts.Debug {
			out.SetNRGBA(x, y, debugAnchor)
			if opts.Anchor.IsBottom() {
				out.SetNRGBA(x, fy, debugShift)
			}
		}

		x += f.paddedWidth() + opts.Pad
		if (i+1)%cols == 0 {
			x = opts.Pad
			y += rowHeights[m] + opts.Pad
		}
	}
	zap.L().Debug("packed sheet", zap.Int("width", w), zap.Int("height", h))

	if upscale > 1 {
		out = Upscale(out, upscale)
	}
	if opts.Meta {
		out = appendMetaStrip(out, magenta.MetaBlob{Pad: uint8(opts.PadBlob * upscale)}, opts.Pad*upscale)
	}
	return out, nil
}

// warnSentinel logs sprites that contain the magenta background color, which
// would split them into several frames once packed.
func warnSentinel(img *image.NRGBA, b magenta.Blob, index int) {
	n := 0
	for y := b.YMin; y <= b.YMax; y++ {
		for x := b.XMin; x <= b.XMax; x++ {
			c := img.NRGBAAt(x, y)
			if (magenta.Color{R: c.R, G: c.G, B: c.B, A: c.A}).IsBackground() {
				n++
			}
		}
	}
	if n > 0 {
		zap.L().Warn("sprite contains the magenta background color",
			zap.Int("index", index), zap.Stringer("blob", b), zap.Int("pixels", n))
	}
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling.
func Upscale(img *image.NRGBA, factor int) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// appendMetaStrip returns sheet extended downward with a metadata strip for
// m, separated from the frames and the sheet edges by margin magenta pixels.
func appendMetaStrip(sheet *image.NRGBA, m magenta.MetaBlob, margin int) *image.NRGBA {
	margin = max(margin, 1)
	strip := magenta.MetaImage(m.Bytes(), metaStripWidth)
	sb, mb := sheet.Bounds(), strip.Bounds()

	// The sheet already ends in a magenta margin, so the strip starts right
	// below it.
	w := max(sb.Dx(), mb.Dx()+2*margin)
	h := sb.Dy() + mb.Dy() + margin
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(magenta.Background.RGBA()), image.Point{}, draw.Src)
	draw.Copy(out, image.Point{}, sheet, sb, draw.Src, nil)
	draw.Copy(out, image.Pt(margin, sb.Dy()), strip, mb, draw.Src, nil)
	return out
}
