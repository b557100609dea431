package magenta

import (
	"image"
	"image/color"
)

var (
	testMagenta = color.NRGBA{R: 255, G: 0, B: 255, A: 255}
	testOpaque  = color.NRGBA{R: 200, G: 40, B: 40, A: 255}
	testClear   = color.NRGBA{}
)

// newAtlas returns a w×h image filled with the magenta background.
func newAtlas(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(img, 0, 0, w-1, h-1, testMagenta)
	return img
}

// fillRect paints the inclusive rectangle (x0,y0)-(x1,y1).
func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// paintFrame paints a w×h frame at (x, y) whose outer pad rings are
// transparent and whose core is opaque. It returns the frame's blob.
func paintFrame(img *image.NRGBA, x, y, w, h, pad int) Blob {
	fillRect(img, x, y, x+w-1, y+h-1, testClear)
	fillRect(img, x+pad, y+pad, x+w-1-pad, y+h-1-pad, testOpaque)
	return Blob{XMin: x, YMin: y, XMax: x + w - 1, YMax: y + h - 1}
}

// paintMeta draws the channel bytes for m at (x, y), width pixels wide, and
// returns its blob.
func paintMeta(img *image.NRGBA, x, y, width int, data []byte) Blob {
	strip := MetaImage(data, width)
	b := strip.Bounds()
	for sy := 0; sy < b.Dy(); sy++ {
		for sx := 0; sx < b.Dx(); sx++ {
			img.SetNRGBA(x+sx, y+sy, strip.NRGBAAt(sx, sy))
		}
	}
	return Blob{XMin: x, YMin: y, XMax: x + b.Dx() - 1, YMax: y + b.Dy() - 1}
}

// collectRing drains a traversal.
func collectRing(t *RingTraversal) []RingStep {
	var steps []RingStep
	for s := range t.All() {
		steps = append(steps, s)
	}
	return steps
}
