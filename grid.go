package magenta

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// PixelGrid is a read-only view over a decoded, row-major, straight-alpha
// RGBA8 buffer. It is only needed for the duration of a segmentation pass.
type PixelGrid struct {
	pix    []byte
	width  int
	height int
}

// NewPixelGrid wraps pix as a width×height grid. pix holds 4 bytes per pixel
// in R, G, B, A order. The buffer is not copied.
//
// A buffer shorter than width*height pixels is a caller bug and panics.
func NewPixelGrid(pix []byte, width, height int) *PixelGrid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("magenta: negative grid size %dx%d", width, height))
	}
	if need := 4 * width * height; len(pix) < need {
		panic(fmt.Sprintf("magenta: pixel buffer has %d bytes, %dx%d grid needs %d", len(pix), width, height, need))
	}
	return &PixelGrid{pix: pix, width: width, height: height}
}

// GridFromImage converts any decoded image into a PixelGrid. *image.NRGBA
// sources with a zero origin and tight stride are wrapped without copying.
func GridFromImage(src image.Image) *PixelGrid {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return NewPixelGrid(n.Pix, b.Dx(), b.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return NewPixelGrid(dst.Pix, b.Dx(), b.Dy())
}

// GridFromEbiten reads back the pixels of an ebiten image and converts them
// to straight alpha. Ebiten only allows this once the game loop is running.
func GridFromEbiten(img *ebiten.Image) *PixelGrid {
	c := CaptureImage(img)
	return NewPixelGrid(c.Pix, c.Bounds().Dx(), c.Bounds().Dy())
}

// Width returns the grid width in pixels.
func (g *PixelGrid) Width() int { return g.width }

// Height returns the grid height in pixels.
func (g *PixelGrid) Height() int { return g.height }

// Len returns the number of pixels.
func (g *PixelGrid) Len() int { return g.width * g.height }

// Index returns the linear index of (x, y).
func (g *PixelGrid) Index(x, y int) int { return x + y*g.width }

// At returns the color at (x, y). Out-of-range coordinates panic.
func (g *PixelGrid) At(x, y int) Color {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		panic(fmt.Sprintf("magenta: pixel (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return g.AtIndex(g.Index(x, y))
}

// AtIndex returns the color at linear index i.
func (g *PixelGrid) AtIndex(i int) Color {
	p := g.pix[4*i : 4*i+4 : 4*i+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}
