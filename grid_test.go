package magenta

import (
	"image"
	"image/color"
	"testing"
)

func TestNewPixelGrid(t *testing.T) {
	pix := []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}
	g := NewPixelGrid(pix, 2, 2)
	if g.Width() != 2 || g.Height() != 2 || g.Len() != 4 {
		t.Fatalf("size = %dx%d (%d)", g.Width(), g.Height(), g.Len())
	}
	if got := g.At(1, 1); got != (Color{13, 14, 15, 16}) {
		t.Errorf("At(1,1) = %+v", got)
	}
	if got := g.AtIndex(g.Index(0, 1)); got != (Color{9, 10, 11, 12}) {
		t.Errorf("At(0,1) = %+v", got)
	}
}

func TestNewPixelGrid_ShortBufferPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a short buffer")
		}
	}()
	NewPixelGrid(make([]byte, 15), 2, 2)
}

func TestPixelGrid_AtOutOfRangePanics(t *testing.T) {
	g := NewPixelGrid(make([]byte, 16), 2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%d,%d) did not panic", p[0], p[1])
				}
			}()
			g.At(p[0], p[1])
		}()
	}
}

func TestGridFromImage_WrapsNRGBA(t *testing.T) {
	img := newAtlas(4, 3)
	g := GridFromImage(img)
	img.SetNRGBA(2, 1, testOpaque)
	if got := g.At(2, 1); got.RGBA() != testOpaque {
		t.Errorf("At(2,1) = %+v; grid should share the image buffer", got)
	}
}

func TestGridFromImage_ConvertsOtherFormats(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 13))
	for y := 10; y < 13; y++ {
		for x := 10; x < 14; x++ {
			src.Set(x, y, color.RGBA{R: 255, B: 255, A: 255})
		}
	}
	src.Set(11, 11, color.RGBA{})
	src.Set(12, 11, color.RGBA{A: 255})

	g := GridFromImage(src)
	if g.Width() != 4 || g.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", g.Width(), g.Height())
	}
	if !g.At(0, 0).IsBackground() {
		t.Errorf("At(0,0) = %+v, want magenta", g.At(0, 0))
	}
	if !g.At(1, 1).IsTransparent() {
		t.Errorf("At(1,1) = %+v, want transparent", g.At(1, 1))
	}
	if got := g.At(2, 1); got != (Color{A: 255}) {
		t.Errorf("At(2,1) = %+v, want opaque black", got)
	}
}

func TestGridFromImage_SubImage(t *testing.T) {
	img := newAtlas(8, 8)
	img.SetNRGBA(5, 5, testOpaque)
	sub := img.SubImage(image.Rect(4, 4, 8, 8))
	g := GridFromImage(sub)
	if g.Width() != 4 || g.Height() != 4 {
		t.Fatalf("size = %dx%d, want 4x4", g.Width(), g.Height())
	}
	if got := g.At(1, 1); got.RGBA() != testOpaque {
		t.Errorf("At(1,1) = %+v, want the sub-image origin shifted", got)
	}
}
