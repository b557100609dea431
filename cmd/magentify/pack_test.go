package main

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/magenta"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var spriteColor = color.NRGBA{R: 200, G: 30, B: 30, A: 255}

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// sourceImage holds three sprites on a transparent background: 6x4 at
// (2,2), 4x8 at (12,3) and 5x5 at (25,10).
func sourceImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	fill(img, image.Rect(2, 2, 8, 6), spriteColor)
	fill(img, image.Rect(12, 3, 16, 11), spriteColor)
	fill(img, image.Rect(25, 10, 30, 15), spriteColor)
	return img
}

func defaultOptions() Options {
	return Options{Pad: 1, PadBlob: 2, Anchor: magenta.AnchorTopLeft, Upscale: 1, Meta: true}
}

func segment(t *testing.T, img *image.NRGBA) magenta.Segmentation {
	t.Helper()
	return magenta.Segment(magenta.GridFromImage(img))
}

func assertFrames(t *testing.T, got, want []magenta.Blob) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindSprites_ColumnOrder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	fill(img, image.Rect(10, 1, 12, 3), spriteColor)
	fill(img, image.Rect(1, 10, 3, 12), spriteColor)
	fill(img, image.Rect(1, 1, 3, 3), spriteColor)
	got := FindSprites(img)
	want := []magenta.Blob{
		{XMin: 1, YMin: 1, XMax: 2, YMax: 2},
		{XMin: 1, YMin: 10, XMax: 2, YMax: 11},
		{XMin: 10, YMin: 1, XMax: 11, YMax: 2},
	}
	assertFrames(t, got, want)
}

func TestPack_RoundTripsThroughSegment(t *testing.T) {
	sheet, err := Pack(sourceImage(), defaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := sheet.Bounds().Size(); got != image.Pt(21, 30) {
		t.Errorf("sheet size = %v, want 21x30", got)
	}

	s := segment(t, sheet)
	if !s.HasMeta || s.Padding != 2 {
		t.Errorf("HasMeta = %v, Padding = %d; want true, 2", s.HasMeta, s.Padding)
	}
	assertFrames(t, s.Frames, []magenta.Blob{
		{XMin: 1, YMin: 1, XMax: 10, YMax: 8},
		{XMin: 12, YMin: 1, XMax: 19, YMax: 12},
		{XMin: 1, YMin: 14, XMax: 9, YMax: 22},
	})
	if want := (magenta.Blob{XMin: 1, YMin: 24, XMax: 8, YMax: 28}); s.MetaRegion != want {
		t.Errorf("MetaRegion = %v, want %v", s.MetaRegion, want)
	}

	// The trimmed source rectangle is exactly the source sprite.
	r := magenta.SourceRect(s.Frames[0], s.Padding)
	if r.Width != 6 || r.Height != 4 {
		t.Errorf("trimmed size = %vx%v, want 6x4", r.Width, r.Height)
	}
	if got := sheet.NRGBAAt(int(r.X), int(r.Y)); got != spriteColor {
		t.Errorf("trimmed corner = %v, want sprite color", got)
	}
}

func TestPack_WithoutMetaInfersPadding(t *testing.T) {
	opts := defaultOptions()
	opts.Meta = false
	sheet, err := Pack(sourceImage(), opts)
	if err != nil {
		t.Fatal(err)
	}
	s := segment(t, sheet)
	if s.HasMeta || s.Padding != 2 || len(s.Frames) != 3 {
		t.Errorf("HasMeta = %v, Padding = %d, frames = %d; want false, 2, 3", s.HasMeta, s.Padding, len(s.Frames))
	}
}

func TestPack_BottomAnchor(t *testing.T) {
	opts := defaultOptions()
	opts.Anchor = magenta.AnchorBottomLeft
	sheet, err := Pack(sourceImage(), opts)
	if err != nil {
		t.Fatal(err)
	}
	s := segment(t, sheet)
	if len(s.Frames) != 3 {
		t.Fatalf("frames = %v", s.Frames)
	}
	// Frames in the first row share a bottom edge.
	if s.Frames[0].YMax != 12 || s.Frames[1].YMax != 12 {
		t.Errorf("bottoms = %d, %d; want 12, 12", s.Frames[0].YMax, s.Frames[1].YMax)
	}
}

func TestPack_PadHeightRow(t *testing.T) {
	opts := defaultOptions()
	opts.PadHeight = PadHeightRow
	sheet, err := Pack(sourceImage(), opts)
	if err != nil {
		t.Fatal(err)
	}
	s := segment(t, sheet)
	if len(s.Frames) != 3 {
		t.Fatalf("frames = %v", s.Frames)
	}
	if s.Frames[0].Height() != 12 || s.Frames[1].Height() != 12 {
		t.Errorf("row heights = %d, %d; want 12, 12", s.Frames[0].Height(), s.Frames[1].Height())
	}
	if s.Frames[0].YMin != 1 {
		t.Errorf("top-anchored frame starts at %d, want 1", s.Frames[0].YMin)
	}
}

func TestPack_Upscale(t *testing.T) {
	opts := defaultOptions()
	opts.Upscale = 2
	sheet, err := Pack(sourceImage(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := sheet.Bounds().Size(); got != image.Pt(42, 55) {
		t.Errorf("sheet size = %v, want 42x55", got)
	}
	s := segment(t, sheet)
	if !s.HasMeta || s.Padding != 4 {
		t.Errorf("HasMeta = %v, Padding = %d; want true, 4", s.HasMeta, s.Padding)
	}
	if len(s.Frames) != 3 || s.Frames[0] != (magenta.Blob{XMin: 2, YMin: 2, XMax: 21, YMax: 17}) {
		t.Errorf("frames = %v", s.Frames)
	}
}

func TestPack_Errors(t *testing.T) {
	if _, err := Pack(image.NewNRGBA(image.Rect(0, 0, 8, 8)), defaultOptions()); !errors.Is(err, errNoSprites) {
		t.Errorf("empty image: err = %v, want errNoSprites", err)
	}

	opts := defaultOptions()
	opts.Pad = 0
	if _, err := Pack(sourceImage(), opts); err == nil {
		t.Error("accepted pad 0")
	}

	opts = defaultOptions()
	opts.PadBlob = 200
	opts.Upscale = 2
	if _, err := Pack(sourceImage(), opts); err == nil {
		t.Error("accepted a border too wide for the metadata strip")
	}
}

func TestPack_OverlappingSprites(t *testing.T) {
	// A hollow square with a dot inside: two sprites whose boxes overlap.
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	fill(img, image.Rect(0, 0, 10, 1), spriteColor)
	fill(img, image.Rect(0, 9, 10, 10), spriteColor)
	fill(img, image.Rect(0, 0, 1, 10), spriteColor)
	fill(img, image.Rect(9, 0, 10, 10), spriteColor)
	img.SetNRGBA(5, 5, spriteColor)

	_, err := Pack(img, defaultOptions())
	var be *BlobError
	if !errors.As(err, &be) {
		t.Fatalf("err = %v, want *BlobError", err)
	}
}

func TestPack_WarnsOnMagentaPixels(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	defer undo()

	img := sourceImage()
	img.SetNRGBA(3, 3, color.NRGBA{R: 255, B: 255, A: 255})
	if _, err := Pack(img, defaultOptions()); err != nil {
		t.Fatal(err)
	}
	if logs.FilterMessage("sprite contains the magenta background color").Len() != 1 {
		t.Errorf("warnings = %v", logs.All())
	}
}

func TestParsePadHeight(t *testing.T) {
	if ph, err := parsePadHeight("ROW"); err != nil || ph != PadHeightRow {
		t.Errorf("parsePadHeight(ROW) = %v, %v", ph, err)
	}
	if _, err := parsePadHeight("all"); err == nil {
		t.Error("accepted pad-height all")
	}
}

func TestRun_WritesSheetAndOverlay(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	if err := magenta.WritePNG(in, sourceImage()); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	overlay := filepath.Join(dir, "overlay.png")

	if err := run(in, out, overlay, defaultOptions()); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{out, overlay} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not written: %v", filepath.Base(p), err)
		}
	}
	if err := run(filepath.Join(dir, "missing.png"), out, "", defaultOptions()); err == nil {
		t.Error("expected error for a missing input")
	}
}
