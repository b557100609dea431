package magenta

import (
	"cmp"
	"fmt"
	"image"
	"slices"
)

// Blob is the inclusive bounding box of one 4-connected non-background region
// of an atlas. Blobs are created by a scan and never modified afterwards.
type Blob struct {
	XMin, YMin, XMax, YMax int
}

// Width returns XMax-XMin+1.
func (b Blob) Width() int { return b.XMax - b.XMin + 1 }

// Height returns YMax-YMin+1.
func (b Blob) Height() int { return b.YMax - b.YMin + 1 }

// Rect returns the blob as a float rectangle in atlas pixel space.
func (b Blob) Rect() Rect {
	return Rect{X: float64(b.XMin), Y: float64(b.YMin), Width: float64(b.Width()), Height: float64(b.Height())}
}

// Bounds returns the blob as a half-open image.Rectangle.
func (b Blob) Bounds() image.Rectangle {
	return image.Rect(b.XMin, b.YMin, b.XMax+1, b.YMax+1)
}

// Overlaps reports whether the two bounding boxes share at least one pixel.
func (b Blob) Overlaps(o Blob) bool {
	return b.XMin <= o.XMax && b.XMax >= o.XMin &&
		b.YMin <= o.YMax && b.YMax >= o.YMin
}

// String returns e.g. "Blob(4x4 @ 2,2)".
func (b Blob) String() string {
	return fmt.Sprintf("Blob(%dx%d @ %d,%d)", b.Width(), b.Height(), b.XMin, b.YMin)
}

// minScanSize is the smallest atlas dimension that can hold a sprite frame
// surrounded by background.
const minScanSize = 3

// Scan finds every 4-connected region of non-magenta pixels and returns their
// bounding boxes sorted by (YMin, XMin). Atlases two pixels or less in either
// dimension hold no frames and yield nil.
func Scan(g *PixelGrid) []Blob {
	blobs := ScanFunc(g, Color.IsBackground)
	SortBlobs(blobs)
	return blobs
}

// ScanFunc flood-fills g treating pixels for which isBackground returns true
// as separators, and returns the blobs in discovery order. Cells are visited
// column by column (outer loop over x, inner loop over y), so discovery order
// is deterministic for a given grid.
func ScanFunc(g *PixelGrid, isBackground func(Color) bool) []Blob {
	if g.Width() < minScanSize || g.Height() < minScanSize {
		return nil
	}
	s := scanner{
		grid:    g,
		isBg:    isBackground,
		visited: newBitmap(g.Len()),
	}
	var blobs []Blob
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			if !s.visit(x, y) {
				continue
			}
			blobs = append(blobs, s.fill(x, y))
		}
	}
	return blobs
}

// SortBlobs orders blobs top-to-bottom then left-to-right by their minimum
// corner. This order assigns animation frame indices.
func SortBlobs(blobs []Blob) {
	slices.SortStableFunc(blobs, func(a, b Blob) int {
		if c := cmp.Compare(a.YMin, b.YMin); c != 0 {
			return c
		}
		return cmp.Compare(a.XMin, b.XMin)
	})
}

type point struct{ x, y int }

type scanner struct {
	grid    *PixelGrid
	isBg    func(Color) bool
	visited bitmap
	stack   []point
}

// visit marks (x, y) visited and reports whether it starts or extends a
// blob: false for already-visited and background cells.
func (s *scanner) visit(x, y int) bool {
	i := s.grid.Index(x, y)
	if s.visited.get(i) {
		return false
	}
	s.visited.set(i)
	return !s.isBg(s.grid.AtIndex(i))
}

// fill grows the blob seeded at (x, y) with an explicit stack so large
// regions never deepen the goroutine stack.
func (s *scanner) fill(x, y int) Blob {
	b := Blob{XMin: x, YMin: y, XMax: x, YMax: y}
	s.stack = s.stack[:0]
	s.pushNeighbours(x, y)
	for len(s.stack) > 0 {
		p := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if !s.visit(p.x, p.y) {
			continue
		}
		b.XMin = min(b.XMin, p.x)
		b.YMin = min(b.YMin, p.y)
		b.XMax = max(b.XMax, p.x)
		b.YMax = max(b.YMax, p.y)
		s.pushNeighbours(p.x, p.y)
	}
	return b
}

func (s *scanner) pushNeighbours(x, y int) {
	if x > 0 {
		s.stack = append(s.stack, point{x - 1, y})
	}
	if x < s.grid.Width()-1 {
		s.stack = append(s.stack, point{x + 1, y})
	}
	if y > 0 {
		s.stack = append(s.stack, point{x, y - 1})
	}
	if y < s.grid.Height()-1 {
		s.stack = append(s.stack, point{x, y + 1})
	}
}

// bitmap is a fixed-size set of linear pixel indices.
type bitmap []uint64

func newBitmap(n int) bitmap { return make(bitmap, (n+63)/64) }

func (m bitmap) get(i int) bool { return m[i>>6]&(1<<(uint(i)&63)) != 0 }

func (m bitmap) set(i int) { m[i>>6] |= 1 << (uint(i) & 63) }
