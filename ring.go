package magenta

import "iter"

// RingStep is one pixel visited by a RingTraversal. Ring counts how many
// borders lie between the pixel and the outside of the box.
type RingStep struct {
	X, Y, Ring int
}

type ringState uint8

const (
	ringRight ringState = iota
	ringDown
	ringLeft
	ringUp
	ringContract
)

// RingTraversal walks every pixel of an inclusive box exactly once, starting
// at the top-left corner and spiralling clockwise inward one ring at a time.
// It is single-use: once exhausted it stays exhausted.
type RingTraversal struct {
	xMin, yMin, xMax, yMax int
	x, y, ring             int
	state                  ringState
	remaining              int
}

// NewRingTraversal returns a traversal over the inclusive box
// (xMin, yMin)-(xMax, yMax). Inverted boxes have no pixels and yield nothing.
func NewRingTraversal(xMin, yMin, xMax, yMax int) *RingTraversal {
	n := 0
	if xMax >= xMin && yMax >= yMin {
		n = (xMax - xMin + 1) * (yMax - yMin + 1)
	}
	return &RingTraversal{
		xMin: xMin, yMin: yMin, xMax: xMax, yMax: yMax,
		x: xMin, y: yMin,
		state:     ringRight,
		remaining: n,
	}
}

// BlobRing returns a traversal over b's bounding box.
func BlobRing(b Blob) *RingTraversal {
	return NewRingTraversal(b.XMin, b.YMin, b.XMax, b.YMax)
}

// Next returns the next pixel and true, or false once every pixel of the box
// has been emitted.
func (t *RingTraversal) Next() (RingStep, bool) {
	if t.remaining <= 0 {
		return RingStep{}, false
	}
	step := RingStep{X: t.x, Y: t.y, Ring: t.ring}
	t.remaining--
	if t.remaining > 0 {
		t.advance()
	}
	return step, true
}

// advance moves to the next position. Each edge ends on the corner of the
// current ring. The up edge stops one row below the ring's top and hands
// over to the contraction, which steps diagonally onto the first pixel of
// the next ring in the same move.
func (t *RingTraversal) advance() {
	switch t.state {
	case ringRight:
		if t.x == t.xMax-t.ring {
			t.state = ringDown
			t.y++
		} else {
			t.x++
		}
	case ringDown:
		if t.y == t.yMax-t.ring {
			t.state = ringLeft
			t.x--
		} else {
			t.y++
		}
	case ringLeft:
		if t.x == t.xMin+t.ring {
			t.state = ringUp
			t.y--
		} else {
			t.x--
		}
	case ringUp:
		if t.y == t.yMin+t.ring+1 {
			t.state = ringContract
			t.advance()
		} else {
			t.y--
		}
	case ringContract:
		t.ring++
		t.state = ringRight
		t.x++
	}
}

// All adapts the traversal to a range-over-func sequence. It consumes the
// traversal.
func (t *RingTraversal) All() iter.Seq[RingStep] {
	return func(yield func(RingStep) bool) {
		for {
			s, ok := t.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}
