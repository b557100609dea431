package magenta

import "math"

// DefaultFrameDuration is the time, in seconds, each animation frame is
// shown unless a manifest overrides it.
const DefaultFrameDuration = 0.1

// FrameIndex maps a time to an animation frame: floor(t/frameDuration)
// modulo frameCount. Negative times wrap backwards so the result is always in
// [0, frameCount).
//
// frameCount must be positive; zero frames panics.
func FrameIndex(t, frameDuration float64, frameCount int) int {
	if frameCount <= 0 {
		panic("magenta: FrameIndex with no frames")
	}
	i := int(math.Floor(t/frameDuration)) % frameCount
	if i < 0 {
		i += frameCount
	}
	return i
}

// SourceRect returns b shrunk by pad on every side. The result is not clamped:
// a pad at least half the frame size gives an empty or negative rectangle.
func SourceRect(b Blob, pad int) Rect {
	p := float64(pad)
	return Rect{
		X:      float64(b.XMin) + p,
		Y:      float64(b.YMin) + p,
		Width:  float64(b.Width()) - 2*p,
		Height: float64(b.Height()) - 2*p,
	}
}

// DestRect returns the on-screen rectangle for b scaled by scale and placed
// on pos according to anchor.
func DestRect(pos Vec2, scale float64, anchor Anchor, b Blob) Rect {
	w := float64(b.Width()) * scale
	h := float64(b.Height()) * scale
	o := anchor.Offset(w, h)
	return Rect{X: pos.X + o.X, Y: pos.Y + o.Y, Width: w, Height: h}
}
