package magenta

import "github.com/hajimehoshi/ebiten/v2"

// AnimSprite is one on-screen instance of an Anim: where it is drawn, how
// large, and how far into the animation it is. Many sprites can share an
// Anim.
type AnimSprite struct {
	Anim   *Anim
	X, Y   float64
	Scale  float64
	Alpha  float64
	Anchor Anchor
	// Speed multiplies elapsed time; 0 freezes the animation.
	Speed float64
	// Time is the animation clock in seconds.
	Time float64
	// Hidden sprites keep animating but are not drawn.
	Hidden bool
}

// NewAnimSprite returns a visible sprite at full scale and opacity playing
// anim at normal speed.
func NewAnimSprite(anim *Anim, anchor Anchor) *AnimSprite {
	return &AnimSprite{
		Anim:   anim,
		Scale:  1,
		Alpha:  1,
		Anchor: anchor,
		Speed:  1,
	}
}

// Update advances the animation clock by dt seconds.
func (s *AnimSprite) Update(dt float64) {
	s.Time += dt * s.Speed
}

// FrameIndex returns the frame currently shown.
func (s *AnimSprite) FrameIndex() int {
	return s.Anim.FrameIndex(s.Time)
}

// Bounds returns the destination rectangle of the current frame.
func (s *AnimSprite) Bounds() Rect {
	if len(s.Anim.Frames) == 0 {
		return Rect{X: s.X, Y: s.Y}
	}
	_, dst := s.Anim.Frame(s.Time, s.Anchor, s.Scale, Vec2{X: s.X, Y: s.Y})
	return dst
}

// Draw renders the current frame onto screen.
func (s *AnimSprite) Draw(screen *ebiten.Image) {
	if s.Hidden || s.Alpha <= 0 {
		return
	}
	s.Anim.draw(screen, Vec2{X: s.X, Y: s.Y}, s.Time, s.Scale, s.Anchor, s.Alpha)
}
