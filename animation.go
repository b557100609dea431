package magenta

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields on an AnimSprite simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAlpha, TweenSpeed) and call Update(dt) each frame.
//
// There is no global tween manager; callers run Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	// OnComplete, if set, runs once on the Update that finishes the group.
	OnComplete func()
	Done       bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.Done && g.OnComplete != nil {
		g.OnComplete()
	}
}

// Stop ends the group where it is. OnComplete does not run.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// TweenPosition creates a TweenGroup that moves the sprite to (toX, toY) over
// duration seconds using the easing function.
func TweenPosition(s *AnimSprite, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(s.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(s.Y), float32(toY), duration, fn)
	g.fields[0] = &s.X
	g.fields[1] = &s.Y
	return g
}

// TweenScale creates a TweenGroup that animates the sprite's draw scale.
func TweenScale(s *AnimSprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenField(&s.Scale, to, duration, fn)
}

// TweenAlpha creates a TweenGroup that animates the sprite's opacity.
func TweenAlpha(s *AnimSprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenField(&s.Alpha, to, duration, fn)
}

// TweenSpeed creates a TweenGroup that eases the sprite's playback speed,
// e.g. to slow an enemy's walk cycle as it is frozen.
func TweenSpeed(s *AnimSprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenField(&s.Speed, to, duration, fn)
}

func tweenField(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}
