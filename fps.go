package magenta

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the FPS widget redraws its text.
const fpsRefresh = 0.5

// FPSWidget displays the current FPS and TPS plus a caller-supplied status
// line. It redraws into its own image about every half second.
type FPSWidget struct {
	// Status, if set, is appended below the rates on each refresh.
	Status func() string

	img        *ebiten.Image
	lastUpdate float64
	text       string
}

// NewFPSWidget creates a widget. Its image is allocated on first draw.
func NewFPSWidget() *FPSWidget {
	return &FPSWidget{lastUpdate: fpsRefresh}
}

// Update advances the refresh timer and reports whether the text was
// rebuilt.
func (w *FPSWidget) Update(dt float64) bool {
	w.lastUpdate += dt
	if w.lastUpdate < fpsRefresh {
		return false
	}
	w.lastUpdate = 0
	w.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if w.Status != nil {
		w.text += "\n" + w.Status()
	}
	if w.img != nil {
		w.redraw()
	}
	return true
}

// Text returns the text shown since the last refresh.
func (w *FPSWidget) Text() string { return w.text }

// Draw renders the widget with its top-left corner at (x, y).
func (w *FPSWidget) Draw(screen *ebiten.Image, x, y float64) {
	if w.img == nil {
		// 200x64 holds the rates and two status lines of debug font.
		w.img = ebiten.NewImage(200, 64)
		w.redraw()
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(w.img, op)
}

func (w *FPSWidget) redraw() {
	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, w.text)
}
