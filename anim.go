package magenta

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Anim is a segmented sprite atlas: the frame rectangles, the padding trimmed
// from each frame, and the texture they are cut from.
//
// The source image is kept only until the texture is uploaded (LoadTexture)
// or UnloadImage is called.
type Anim struct {
	Name string
	// FrameDuration is the time each frame is shown, in seconds.
	FrameDuration float64
	// Frames lists frame rectangles in animation order.
	Frames  []Blob
	Padding int
	Meta    AnimMeta

	source  image.Image
	texture *ebiten.Image
}

// NewAnim segments src and returns an animation over its frames. Segmentation
// happens here, once; the pixel grid built for it is not retained.
func NewAnim(name string, src image.Image) *Anim {
	return NewAnimFromSegmentation(name, src, Segment(GridFromImage(src)))
}

// NewAnimFromSegmentation builds an Anim from a segmentation computed
// elsewhere, e.g. read back from a cache.
func NewAnimFromSegmentation(name string, src image.Image, s Segmentation) *Anim {
	return &Anim{
		Name:          name,
		FrameDuration: DefaultFrameDuration,
		Frames:        s.Frames,
		Padding:       s.Padding,
		Meta:          s.AnimMeta(),
		source:        src,
	}
}

// LoadTexture uploads the source image to the GPU if that has not happened
// yet. It is called lazily by the draw methods.
func (a *Anim) LoadTexture() {
	if a.texture == nil && a.source != nil {
		a.texture = ebiten.NewImageFromImage(a.source)
	}
}

// UnloadImage releases the CPU-side source image. Call it after LoadTexture
// to keep only the texture.
func (a *Anim) UnloadImage() {
	a.source = nil
}

// Texture returns the uploaded texture, or nil before LoadTexture.
func (a *Anim) Texture() *ebiten.Image {
	return a.texture
}

// FrameIndex returns the frame shown at time t. The animation must have at
// least one frame.
func (a *Anim) FrameIndex(t float64) int {
	return FrameIndex(t, a.FrameDuration, len(a.Frames))
}

// Frame returns the texture source rectangle and the screen destination
// rectangle for time t. The animation must have at least one frame.
func (a *Anim) Frame(t float64, anchor Anchor, scale float64, pos Vec2) (src, dst Rect) {
	b := a.Frames[a.FrameIndex(t)]
	return SourceRect(b, a.Padding), DestRect(pos, scale, anchor, b)
}

// CircleScale returns the scale at which the average frame fits a circle of
// the given radius.
func (a *Anim) CircleScale(radius float64) float64 {
	d := max(a.Meta.AvgWidth, a.Meta.AvgHeight)
	if d == 0 {
		return 1
	}
	return 2 * radius / d
}

// Draw renders the frame for time t at pos.
func (a *Anim) Draw(screen *ebiten.Image, pos Vec2, t, scale float64, anchor Anchor) {
	a.draw(screen, pos, t, scale, anchor, 1)
}

// DrawLikeCircle renders the frame for time t centered on pos, scaled so the
// average frame spans 2*radius.
func (a *Anim) DrawLikeCircle(screen *ebiten.Image, pos Vec2, radius, t float64) {
	a.draw(screen, pos, t, a.CircleScale(radius), AnchorCenterCenter, 1)
}

func (a *Anim) draw(screen *ebiten.Image, pos Vec2, t, scale float64, anchor Anchor, alpha float64) {
	a.LoadTexture()
	if len(a.Frames) == 0 || a.texture == nil {
		if globalDebug {
			logger.Warn("animation has nothing to draw, using magenta placeholder",
				zap.String("anim", a.Name), zap.Int("frames", len(a.Frames)))
		}
		drawPlaceholder(screen, pos, scale, anchor)
		return
	}

	src, dst := a.Frame(t, anchor, scale, pos)
	if src.Empty() || dst.Empty() {
		return
	}
	sub := a.texture.SubImage(image.Rect(
		int(src.X), int(src.Y),
		int(src.X+src.Width), int(src.Y+src.Height),
	)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width/src.Width, dst.Height/src.Height)
	op.GeoM.Translate(dst.X, dst.Y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sub, op)
}

// magenta placeholder singleton (no sync.Once: drawing is single-threaded)
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// placeholderSize is the side, in unscaled pixels, of the square drawn for an
// animation without frames.
const placeholderSize = 8

func drawPlaceholder(screen *ebiten.Image, pos Vec2, scale float64, anchor Anchor) {
	side := placeholderSize * scale
	o := anchor.Offset(side, side)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(side, side)
	op.GeoM.Translate(pos.X+o.X, pos.Y+o.Y)
	screen.DrawImage(ensureMagentaImage(), op)
}
