package magenta

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Color is a straight-alpha RGBA color with 8-bit channels, as stored in a
// decoded atlas pixel buffer.
type Color struct {
	R, G, B, A uint8
}

// Background is the sentinel separating sprite frames in an atlas. The match
// is exact on all four channels.
var Background = Color{R: 255, G: 0, B: 255, A: 255}

// IsBackground reports whether c is exactly the magenta sentinel.
func (c Color) IsBackground() bool {
	return c == Background
}

// IsTransparent reports whether c is fully transparent. The color channels
// of a transparent pixel are ignored.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// RGBA returns c as an image/color value.
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Width and Height are not clamped
// and may be zero or negative for degenerate frames.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether r has no positive area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Anchor selects the reference point of a drawn frame relative to its target
// position.
type Anchor uint8

const (
	AnchorTopLeft      Anchor = iota // position is the frame's top-left corner
	AnchorTopCenter                  // position is the middle of the top edge
	AnchorTopRight                   // position is the top-right corner
	AnchorCenterLeft                 // position is the middle of the left edge
	AnchorCenterCenter               // position is the frame's center
	AnchorCenterRight                // position is the middle of the right edge
	AnchorBottomLeft                 // position is the bottom-left corner
	AnchorBottomCenter               // position is the middle of the bottom edge
	AnchorBottomRight                // position is the bottom-right corner
)

var anchorNames = [...]string{
	AnchorTopLeft:      "top-left",
	AnchorTopCenter:    "top-center",
	AnchorTopRight:     "top-right",
	AnchorCenterLeft:   "center-left",
	AnchorCenterCenter: "center-center",
	AnchorCenterRight:  "center-right",
	AnchorBottomLeft:   "bottom-left",
	AnchorBottomCenter: "bottom-center",
	AnchorBottomRight:  "bottom-right",
}

// String returns the canonical hyphenated name, e.g. "bottom-center".
func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", uint8(a))
}

// Offset returns the displacement applied to a target position so that a
// w×h rectangle is placed with this anchor on that position.
func (a Anchor) Offset(w, h float64) Vec2 {
	var o Vec2
	switch a {
	case AnchorTopCenter, AnchorCenterCenter, AnchorBottomCenter:
		o.X = -w / 2
	case AnchorTopRight, AnchorCenterRight, AnchorBottomRight:
		o.X = -w
	}
	switch a {
	case AnchorCenterLeft, AnchorCenterCenter, AnchorCenterRight:
		o.Y = -h / 2
	case AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight:
		o.Y = -h
	}
	return o
}

// IsTop reports whether the anchor sits on the top edge.
func (a Anchor) IsTop() bool {
	return a == AnchorTopLeft || a == AnchorTopCenter || a == AnchorTopRight
}

// IsBottom reports whether the anchor sits on the bottom edge.
func (a Anchor) IsBottom() bool {
	return a == AnchorBottomLeft || a == AnchorBottomCenter || a == AnchorBottomRight
}

// anchorAliases maps sorted name parts to anchors. Single words resolve to a
// corner or edge the way the asset tooling always has: "center" alone means
// top-center and "bottom" alone means bottom-left.
var anchorAliases = map[string]Anchor{
	"top":           AnchorTopLeft,
	"center":        AnchorTopCenter,
	"bottom":        AnchorBottomLeft,
	"left":          AnchorTopLeft,
	"right":         AnchorTopRight,
	"left-top":      AnchorTopLeft,
	"center-top":    AnchorTopCenter,
	"right-top":     AnchorTopRight,
	"center-left":   AnchorCenterLeft,
	"center-center": AnchorCenterCenter,
	"center-right":  AnchorCenterRight,
	"bottom-left":   AnchorBottomLeft,
	"bottom-center": AnchorBottomCenter,
	"bottom-right":  AnchorBottomRight,
}

// ParseAnchor parses names such as "bottom-center", "center_center" or
// "top". Two-part names are order-insensitive ("left-bottom" equals
// "bottom-left").
func ParseAnchor(s string) (Anchor, error) {
	parts := strings.Split(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"), "-")
	if len(parts) > 2 {
		return 0, fmt.Errorf("magenta: invalid anchor %q", s)
	}
	sort.Strings(parts)
	if a, ok := anchorAliases[strings.Join(parts, "-")]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("magenta: invalid anchor %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	if int(a) >= len(anchorNames) {
		return nil, fmt.Errorf("magenta: invalid anchor %d", uint8(a))
	}
	return []byte(anchorNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so anchors decode from
// manifest YAML scalars.
func (a *Anchor) UnmarshalText(text []byte) error {
	v, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
