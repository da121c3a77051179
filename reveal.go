package reveal

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a surface consumes the color.
type Color struct {
	R, G, B, A float64
}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{}

// WithAlpha returns c with its alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsStrict reports whether (x, y) lies strictly inside the rectangle.
// Points on the edge are outside.
func (r Rect) ContainsStrict(x, y float64) bool {
	return x > r.X && x < r.X+r.Width &&
		y > r.Y && y < r.Y+r.Height
}

// Expand returns r grown by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// floor snaps the rectangle origin and size down to whole pixels.
func (r Rect) floor() Rect {
	return Rect{
		X:      math.Floor(r.X),
		Y:      math.Floor(r.Y),
		Width:  math.Floor(r.Width),
		Height: math.Floor(r.Height),
	}
}

// TargetKind distinguishes the compositing path used by a Target.
type TargetKind uint8

const (
	TargetCanvas TargetKind = iota // raster surface, pattern fills
	TargetVector                   // vector surface, path data + gradient attributes
)

// String returns the kind name.
func (k TargetKind) String() string {
	switch k {
	case TargetCanvas:
		return "canvas"
	case TargetVector:
		return "vector"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of pointer event delivered to a boundary.
type EventType uint8

const (
	EventPointerEnter EventType = iota // pointer entered the boundary
	EventPointerMove                   // pointer moved
	EventPointerLeave                  // pointer left the boundary
	EventPressStart                    // primary button pressed
	EventPressEnd                      // primary button released
	EventRippleEnd                     // a ripple finished and was retired
)

func (e EventType) String() string {
	switch e {
	case EventPointerEnter:
		return "pointer-enter"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerLeave:
		return "pointer-leave"
	case EventPressStart:
		return "press-start"
	case EventPressEnd:
		return "press-end"
	case EventRippleEnd:
		return "ripple-end"
	default:
		return "unknown"
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
