package reveal

import (
	"math"
	"sort"
)

// RasterSurface is the drawing surface of a TargetCanvas. Coordinates are
// device pixels with the origin at the top-left of the element.
type RasterSurface interface {
	// Ready reports whether the surface can be drawn to. Targets skip
	// surfaces that are not ready and retry on the next frame.
	Ready() bool
	// Resize sets the backing size. Implementations ignore calls that do not
	// change the size.
	Resize(w, h int)
	ClearRect(r Rect)
	// FillPath fills p with paint using the nonzero winding rule.
	FillPath(p *Path, paint Paint)
	// CreatePattern renders g into a w×h offscreen and returns it as a
	// pattern. The pattern does not repeat.
	CreatePattern(w, h int, g RadialGradient) Pattern
}

// Pattern is an offscreen image created by a RasterSurface.
type Pattern interface {
	Size() (w, h int)
}

// Paint is the fill style of a FillPath call: either a pattern whose
// top-left corner is placed at Offset, or a radial gradient.
type Paint struct {
	Pattern  Pattern
	Offset   Vec2
	Gradient *RadialGradient
}

// VectorLayer names one of the path elements of a VectorSurface.
type VectorLayer uint8

const (
	LayerBorder VectorLayer = iota // hollow outline lit by the border glow
	LayerFill                      // solid outline lit by the hover light
	LayerRipple                    // solid outline carrying the press ripple
	layerCount
)

func (l VectorLayer) String() string {
	switch l {
	case LayerBorder:
		return "border"
	case LayerFill:
		return "fill"
	case LayerRipple:
		return "ripple"
	default:
		return "unknown"
	}
}

// VectorSurface is the drawing surface of a TargetVector: a fixed set of
// path elements, each with outline data and an optional gradient fill.
type VectorSurface interface {
	Ready() bool
	Resize(w, h int)
	// SetPathData replaces the outline of layer with SVG path data.
	SetPathData(layer VectorLayer, d string)
	// SetGradient fills layer with g, or hides its fill when g is nil.
	SetGradient(layer VectorLayer, g *RadialGradient)
}

// GradientStop is one color stop of a gradient. Offset is in [0, 1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// RadialGradient fades from Stops[0] at Center to the last stop at Radius.
type RadialGradient struct {
	Center Vec2
	Radius float64
	Stops  []GradientStop
}

// revealGradient is the two-stop glow used by the border and hover light.
func revealGradient(center Vec2, radius float64, c RGB, alpha float64) RadialGradient {
	return RadialGradient{
		Center: center,
		Radius: radius,
		Stops: []GradientStop{
			{Offset: 0, Color: c.Color(alpha)},
			{Offset: 1, Color: c.Color(0)},
		},
	}
}

// At samples the gradient at (x, y). Colors are interpolated without
// premultiplication; points past the last stop take its color.
func (g *RadialGradient) At(x, y float64) Color {
	n := len(g.Stops)
	if n == 0 {
		return ColorTransparent
	}
	if !(g.Radius > 0) {
		return g.Stops[n-1].Color
	}
	t := math.Hypot(x-g.Center.X, y-g.Center.Y) / g.Radius
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	i := sort.Search(n, func(i int) bool { return g.Stops[i].Offset >= t })
	if i >= n {
		return g.Stops[n-1].Color
	}
	a, b := g.Stops[i-1], g.Stops[i]
	span := b.Offset - a.Offset
	if span <= 0 {
		return b.Color
	}
	f := (t - a.Offset) / span
	return Color{
		R: a.Color.R + (b.Color.R-a.Color.R)*f,
		G: a.Color.G + (b.Color.G-a.Color.G)*f,
		B: a.Color.B + (b.Color.B-a.Color.B)*f,
		A: a.Color.A + (b.Color.A-a.Color.A)*f,
	}
}

// scaled returns g with its geometry multiplied by k.
func (g RadialGradient) scaled(k float64) RadialGradient {
	g.Center = Vec2{g.Center.X * k, g.Center.Y * k}
	g.Radius *= k
	return g
}
