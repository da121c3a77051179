package reveal

import "math"

// Decoration is the corner treatment of a border outline.
type Decoration uint8

const (
	DecorationMiter Decoration = iota // square corners, radii ignored
	DecorationBevel                   // straight chamfer of length radius
	DecorationRound                   // circular arc of radius
)

var decorationNames = [...]string{"miter", "bevel", "round"}

func (d Decoration) String() string {
	if int(d) < len(decorationNames) {
		return decorationNames[d]
	}
	return "unknown"
}

// Corners holds one value per rectangle corner.
type Corners struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// Uniform returns Corners with every corner set to r.
func Uniform(r float64) Corners { return Corners{r, r, r, r} }

// Edges holds one visibility factor per rectangle side. A factor of 0
// suppresses the border on that side; 1 shows it.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// AllEdges has every side visible.
var AllEdges = Edges{1, 1, 1, 1}

// Outline describes a decorated rectangle outline in local coordinates with
// its origin at the top-left corner.
type Outline struct {
	Width, Height float64
	Thickness     float64
	Radii         Corners
	Edges         Edges
	Decoration    Decoration
	// Hollow adds the inner silhouette in the opposite winding so the
	// outline fills as a ring under the nonzero rule.
	Hollow bool
}

// Build resets p and writes the outline into it. The outer silhouette is
// traced clockwise on screen, the inner one counter-clockwise.
//
// Corner radii are clamped to [0, min(Width, Height)/2]. Inner radii are
// max(0, r - Thickness) for corners touching a visible edge; where both
// adjacent edges are suppressed the inner corner coincides with the outer
// one so the ring closes without a gap.
func (o Outline) Build(p *Path) {
	p.Reset()
	w, h := o.Width, o.Height
	if !(w > 0) || !(h > 0) {
		return
	}

	r := o.outerRadii()
	o.traceOuter(p, w, h, r)

	if !o.Hollow {
		return
	}
	x0, y0, x1, y1, ok := o.innerRect()
	if !ok {
		return
	}
	o.traceInner(p, x0, y0, x1, y1, o.innerRadii())
}

// outerRadii returns the clamped outer corner radii. Miter ignores radii.
func (o Outline) outerRadii() Corners {
	if o.Decoration == DecorationMiter {
		return Corners{}
	}
	limit := math.Min(o.Width, o.Height) / 2
	return Corners{
		TopLeft:     clampRadius(o.Radii.TopLeft, limit),
		TopRight:    clampRadius(o.Radii.TopRight, limit),
		BottomRight: clampRadius(o.Radii.BottomRight, limit),
		BottomLeft:  clampRadius(o.Radii.BottomLeft, limit),
	}
}

// innerRect returns the inset rectangle of the hollow ring. ok is false when
// the inset swallows the whole outline.
func (o Outline) innerRect() (x0, y0, x1, y1 float64, ok bool) {
	t := o.thickness()
	e := o.edges()
	x0 = t * e.Left
	y0 = t * e.Top
	x1 = o.Width - t*e.Right
	y1 = o.Height - t*e.Bottom
	return x0, y0, x1, y1, x1 > x0 && y1 > y0
}

// innerRadii returns the inner corner radii, clamped to the inner rect.
func (o Outline) innerRadii() Corners {
	if o.Decoration == DecorationMiter {
		return Corners{}
	}
	r := o.outerRadii()
	t := o.thickness()
	e := o.edges()
	x0, y0, x1, y1, _ := o.innerRect()
	limit := math.Min(x1-x0, y1-y0) / 2
	return Corners{
		TopLeft:     clampRadius(r.TopLeft-t*math.Max(e.Top, e.Left), limit),
		TopRight:    clampRadius(r.TopRight-t*math.Max(e.Top, e.Right), limit),
		BottomRight: clampRadius(r.BottomRight-t*math.Max(e.Bottom, e.Right), limit),
		BottomLeft:  clampRadius(r.BottomLeft-t*math.Max(e.Bottom, e.Left), limit),
	}
}

func (o Outline) thickness() float64 {
	if !(o.Thickness > 0) {
		return 0
	}
	return o.Thickness
}

// edges normalizes factors to 0 or 1.
func (o Outline) edges() Edges {
	f := func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	}
	return Edges{f(o.Edges.Top), f(o.Edges.Right), f(o.Edges.Bottom), f(o.Edges.Left)}
}

func clampRadius(r, limit float64) float64 {
	if !(r > 0) || !(limit > 0) {
		return 0
	}
	return math.Min(r, limit)
}

const (
	angleUp    = -math.Pi / 2
	angleRight = 0.0
	angleDown  = math.Pi / 2
	angleLeft  = math.Pi
)

func (o Outline) traceOuter(p *Path, w, h float64, r Corners) {
	p.MoveTo(r.TopLeft, 0)
	p.LineTo(w-r.TopRight, 0)
	o.corner(p, w-r.TopRight, r.TopRight, r.TopRight, angleUp, angleRight, w, r.TopRight)
	p.LineTo(w, h-r.BottomRight)
	o.corner(p, w-r.BottomRight, h-r.BottomRight, r.BottomRight, angleRight, angleDown, w-r.BottomRight, h)
	p.LineTo(r.BottomLeft, h)
	o.corner(p, r.BottomLeft, h-r.BottomLeft, r.BottomLeft, angleDown, angleLeft, 0, h-r.BottomLeft)
	p.LineTo(0, r.TopLeft)
	o.corner(p, r.TopLeft, r.TopLeft, r.TopLeft, angleLeft, angleLeft+math.Pi/2, r.TopLeft, 0)
	p.Close()
}

func (o Outline) traceInner(p *Path, x0, y0, x1, y1 float64, r Corners) {
	p.MoveTo(x0+r.TopLeft, y0)
	o.corner(p, x0+r.TopLeft, y0+r.TopLeft, r.TopLeft, angleLeft+math.Pi/2, angleLeft, x0, y0+r.TopLeft)
	p.LineTo(x0, y1-r.BottomLeft)
	o.corner(p, x0+r.BottomLeft, y1-r.BottomLeft, r.BottomLeft, angleLeft, angleDown, x0+r.BottomLeft, y1)
	p.LineTo(x1-r.BottomRight, y1)
	o.corner(p, x1-r.BottomRight, y1-r.BottomRight, r.BottomRight, angleDown, angleRight, x1, y1-r.BottomRight)
	p.LineTo(x1, y0+r.TopRight)
	o.corner(p, x1-r.TopRight, y0+r.TopRight, r.TopRight, angleRight, angleUp, x1-r.TopRight, y0)
	p.Close()
}

// corner emits one decorated corner ending at (ex, ey). The current point is
// already at the corner's start.
func (o Outline) corner(p *Path, cx, cy, r, a0, a1, ex, ey float64) {
	if r <= 0 {
		return
	}
	switch o.Decoration {
	case DecorationRound:
		p.Arc(cx, cy, r, a0, a1)
	default:
		p.LineTo(ex, ey)
	}
}
