package reveal

import (
	"math"
	"strconv"
	"strings"
)

// PathOp identifies a path command.
type PathOp uint8

const (
	PathMoveTo PathOp = iota // x, y
	PathLineTo               // x, y
	PathArc                  // cx, cy, r, start, end (radians)
	PathClose
)

// PathCmd is a single path command. Unused Data slots are zero.
//
// Arcs sweep from start to end. A sweep with end > start runs clockwise on
// screen (Y grows downward), end < start runs counter-clockwise. Like a 2D
// canvas arc, an arc is joined to the current point with a straight line.
type PathCmd struct {
	Op   PathOp
	Data [5]float64
}

// Path is a retained list of outline commands. A Path is reused across
// frames: Reset keeps the backing array.
type Path struct {
	Cmds []PathCmd
}

// Reset clears the command list, keeping capacity.
func (p *Path) Reset() { p.Cmds = p.Cmds[:0] }

func (p *Path) MoveTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: PathMoveTo, Data: [5]float64{x, y}})
}

func (p *Path) LineTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: PathLineTo, Data: [5]float64{x, y}})
}

// Arc appends a circular arc around (cx, cy).
func (p *Path) Arc(cx, cy, r, start, end float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: PathArc, Data: [5]float64{cx, cy, r, start, end}})
}

func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: PathClose}) }

// Len returns the number of commands.
func (p *Path) Len() int { return len(p.Cmds) }

// PathSink receives a path lowered to lines and cubic Béziers. The x/image
// rasterizer and Flatten are driven through it.
type PathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// Walk lowers the path into sink. Arcs are split into segments of at most a
// quarter turn, each approximated by one cubic.
func (p *Path) Walk(sink PathSink) {
	var cx, cy float64
	open := false
	for _, c := range p.Cmds {
		switch c.Op {
		case PathMoveTo:
			sink.MoveTo(c.Data[0], c.Data[1])
			cx, cy = c.Data[0], c.Data[1]
			open = true
		case PathLineTo:
			if !open {
				sink.MoveTo(c.Data[0], c.Data[1])
				open = true
			} else {
				sink.LineTo(c.Data[0], c.Data[1])
			}
			cx, cy = c.Data[0], c.Data[1]
		case PathArc:
			ox, oy, r, a0, a1 := c.Data[0], c.Data[1], c.Data[2], c.Data[3], c.Data[4]
			sx, sy := ox+r*math.Cos(a0), oy+r*math.Sin(a0)
			if !open {
				sink.MoveTo(sx, sy)
				open = true
			} else if !nearlyEqual(sx, cx) || !nearlyEqual(sy, cy) {
				sink.LineTo(sx, sy)
			}
			cx, cy = arcToCubics(sink, ox, oy, r, a0, a1)
		case PathClose:
			if open {
				sink.Close()
			}
			open = false
		}
	}
}

// arcToCubics emits the arc as cubics and returns the end point.
func arcToCubics(sink PathSink, ox, oy, r, a0, a1 float64) (float64, float64) {
	sweep := a1 - a0
	if r <= 0 || sweep == 0 {
		return ox + r*math.Cos(a1), oy + r*math.Sin(a1)
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a := a0
	var ex, ey float64
	for i := 0; i < n; i++ {
		b := a + step
		cosA, sinA := math.Cos(a), math.Sin(a)
		cosB, sinB := math.Cos(b), math.Sin(b)
		ex, ey = ox+r*cosB, oy+r*sinB
		sink.CubicTo(
			ox+r*(cosA-k*sinA), oy+r*(sinA+k*cosA),
			ox+r*(cosB+k*sinB), oy+r*(sinB-k*cosB),
			ex, ey,
		)
		a = b
	}
	return ex, ey
}

// SVGData renders the path as an SVG path "d" attribute. Arcs are emitted as
// exact elliptical arc commands.
func (p *Path) SVGData() string {
	var b strings.Builder
	b.Grow(len(p.Cmds) * 24)
	open := false
	var cx, cy float64
	for _, c := range p.Cmds {
		switch c.Op {
		case PathMoveTo:
			writeCmd(&b, 'M', c.Data[0], c.Data[1])
			cx, cy = c.Data[0], c.Data[1]
			open = true
		case PathLineTo:
			if open {
				writeCmd(&b, 'L', c.Data[0], c.Data[1])
			} else {
				writeCmd(&b, 'M', c.Data[0], c.Data[1])
				open = true
			}
			cx, cy = c.Data[0], c.Data[1]
		case PathArc:
			ox, oy, r, a0, a1 := c.Data[0], c.Data[1], c.Data[2], c.Data[3], c.Data[4]
			sx, sy := ox+r*math.Cos(a0), oy+r*math.Sin(a0)
			ex, ey := ox+r*math.Cos(a1), oy+r*math.Sin(a1)
			if !open {
				writeCmd(&b, 'M', sx, sy)
				open = true
			} else if !nearlyEqual(sx, cx) || !nearlyEqual(sy, cy) {
				writeCmd(&b, 'L', sx, sy)
			}
			if r > 0 && a1 != a0 {
				large, sweep := 0, 0
				if math.Abs(a1-a0) > math.Pi {
					large = 1
				}
				if a1 > a0 {
					sweep = 1
				}
				b.WriteString("A")
				b.WriteString(fmtNum(r))
				b.WriteByte(' ')
				b.WriteString(fmtNum(r))
				b.WriteString(" 0 ")
				b.WriteString(strconv.Itoa(large))
				b.WriteByte(' ')
				b.WriteString(strconv.Itoa(sweep))
				b.WriteByte(' ')
				b.WriteString(fmtNum(ex))
				b.WriteByte(' ')
				b.WriteString(fmtNum(ey))
			}
			cx, cy = ex, ey
		case PathClose:
			if open {
				b.WriteString("Z")
			}
			open = false
		}
	}
	return b.String()
}

func writeCmd(b *strings.Builder, op byte, x, y float64) {
	b.WriteByte(op)
	b.WriteString(fmtNum(x))
	b.WriteByte(' ')
	b.WriteString(fmtNum(y))
}

// fmtNum formats v with at most three decimals and no trailing zeros.
func fmtNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// --- Flattening ---

// flattenSink collects polygons, subdividing cubics into fixed steps.
type flattenSink struct {
	polys [][]Vec2
	cur   []Vec2
	steps int
}

func (f *flattenSink) MoveTo(x, y float64) {
	f.flush()
	f.cur = append(f.cur, Vec2{x, y})
}

func (f *flattenSink) LineTo(x, y float64) { f.cur = append(f.cur, Vec2{x, y}) }

func (f *flattenSink) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(f.cur) == 0 {
		f.cur = append(f.cur, Vec2{x, y})
		return
	}
	p0 := f.cur[len(f.cur)-1]
	for i := 1; i <= f.steps; i++ {
		t := float64(i) / float64(f.steps)
		u := 1 - t
		f.cur = append(f.cur, Vec2{
			X: u*u*u*p0.X + 3*u*u*t*c1x + 3*u*t*t*c2x + t*t*t*x,
			Y: u*u*u*p0.Y + 3*u*u*t*c1y + 3*u*t*t*c2y + t*t*t*y,
		})
	}
}

func (f *flattenSink) Close() { f.flush() }

func (f *flattenSink) flush() {
	if len(f.cur) > 0 {
		f.polys = append(f.polys, f.cur)
		f.cur = nil
	}
}

// Flatten returns one polygon per subpath, approximating each cubic with
// steps line segments.
func (p *Path) Flatten(steps int) [][]Vec2 {
	if steps < 1 {
		steps = 1
	}
	f := &flattenSink{steps: steps}
	p.Walk(f)
	f.flush()
	return f.polys
}

// signedArea returns the shoelace area of a polygon. With Y growing downward
// a clockwise polygon has positive area.
func signedArea(poly []Vec2) float64 {
	var a float64
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return a / 2
}

// windingNumber returns the nonzero winding number of (x, y) against the
// flattened subpaths.
func windingNumber(polys [][]Vec2, x, y float64) int {
	wn := 0
	for _, poly := range polys {
		n := len(poly)
		for i := 0; i < n; i++ {
			a, b := poly[i], poly[(i+1)%n]
			if a.Y <= y {
				if b.Y > y && cross(a, b, x, y) > 0 {
					wn++
				}
			} else if b.Y <= y && cross(a, b, x, y) < 0 {
				wn--
			}
		}
	}
	return wn
}

func cross(a, b Vec2, x, y float64) float64 {
	return (b.X-a.X)*(y-a.Y) - (x-a.X)*(b.Y-a.Y)
}

// Contains reports whether (x, y) is filled under the nonzero rule.
func (p *Path) Contains(x, y float64) bool {
	return windingNumber(p.Flatten(8), x, y) != 0
}

// Bounds returns the axis-aligned bounds of the flattened path.
func (p *Path) Bounds() Rect {
	polys := p.Flatten(4)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, v := range poly {
			minX = math.Min(minX, v.X)
			minY = math.Min(minY, v.Y)
			maxX = math.Max(maxX, v.X)
			maxY = math.Max(maxY, v.Y)
		}
	}
	if minX > maxX {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
