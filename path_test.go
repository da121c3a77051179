package reveal

import (
	"math"
	"testing"
)

type recordingSink struct {
	ops []string
	pts []Vec2
}

func (s *recordingSink) MoveTo(x, y float64) {
	s.ops = append(s.ops, "M")
	s.pts = append(s.pts, Vec2{x, y})
}

func (s *recordingSink) LineTo(x, y float64) {
	s.ops = append(s.ops, "L")
	s.pts = append(s.pts, Vec2{x, y})
}

func (s *recordingSink) CubicTo(_, _, _, _, x, y float64) {
	s.ops = append(s.ops, "C")
	s.pts = append(s.pts, Vec2{x, y})
}

func (s *recordingSink) Close() { s.ops = append(s.ops, "Z") }

func TestPathSVGData(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *Path)
		want  string
	}{
		{
			name: "rectangle",
			build: func(p *Path) {
				Outline{Width: 10, Height: 5, Edges: AllEdges}.Build(p)
			},
			want: "M0 0L10 0L10 5L0 5L0 0Z",
		},
		{
			name: "quarter arc",
			build: func(p *Path) {
				p.MoveTo(0, 10)
				p.Arc(10, 10, 10, math.Pi, 3*math.Pi/2)
			},
			want: "M0 10A10 10 0 0 1 10 0",
		},
		{
			name: "counter-clockwise arc",
			build: func(p *Path) {
				p.MoveTo(10, 0)
				p.Arc(10, 10, 10, 3*math.Pi/2, math.Pi)
			},
			want: "M10 0A10 10 0 0 0 0 10",
		},
		{
			name: "fractional",
			build: func(p *Path) {
				p.MoveTo(0.5, 1.25)
				p.LineTo(2.0004, 3)
				p.Close()
			},
			want: "M0.5 1.25L2 3Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Path
			tt.build(&p)
			if got := p.SVGData(); got != tt.want {
				t.Errorf("SVGData() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathWalkSplitsArcs(t *testing.T) {
	var p Path
	p.Arc(0, 0, 5, 0, 2*math.Pi)
	p.Close()

	s := &recordingSink{}
	p.Walk(s)

	cubics := 0
	for _, op := range s.ops {
		if op == "C" {
			cubics++
		}
	}
	if cubics != 4 {
		t.Errorf("cubics = %d, want 4", cubics)
	}
	if s.ops[0] != "M" || s.ops[len(s.ops)-1] != "Z" {
		t.Errorf("ops = %v, want M ... Z", s.ops)
	}
	last := s.pts[len(s.pts)-1]
	if math.Abs(last.X-5) > 1e-9 || math.Abs(last.Y) > 1e-9 {
		t.Errorf("arc end = %+v, want (5, 0)", last)
	}
}

func TestPathWalkJoinsArcStart(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.Arc(10, 10, 5, math.Pi, 3*math.Pi/2)

	s := &recordingSink{}
	p.Walk(s)
	want := []string{"M", "L", "C"}
	if len(s.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", s.ops, want)
	}
	for i := range want {
		if s.ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", s.ops, want)
		}
	}
}

func TestPathResetKeepsCapacity(t *testing.T) {
	var p Path
	Outline{Width: 10, Height: 10, Edges: AllEdges, Hollow: true, Thickness: 1}.Build(&p)
	c := cap(p.Cmds)
	p.Reset()
	if p.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", p.Len())
	}
	if cap(p.Cmds) != c {
		t.Errorf("cap = %d after Reset, want %d", cap(p.Cmds), c)
	}
}

func TestPathBounds(t *testing.T) {
	var p Path
	p.Arc(20, 20, 10, 0, 2*math.Pi)
	b := p.Bounds()
	if !rectNear(b, Rect{10, 10, 20, 20}) {
		// Flattened cubics touch the extreme points exactly at quarter turns.
		t.Errorf("Bounds() = %+v, want {10 10 20 20}", b)
	}
}
