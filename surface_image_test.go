package reveal

import (
	"image/color"
	"testing"
)

func squarePath(n float64) *Path {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(n, 0)
	p.LineTo(n, n)
	p.LineTo(0, n)
	p.Close()
	return &p
}

func solidGradient(c Color) RadialGradient {
	return RadialGradient{Stops: []GradientStop{{Offset: 0, Color: c}, {Offset: 1, Color: c}}}
}

func TestImageSurfaceResize(t *testing.T) {
	s := NewImageSurface(0, 0)
	if s.Ready() {
		t.Error("zero-size surface is ready")
	}
	s.Resize(4, 3)
	if !s.Ready() {
		t.Fatal("surface not ready after Resize")
	}
	img := s.Image()
	s.Resize(4, 3)
	if s.Image() != img {
		t.Error("same-size Resize reallocated")
	}
	s.Resize(5, 3)
	if b := s.Image().Bounds(); b.Dx() != 5 {
		t.Errorf("width = %d, want 5", b.Dx())
	}
	s.Resize(0, 3)
	if s.Ready() {
		t.Error("surface ready after resize to zero")
	}
}

func TestImageSurfaceFillGradient(t *testing.T) {
	s := NewImageSurface(20, 20)
	g := solidGradient(Color{R: 1, A: 1})
	s.FillPath(squarePath(10), Paint{Gradient: &g})

	img := s.Image()
	if got := img.RGBAAt(5, 5); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside = %v, want opaque red", got)
	}
	if got := img.RGBAAt(15, 15); got.A != 0 {
		t.Errorf("outside = %v, want transparent", got)
	}
}

func TestImageSurfaceFillRoundOutline(t *testing.T) {
	var p Path
	Outline{Width: 20, Height: 20, Radii: Uniform(10), Decoration: DecorationRound}.Build(&p)

	s := NewImageSurface(20, 20)
	g := solidGradient(Color{G: 1, A: 1})
	s.FillPath(&p, Paint{Gradient: &g})

	img := s.Image()
	if got := img.RGBAAt(10, 10).A; got != 255 {
		t.Errorf("center alpha = %d, want 255", got)
	}
	if got := img.RGBAAt(10, 1).A; got == 0 {
		t.Error("top of the circle is empty")
	}
	if got := img.RGBAAt(1, 1).A; got != 0 {
		t.Errorf("corner alpha = %d, want 0 outside the arc", got)
	}
}

func TestImageSurfaceFillPattern(t *testing.T) {
	s := NewImageSurface(10, 10)
	pat := s.CreatePattern(4, 4, solidGradient(Color{R: 1, G: 1, B: 1, A: 1}))
	if w, h := pat.Size(); w != 4 || h != 4 {
		t.Fatalf("pattern = %dx%d, want 4x4", w, h)
	}
	s.FillPath(squarePath(10), Paint{Pattern: pat, Offset: Vec2{2, 2}})

	img := s.Image()
	tests := []struct {
		x, y  int
		alpha uint8
	}{
		{2, 2, 255},
		{5, 5, 255},
		{1, 1, 0},
		{6, 6, 0},
		{0, 9, 0},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y).A; got != tt.alpha {
			t.Errorf("alpha at (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.alpha)
		}
	}
}

func TestImageSurfaceForeignPatternIgnored(t *testing.T) {
	s := NewImageSurface(10, 10)
	s.FillPath(squarePath(10), Paint{Pattern: &countingPattern{4, 4}})
	if got := s.Image().RGBAAt(5, 5); got.A != 0 {
		t.Errorf("foreign pattern painted %v", got)
	}
}

func TestImageSurfaceClearRect(t *testing.T) {
	s := NewImageSurface(10, 10)
	g := solidGradient(Color{G: 1, A: 1})
	s.FillPath(squarePath(10), Paint{Gradient: &g})
	s.ClearRect(Rect{X: 0, Y: 0, Width: 5, Height: 10})

	img := s.Image()
	if got := img.RGBAAt(2, 2).A; got != 0 {
		t.Errorf("cleared pixel alpha = %d, want 0", got)
	}
	if got := img.RGBAAt(7, 2).A; got != 255 {
		t.Errorf("kept pixel alpha = %d, want 255", got)
	}
}

func TestRadialGradientAt(t *testing.T) {
	g := revealGradient(Vec2{0, 0}, 10, RGB{255, 255, 255}, 0.8)
	tests := []struct {
		x, y, alpha float64
	}{
		{0, 0, 0.8},
		{5, 0, 0.4},
		{10, 0, 0},
		{0, 20, 0},
	}
	for _, tt := range tests {
		if got := g.At(tt.x, tt.y).A; !nearlyEqual(got, tt.alpha) {
			t.Errorf("At(%v, %v).A = %v, want %v", tt.x, tt.y, got, tt.alpha)
		}
	}

	g.Radius = 0
	if got := g.At(0, 0).A; got != 0 {
		t.Errorf("zero radius At = %v, want last stop", got)
	}
}

func TestGradientUniforms(t *testing.T) {
	g := revealGradient(Vec2{3, 4}, 10, RGB{255, 0, 0}, 0.5)
	u := gradientUniforms(&g)
	offs := u["Offsets"].([]float32)
	if offs[0] != 0 || offs[1] != 1 || offs[2] != 1 {
		t.Errorf("Offsets = %v, want [0 1 1]", offs)
	}
	c0 := u["Color0"].([]float32)
	if c0[0] != 1 || c0[3] != 0.5 {
		t.Errorf("Color0 = %v", c0)
	}
	c2 := u["Color2"].([]float32)
	if c2[3] != 0 {
		t.Errorf("Color2 alpha = %v, want the last stop", c2[3])
	}
	if r := u["Radius"].(float32); r != 10 {
		t.Errorf("Radius = %v, want 10", r)
	}
}
