package reveal

import (
	"errors"
	"math"
	"testing"
)

// countingSurface is a RasterSurface that records what it is asked to do.
type countingSurface struct {
	w, h     int
	resizes  int
	clears   int
	fills    []Paint
	patterns []Pattern
	notReady bool
}

type countingPattern struct{ w, h int }

func (p *countingPattern) Size() (int, int) { return p.w, p.h }

func (s *countingSurface) Ready() bool { return !s.notReady }

func (s *countingSurface) Resize(w, h int) {
	if w != s.w || h != s.h {
		s.resizes++
	}
	s.w, s.h = w, h
}

func (s *countingSurface) ClearRect(Rect) { s.clears++ }

func (s *countingSurface) FillPath(_ *Path, p Paint) { s.fills = append(s.fills, p) }

func (s *countingSurface) CreatePattern(w, h int, _ RadialGradient) Pattern {
	p := &countingPattern{w, h}
	s.patterns = append(s.patterns, p)
	return p
}

func (s *countingSurface) gradientFills() int {
	n := 0
	for _, p := range s.fills {
		if p.Gradient != nil {
			n++
		}
	}
	return n
}

// testRig is a boundary over a 200x200 container with one 50x100 target at
// (10, 10) whose style is the default sheet plus overrides.
type testRig struct {
	loop   *FrameLoop
	b      *Boundary
	s      *countingSurface
	t      *Target
	style  MapStyleSource
	target *Box
}

func newTestRig(t *testing.T, mode BorderDetectionMode, overrides map[string]string) *testRig {
	t.Helper()
	style := styleWith(overrides)
	cfg := NewConfigBuilder().
		WithBorderDetection(mode).
		WithStyleSourceFactory(func(Element) StyleSource { return style }).
		Build()
	r := &testRig{
		loop:   NewFrameLoop(),
		s:      &countingSurface{},
		style:  style,
		target: NewBox("target", Rect{X: 10, Y: 10, Width: 50, Height: 100}),
	}
	r.b = NewBoundary(NewBox("container", Rect{Width: 200, Height: 200}), r.loop, cfg)
	tg, err := r.b.AddTarget(r.s, r.target)
	if err != nil {
		t.Fatalf("AddTarget: %v", err)
	}
	r.t = tg
	return r
}

func TestAddTarget(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	if r.t.Kind() != TargetCanvas {
		t.Errorf("Kind = %v, want canvas", r.t.Kind())
	}
	again, err := r.b.AddTarget(r.s, r.target)
	if err != nil {
		t.Fatal(err)
	}
	if again != r.t || len(r.b.Targets()) != 1 {
		t.Errorf("duplicate AddTarget registered a second target")
	}
	if _, ok := r.t.Style(); !ok {
		t.Error("style should be resolved on registration")
	}
	if got := r.b.MaxRadius(); got != 150 {
		t.Errorf("MaxRadius = %v, want 150", got)
	}

	svg := NewSVGSurface("v")
	vt, err := r.b.AddTarget(svg, NewBox("v", Rect{Width: 10, Height: 10}))
	if err != nil {
		t.Fatal(err)
	}
	if vt.Kind() != TargetVector {
		t.Errorf("Kind = %v, want vector", vt.Kind())
	}
}

func TestAddTargetErrors(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	if _, err := r.b.AddTarget(42, r.target); !errors.Is(err, ErrUnsupportedSurface) {
		t.Errorf("err = %v, want ErrUnsupportedSurface", err)
	}
	if _, err := r.b.AddTarget(&countingSurface{}, nil); !errors.Is(err, ErrNilElement) {
		t.Errorf("err = %v, want ErrNilElement", err)
	}
	if err := r.b.RemoveTarget(&countingSurface{}); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("err = %v, want ErrUnknownTarget", err)
	}
	if err := r.b.RemoveTarget(r.s); err != nil {
		t.Errorf("RemoveTarget: %v", err)
	}
	if len(r.b.Targets()) != 0 {
		t.Errorf("targets = %d, want 0", len(r.b.Targets()))
	}

	r.b.Destroy()
	if _, err := r.b.AddTarget(&countingSurface{}, r.target); !errors.Is(err, ErrBoundaryDestroyed) {
		t.Errorf("err = %v, want ErrBoundaryDestroyed", err)
	}
}

func TestTickIdleWithoutPointer(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	if err := r.b.Tick(1); err != nil {
		t.Fatal(err)
	}
	if len(r.s.fills) != 0 || r.s.clears != 0 {
		t.Errorf("idle tick painted: fills=%d clears=%d", len(r.s.fills), r.s.clears)
	}
	if r.b.Running() {
		t.Error("idle tick should not reschedule")
	}
}

func TestPaintSkipsUnchangedPointer(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)

	r.loop.Advance(1)
	// border glow and hover light
	if len(r.s.fills) != 2 {
		t.Fatalf("fills = %d, want 2", len(r.s.fills))
	}
	if r.s.w != 50 || r.s.h != 100 {
		t.Errorf("surface = %dx%d, want 50x100", r.s.w, r.s.h)
	}

	r.loop.Advance(2)
	if len(r.s.fills) != 2 || r.s.clears != 0 {
		t.Errorf("unchanged pointer repainted: fills=%d clears=%d", len(r.s.fills), r.s.clears)
	}

	r.b.OnPointerMove(36, 60)
	r.loop.Advance(3)
	if len(r.s.fills) != 4 {
		t.Errorf("fills = %d, want 4", len(r.s.fills))
	}
	if r.s.clears != 1 {
		t.Errorf("clears = %d, want 1", r.s.clears)
	}
	if !r.b.Running() {
		t.Error("boundary should keep ticking while the pointer is inside")
	}
}

func TestPatternOffsets(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)
	r.loop.Advance(1)

	// Relative pointer (25, 50) minus the 150px glow radius.
	want := Vec2{-125, -100}
	for i, p := range r.s.fills {
		if p.Offset != want {
			t.Errorf("fill %d offset = %v, want %v", i, p.Offset, want)
		}
	}
	if w, h := r.s.patterns[0].Size(); w != 300 || h != 300 {
		t.Errorf("pattern size = %dx%d, want 300x300", w, h)
	}
}

func TestPatternCachedUntilKeyChanges(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)
	r.loop.Advance(1)
	if len(r.s.patterns) != 2 {
		t.Fatalf("patterns = %d, want 2", len(r.s.patterns))
	}
	first := r.s.fills[0].Pattern

	for i := 0; i < 5; i++ {
		r.b.OnPointerMove(36+float64(i), 60)
		r.loop.Advance(int64(2 + i))
	}
	if len(r.s.patterns) != 2 {
		t.Errorf("patterns = %d after moves, want 2", len(r.s.patterns))
	}
	if last := r.s.fills[len(r.s.fills)-2].Pattern; last != first {
		t.Error("border pattern changed without a key change")
	}

	r.style[PropOpacity] = "0.5"
	r.b.OnPointerMove(30, 60)
	r.loop.Advance(10)
	if len(r.s.patterns) != 4 {
		t.Errorf("patterns = %d after opacity change, want 4", len(r.s.patterns))
	}
}

func TestHoverLightNeedsStrictInside(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, map[string]string{PropDiffuse: "false"})
	r.b.OnPointerEnter()
	// On the left edge of the target: not strictly inside.
	r.b.OnPointerMove(10, 60)
	r.loop.Advance(1)
	if len(r.s.fills) != 0 {
		t.Errorf("fills = %d, want 0 on the edge without diffuse", len(r.s.fills))
	}

	r.b.OnPointerMove(11, 60)
	r.loop.Advance(2)
	if len(r.s.fills) != 2 {
		t.Errorf("fills = %d, want 2 inside", len(r.s.fills))
	}
}

func TestDiffuseGlowOutsideTarget(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(100, 60)
	r.loop.Advance(1)
	// Only the border glow; the hover light needs the pointer inside.
	if len(r.s.fills) != 1 {
		t.Errorf("fills = %d, want 1", len(r.s.fills))
	}
}

func TestPointerFarAwaySkipsDrawing(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, map[string]string{
		PropHoverLightFillRadiusMode: "absolute",
		PropHoverLightFillRadius:     "20",
	})
	r.b.OnPointerEnter()
	r.b.OnPointerMove(150, 60)
	r.loop.Advance(1)
	if len(r.s.fills) != 0 {
		t.Errorf("fills = %d, want 0 beyond the glow radius", len(r.s.fills))
	}
}

func TestPressRippleLifecycle(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)

	if got := r.b.OnPressStart(); got != r.t {
		t.Fatalf("OnPressStart = %v, want the target", got)
	}
	if len(r.b.AnimationQueue()) != 1 {
		t.Fatalf("queue = %d, want 1", len(r.b.AnimationQueue()))
	}

	r.loop.Advance(100) // ripple starts, progress 0
	r.loop.Advance(1100)
	if p, ok := r.t.Progress(); !ok || p != 0.5 {
		t.Errorf("progress = %v (%v), want 0.5", p, ok)
	}
	if r.s.gradientFills() == 0 {
		t.Error("ripple was not drawn")
	}

	r.b.OnPressEnd()
	r.loop.Advance(1200)
	if len(r.b.AnimationQueue()) != 1 {
		t.Fatal("ripple finished too early")
	}
	r.loop.Advance(1300)
	if len(r.b.AnimationQueue()) != 0 {
		t.Fatalf("queue = %d after progress passed 1, want 0", len(r.b.AnimationQueue()))
	}
	if r.t.Pressed() {
		t.Error("target still pressed after the ripple finished")
	}

	ripples := r.s.gradientFills()
	r.b.OnPointerMove(36, 60)
	r.loop.Advance(1400)
	if r.s.gradientFills() != ripples {
		t.Error("ripple drawn after it finished")
	}
}

func TestRepressRestartsRipple(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)
	r.b.OnPressStart()
	r.loop.Advance(100)
	r.loop.Advance(600)
	if p, _ := r.t.Progress(); p != 0.25 {
		t.Fatalf("progress = %v, want 0.25", p)
	}
	r.b.OnPressEnd()

	if got := r.b.OnPressStart(); got != r.t {
		t.Fatalf("OnPressStart = %v, want the target", got)
	}
	if p, ok := r.t.Progress(); ok {
		t.Errorf("progress = %v after a new press, want none until the next tick", p)
	}
	if !r.t.Pressed() {
		t.Error("target not pressed after a new press")
	}

	// Releasing before the first tick still accelerates from the start.
	r.b.OnPressEnd()
	r.loop.Advance(700)
	r.loop.Advance(800)
	p, ok := r.t.Progress()
	if !ok || math.Abs(p-0.35) > 1e-9 {
		t.Errorf("progress = %v (%v), want 0.35", p, ok)
	}
}

func TestPressOutsideTargets(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(150, 150)
	if got := r.b.OnPressStart(); got != nil {
		t.Errorf("OnPressStart = %v, want nil", got)
	}
	if len(r.b.AnimationQueue()) != 0 {
		t.Error("queue should be empty")
	}
}

func TestPressAnimationDisabled(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, map[string]string{PropPressAnimation: "false"})
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)
	r.b.OnPressStart()
	r.loop.Advance(100)
	r.loop.Advance(500)
	if r.s.gradientFills() != 0 {
		t.Error("ripple drawn with press animation disabled")
	}
}

func TestRippleKeepsTickingAfterLeave(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)
	r.b.OnPressStart()
	r.loop.Advance(100)
	r.b.OnPressEnd()
	if err := r.b.OnPointerLeave(); err != nil {
		t.Fatal(err)
	}
	if r.b.InBoundary() {
		t.Fatal("InBoundary after leave")
	}
	r.loop.Advance(200)
	if !r.b.Running() {
		t.Error("running ripple should keep the boundary ticking")
	}
	for f := int64(300); f < 5000 && len(r.b.AnimationQueue()) > 0; f += 100 {
		r.loop.Advance(f)
	}
	if len(r.b.AnimationQueue()) != 0 {
		t.Fatal("ripple never finished")
	}
	r.loop.Advance(6000)
	if r.b.Running() {
		t.Error("boundary should stop ticking once idle")
	}
}

func TestLeaveClearsTargets(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)
	r.loop.Advance(1)
	fills := len(r.s.fills)

	if err := r.b.OnPointerLeave(); err != nil {
		t.Fatal(err)
	}
	if r.s.clears != 1 {
		t.Errorf("clears = %d, want 1", r.s.clears)
	}
	if len(r.s.fills) != fills {
		t.Error("leave painted a new reveal")
	}
}

func TestSurfaceNotReady(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.s.notReady = true
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)
	if err := r.b.Tick(1); err != nil {
		t.Fatal(err)
	}
	if len(r.s.fills) != 0 || r.s.resizes != 0 {
		t.Error("painted to a surface that is not ready")
	}
}

func TestAutoFitHitMargin(t *testing.T) {
	props := map[string]string{
		PropHoverLightFillRadiusMode: "absolute",
		PropHoverLightFillRadius:     "40",
	}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 100, 100, true},
		{"at margin", -40, 100, true},
		{"past margin", -41, 100, false},
		{"corner at margin", 240, 240, true},
		{"corner past margin", 241, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRig(t, BorderAutoFit, props)
			if got := r.b.MaxRadius(); got != 40 {
				t.Fatalf("MaxRadius = %v, want 40", got)
			}
			got := r.b.OnPointerMove(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("OnPointerMove(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
			if r.b.InBoundary() != tt.want {
				t.Errorf("InBoundary = %v, want %v", r.b.InBoundary(), tt.want)
			}
			if r.b.Running() != tt.want {
				t.Errorf("Running = %v, want %v", r.b.Running(), tt.want)
			}
		})
	}
}

func TestStrictEdgeMoveDoesNotEnter(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	if r.b.OnPointerMove(35, 60) {
		t.Error("move reported inside before enter")
	}
	if r.b.Running() {
		t.Error("move started ticking in strict-edge mode")
	}
	r.b.OnPointerEnter()
	if !r.b.OnPointerMove(35, 60) {
		t.Error("move reported outside after enter")
	}
}

func TestDestroy(t *testing.T) {
	r := newTestRig(t, BorderStrictEdge, nil)
	r.b.OnPointerEnter()
	r.b.OnPointerMove(35, 60)
	r.loop.Advance(1)
	r.b.OnPointerMove(36, 60)

	r.b.Destroy()
	if r.b.Running() {
		t.Error("destroyed boundary still scheduled")
	}
	if r.s.clears != 1 {
		t.Errorf("clears = %d, want 1", r.s.clears)
	}
	fills := len(r.s.fills)
	r.loop.Advance(2)
	if len(r.s.fills) != fills {
		t.Error("destroyed boundary painted")
	}
	if err := r.b.Tick(3); !errors.Is(err, ErrBoundaryDestroyed) {
		t.Errorf("Tick err = %v, want ErrBoundaryDestroyed", err)
	}
	r.b.Destroy()
}

func TestEndToEndImageSurface(t *testing.T) {
	loop := NewFrameLoop()
	box := NewBox("panel", Rect{Width: 50, Height: 100})
	b := NewBoundary(box, loop, nil)
	s := NewImageSurface(50, 100)
	tg, err := b.AddTarget(s, box)
	if err != nil {
		t.Fatal(err)
	}
	st, ok := tg.Style()
	if !ok {
		t.Fatal("style not resolved")
	}
	if st.TrueFillRadius != [2]float64{75, 150} {
		t.Errorf("TrueFillRadius = %v, want [75 150]", st.TrueFillRadius)
	}

	b.OnPointerEnter()
	b.OnPointerMove(25, 50)
	loop.Advance(1)

	img := s.Image()
	if a := img.RGBAAt(25, 50).A; a == 0 {
		t.Error("hover light not painted at the pointer")
	}

	if err := b.OnPointerLeave(); err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatalf("pixel %d not cleared after leave", i/4)
		}
	}
}

func TestEndToEndVectorSurface(t *testing.T) {
	loop := NewFrameLoop()
	box := NewBox("panel", Rect{Width: 50, Height: 100})
	b := NewBoundary(box, loop, nil)
	s := NewSVGSurface("panel")
	if _, err := b.AddTarget(s, box); err != nil {
		t.Fatal(err)
	}

	b.OnPointerEnter()
	b.OnPointerMove(25, 50)
	loop.Advance(1)

	if s.PathData(LayerBorder) == "" || s.PathData(LayerFill) == "" {
		t.Error("path data not set")
	}
	g := s.Gradient(LayerFill)
	if g == nil {
		t.Fatal("hover light gradient not set")
	}
	if g.Center != (Vec2{25, 50}) || g.Radius != 150 {
		t.Errorf("gradient = %v r=%v, want center (25,50) r=150", g.Center, g.Radius)
	}
	if s.Gradient(LayerBorder) == nil {
		t.Error("border gradient not set")
	}

	if err := b.OnPointerLeave(); err != nil {
		t.Fatal(err)
	}
	for l := VectorLayer(0); l < layerCount; l++ {
		if s.Gradient(l) != nil {
			t.Errorf("%v gradient not cleared after leave", l)
		}
	}
}
