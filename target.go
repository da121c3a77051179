package reveal

import (
	"fmt"
	"math"
)

// pointerState is the press/release animation state of one target.
type pointerState struct {
	pressed  bool
	released bool

	downStart    int64
	hasDownStart bool

	// current is the number of frames elapsed since downStart as of the last
	// tick; releasedAt is the value current had when the press ended.
	current    float64
	releasedAt float64

	progress    float64
	hasProgress bool

	releaseX, releaseY float64
	hasRelease         bool
}

// Target is one decorated element registered with a Boundary. It owns its
// drawing surface and caches. Both surface kinds share this struct; the
// compositing step is chosen by Kind.
type Target struct {
	kind      TargetKind
	handle    any
	raster    RasterSurface
	vec       VectorSurface
	container Element
	boundary  *Boundary
	style     StyleSource
	cache     styleCache

	frameID   int64
	rect      Rect
	rectFrame int64

	border cachedReveal
	fill   cachedReveal

	borderPath Path
	fillPath   Path
	shapeW     float64
	shapeH     float64
	shapeValid bool

	// vector variant: gradient stops rebuilt on fill changes and the layers
	// currently carrying a fill.
	borderStops []GradientStop
	fillStops   []GradientStop
	shown       [layerCount]bool

	ptr      pointerState
	paintedW float64
	paintedH float64
}

func newTarget(b *Boundary, surface any, container Element) (*Target, error) {
	if container == nil {
		return nil, ErrNilElement
	}
	t := &Target{
		handle:    surface,
		container: container,
		boundary:  b,
		cache:     newStyleCache(),
		frameID:   -1,
		rectFrame: -2,
	}
	switch s := surface.(type) {
	case RasterSurface:
		t.kind = TargetCanvas
		t.raster = s
	case VectorSurface:
		t.kind = TargetVector
		t.vec = s
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSurface, surface)
	}
	t.style = b.cfg.StyleSourceFor(container)
	return t, nil
}

// Kind reports which surface variant the target draws to.
func (t *Target) Kind() TargetKind { return t.kind }

// Surface returns the surface handle the target was registered with.
func (t *Target) Surface() any { return t.handle }

// Container returns the element whose bounds the reveal covers.
func (t *Target) Container() Element { return t.container }

// Style returns a copy of the last resolved style and whether one exists.
func (t *Target) Style() (CachedStyle, bool) { return t.cache.style, t.cache.valid }

// Rect returns the cached bounding rectangle.
func (t *Target) Rect() Rect { return t.rect }

// Pressed reports whether a ripple is active on the target.
func (t *Target) Pressed() bool { return t.ptr.pressed }

// Progress returns the logical ripple progress, if one has been computed.
func (t *Target) Progress() (float64, bool) { return t.ptr.progress, t.ptr.hasProgress }

func (t *Target) ready() bool {
	if t.kind == TargetVector {
		return t.vec != nil && t.vec.Ready()
	}
	return t.raster != nil && t.raster.Ready()
}

// refreshRect re-reads the container rectangle once per frame.
func (t *Target) refreshRect() {
	if t.rectFrame == t.frameID {
		return
	}
	t.rect = t.container.BoundingRect().floor()
	t.rectFrame = t.frameID
}

// resolveStyle refreshes the rectangle and the style snapshot for the
// current frame and reports the glow radius to the boundary.
func (t *Target) resolveStyle() error {
	t.refreshRect()
	changed, err := t.cache.resolve(t.frameID, t.style, t.container, t.rect)
	if err != nil {
		return err
	}
	if changed {
		t.boundary.updateMaxRadius(t.cache.style.maxRadius())
	}
	return nil
}

// mouseInside reports whether the boundary pointer lies strictly inside the
// cached rectangle.
func (t *Target) mouseInside() bool {
	t.refreshRect()
	p := t.boundary.pointer
	return t.rect.ContainsStrict(p.X, p.Y)
}

// advance moves the ripple forward to frameID and reports whether it has
// finished.
func (t *Target) advance(frameID int64) bool {
	p := &t.ptr
	if !p.hasDownStart {
		p.downStart = frameID
		p.hasDownStart = true
	}
	s := &t.cache.style
	p.current = float64(frameID - p.downStart)
	p.progress = RippleProgress(p.current, s.PressAnimationSpeed, s.ReleaseAnimationAccelerateRate, p.released, p.releasedAt)
	p.hasProgress = true
	return p.progress > 1
}

// press starts a new ripple, dropping whatever the previous one left.
func (t *Target) press() {
	t.ptr = pointerState{pressed: true}
}

func (t *Target) release(x, y float64) {
	p := &t.ptr
	if p.released {
		return
	}
	p.released = true
	p.releasedAt = p.current
	p.releaseX, p.releaseY = x, y
	p.hasRelease = true
}

func (t *Target) resetAnimation() {
	t.ptr = pointerState{}
}

// Paint draws the reveal for the current boundary pointer. It returns false
// without touching the surface when the pointer has not moved since the last
// pass, no ripple is running and force is false.
func (t *Target) Paint(force bool) (bool, error) {
	b := t.boundary
	animating := b.isAnimating(t)
	if b.pointer == b.painted && !animating && !force {
		return false, nil
	}
	if !t.ready() {
		return false, nil
	}

	t.Clear()

	if !b.inBoundary && !animating {
		return true, nil
	}

	if err := t.resolveStyle(); err != nil {
		return true, err
	}
	if !t.cache.valid {
		return true, nil
	}

	rel := Vec2{b.pointer.X - t.rect.X, b.pointer.Y - t.rect.Y}
	if math.IsNaN(rel.X) || math.IsNaN(rel.Y) {
		return true, nil
	}

	k := b.cfg.PixelRatio()
	w, h := t.rect.Width, t.rect.Height
	t.resize(int(math.Ceil(w*k)), int(math.Ceil(h*k)))
	t.paintedW, t.paintedH = w, h

	s := &t.cache.style
	r := s.maxRadius()
	exceeds := rel.X+r < 0 || rel.X-r > w || rel.Y+r < 0 || rel.Y-r > h
	if exceeds && !animating {
		return true, nil
	}

	inside := t.rect.ContainsStrict(b.pointer.X, b.pointer.Y)
	hover := b.inBoundary && s.HoverLight && inside
	glow := b.inBoundary && s.BorderWidth != 0 && (s.Diffuse || inside)

	t.ensureShapes(w*k, h*k, k)
	switch t.kind {
	case TargetVector:
		t.paintVector(rel, hover, glow)
	default:
		t.paintCanvas(rel, hover, glow)
	}
	return true, nil
}

// Clear removes whatever the last Paint drew.
func (t *Target) Clear() {
	switch t.kind {
	case TargetVector:
		for l := VectorLayer(0); l < layerCount; l++ {
			if t.shown[l] {
				t.vec.SetGradient(l, nil)
				t.shown[l] = false
			}
		}
	default:
		if t.paintedW > 0 && t.paintedH > 0 {
			k := t.boundary.cfg.PixelRatio()
			t.raster.ClearRect(Rect{Width: math.Ceil(t.paintedW * k), Height: math.Ceil(t.paintedH * k)})
		}
	}
	t.paintedW, t.paintedH = 0, 0
}

func (t *Target) resize(w, h int) {
	if t.kind == TargetVector {
		t.vec.Resize(w, h)
		return
	}
	t.raster.Resize(w, h)
}

// ensureShapes rebuilds the border ring and the solid outline when the
// shape inputs or the device size changed. It reports whether it did.
func (t *Target) ensureShapes(w, h, k float64) bool {
	if t.shapeValid && !t.cache.shapeDirty && w == t.shapeW && h == t.shapeH {
		return false
	}
	s := &t.cache.style
	o := Outline{
		Width:     w,
		Height:    h,
		Thickness: s.BorderWidth * k,
		Radii: Corners{
			TopLeft:     s.Radii.TopLeft * k,
			TopRight:    s.Radii.TopRight * k,
			BottomRight: s.Radii.BottomRight * k,
			BottomLeft:  s.Radii.BottomLeft * k,
		},
		Edges:      s.Edges,
		Decoration: s.Decoration,
		Hollow:     true,
	}
	o.Build(&t.borderPath)
	o.Hollow = false
	o.Build(&t.fillPath)

	t.shapeW, t.shapeH = w, h
	t.shapeValid = true
	t.cache.shapeDirty = false

	if t.kind == TargetVector {
		t.vec.SetPathData(LayerBorder, t.borderPath.SVGData())
		fill := t.fillPath.SVGData()
		t.vec.SetPathData(LayerFill, fill)
		t.vec.SetPathData(LayerRipple, fill)
	}
	return true
}

// rippleGradient returns the press ripple gradient in CSS pixels relative to
// the element, or nil when no ripple is showing.
func (t *Target) rippleGradient(rel Vec2) *RadialGradient {
	p := &t.ptr
	s := &t.cache.style
	if !p.pressed || !p.hasProgress || !s.PressAnimation {
		return nil
	}
	center := rel
	if p.released && p.hasRelease {
		center = Vec2{p.releaseX - t.rect.X, p.releaseY - t.rect.Y}
	}
	radius := s.TrueFillRadius[1]
	if s.PressAnimationFillMode == PressCover {
		radius = math.Max(t.rect.Width, t.rect.Height)
	}
	progress := easeProgress(t.boundary.cfg.RippleEasing(), p.progress)
	g := ProgressToStops(progress, s.Opacity).Gradient(center, radius, s.PressAnimationColor)
	return &g
}
