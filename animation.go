package reveal

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// --- Ripple progression ---

// RippleProgress maps the frames elapsed since a press to a logical ripple
// progress. Before release progress grows at 1/speed per frame; after
// release the frames past releasedAt add rate times as much again, so the
// ripple accelerates once the button is let go and never before.
//
// A progress above 1 means the ripple has finished.
func RippleProgress(elapsed, speed, rate float64, released bool, releasedAt float64) float64 {
	if !(speed > 0) {
		return math.Inf(1)
	}
	p := elapsed / speed
	if !released {
		return p
	}
	if math.IsNaN(rate) || rate < 0 {
		rate = 0
	}
	extra := elapsed - releasedAt
	if extra < 0 {
		extra = 0
	}
	return p + extra/speed*rate
}

// RippleStops holds the alpha stops of the ripple gradient at one progress.
type RippleStops struct {
	InnerAlpha float64 // alpha at offset 0
	MidAlpha   float64 // alpha at offset MidOffset*0.55
	MidOffset  float64 // offset where alpha reaches 0
}

// ProgressToStops computes ripple gradient stops. Early in the ripple the
// glow is bright and compact; it fades while expanding outward.
func ProgressToStops(progress, opacity float64) RippleStops {
	return RippleStops{
		InnerAlpha: math.Max(0, opacity*(0.2-progress)),
		MidAlpha:   math.Max(0, opacity*(0.1-0.07*progress)),
		MidOffset:  clamp(0.1+0.8*progress, 0, 1),
	}
}

// Gradient turns the stops into a radial gradient of color c.
func (s RippleStops) Gradient(center Vec2, radius float64, c RGB) RadialGradient {
	return RadialGradient{
		Center: center,
		Radius: radius,
		Stops: []GradientStop{
			{Offset: 0, Color: c.Color(s.InnerAlpha)},
			{Offset: s.MidOffset * 0.55, Color: c.Color(s.MidAlpha)},
			{Offset: s.MidOffset, Color: c.Color(0)},
		},
	}
}

// easeProgress applies fn to progress clamped to [0, 1]. A nil fn is linear.
func easeProgress(fn ease.TweenFunc, progress float64) float64 {
	if fn == nil {
		return progress
	}
	p := clamp01(progress)
	return float64(fn(float32(p), 0, 1, 1))
}

// --- Element tweens ---

// BoxTween animates a Box's bounds. Hosts use it to slide or resize
// decorated elements; the reveal follows because bounding rects are
// re-read every frame. Call Update(dt) each frame.
type BoxTween struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	count  int
	box    *Box
	Done   bool
}

// Update advances the tween by dt seconds and writes the values to the box.
func (g *BoxTween) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenBoxPosition creates a BoxTween that moves box to (toX, toY) over
// duration seconds using the easing function.
func TweenBoxPosition(box *Box, toX, toY float64, duration float32, fn ease.TweenFunc) *BoxTween {
	g := &BoxTween{count: 2, box: box}
	g.tweens[0] = gween.New(float32(box.Bounds.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(box.Bounds.Y), float32(toY), duration, fn)
	g.fields[0] = &box.Bounds.X
	g.fields[1] = &box.Bounds.Y
	return g
}

// TweenBoxSize creates a BoxTween that resizes box to (toW, toH).
func TweenBoxSize(box *Box, toW, toH float64, duration float32, fn ease.TweenFunc) *BoxTween {
	g := &BoxTween{count: 2, box: box}
	g.tweens[0] = gween.New(float32(box.Bounds.Width), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(box.Bounds.Height), float32(toH), duration, fn)
	g.fields[0] = &box.Bounds.Width
	g.fields[1] = &box.Bounds.Height
	return g
}
