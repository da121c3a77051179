package reveal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Boundary groups the targets lit by one pointer. All methods must be called
// from the same goroutine as the frame loop.
type Boundary struct {
	id        int
	cfg       *Config
	log       *slog.Logger
	container Element
	manager   *Manager
	profiler  *Profiler

	pointer    Vec2
	painted    Vec2
	inBoundary bool

	targets []*Target
	queue   []*Target

	maxRadius float64
	sched     *Scheduler
	frameID   int64
	destroyed bool
}

// NewBoundary creates a standalone boundary over container that schedules
// its ticks on req. A nil cfg means DefaultConfig. Boundaries created this
// way have id 0; use Manager.NewBoundary to get unique ids.
func NewBoundary(container Element, req FrameRequester, cfg *Config) *Boundary {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return newBoundary(0, container, req, cfg, nil)
}

func newBoundary(id int, container Element, req FrameRequester, cfg *Config, profiler *Profiler) *Boundary {
	b := &Boundary{
		id:        id,
		cfg:       cfg,
		container: container,
		profiler:  profiler,
		pointer:   Vec2{-1000, -1000},
		painted:   Vec2{-1000, -1000},
		frameID:   -1,
	}
	b.log = cfg.Logger().With("component", "reveal.boundary", "boundary", id)
	b.sched = NewScheduler(req, b.scheduledTick)
	return b
}

// ID returns the boundary id.
func (b *Boundary) ID() int { return b.id }

// Container returns the element used for auto-fit hit testing.
func (b *Boundary) Container() Element { return b.container }

// Targets returns the registered targets in registration order.
func (b *Boundary) Targets() []*Target { return b.targets }

// AnimationQueue returns the targets with a running ripple, in press order.
func (b *Boundary) AnimationQueue() []*Target { return b.queue }

// Pointer returns the last pointer position.
func (b *Boundary) Pointer() Vec2 { return b.pointer }

// InBoundary reports whether the pointer is considered inside.
func (b *Boundary) InBoundary() bool { return b.inBoundary }

// MaxRadius returns the largest glow radius reported by any target.
func (b *Boundary) MaxRadius() float64 { return b.maxRadius }

// Running reports whether a tick is scheduled.
func (b *Boundary) Running() bool { return b.sched.Running() }

// --- Registration ---

// AddTarget registers surface, which must implement RasterSurface or
// VectorSurface, as the reveal of container. Registering the same surface
// twice returns the existing target.
func (b *Boundary) AddTarget(surface any, container Element) (*Target, error) {
	if b.destroyed {
		return nil, ErrBoundaryDestroyed
	}
	if t := b.find(surface); t != nil {
		return t, nil
	}
	t, err := newTarget(b, surface, container)
	if err != nil {
		return nil, err
	}
	t.frameID = b.frameID
	if err := t.resolveStyle(); err != nil {
		b.log.Debug("initial style resolution failed", "error", err)
	}
	b.targets = append(b.targets, t)
	b.log.Info("target added", "kind", t.kind.String(), "targets", len(b.targets))
	return t, nil
}

// RemoveTarget unregisters surface and drops any ripple it had running.
func (b *Boundary) RemoveTarget(surface any) error {
	for i, t := range b.targets {
		if t.handle != surface {
			continue
		}
		b.targets = append(b.targets[:i], b.targets[i+1:]...)
		b.dequeue(t)
		b.log.Info("target removed", "kind", t.kind.String(), "targets", len(b.targets))
		return nil
	}
	return fmt.Errorf("remove target: %w", ErrUnknownTarget)
}

func (b *Boundary) find(surface any) *Target {
	for _, t := range b.targets {
		if t.handle == surface {
			return t
		}
	}
	return nil
}

// --- Pointer input ---

// OnPointerEnter marks the pointer as inside and starts ticking.
func (b *Boundary) OnPointerEnter() {
	if b.destroyed {
		return
	}
	b.inBoundary = true
	b.sched.RequestTick()
	b.emit(EventPointerEnter, nil)
}

// OnPointerMove records the pointer position. In auto-fit mode the position
// is tested against the container grown by MaxRadius on every side; a hit
// marks the pointer as inside and starts ticking. It reports whether the
// pointer is inside the boundary.
func (b *Boundary) OnPointerMove(x, y float64) bool {
	if b.destroyed {
		return false
	}
	b.pointer = Vec2{x, y}
	b.emit(EventPointerMove, nil)
	if b.cfg.BorderDetection() != BorderAutoFit {
		return b.inBoundary
	}
	if b.container == nil || !b.container.BoundingRect().Expand(b.maxRadius).Contains(x, y) {
		return false
	}
	b.inBoundary = true
	b.sched.RequestTick()
	return true
}

// OnPointerLeave marks the pointer as outside and repaints every target
// once so the glows are cleared.
func (b *Boundary) OnPointerLeave() error {
	if b.destroyed {
		return ErrBoundaryDestroyed
	}
	b.inBoundary = false
	b.emit(EventPointerLeave, nil)
	var errs []error
	for _, t := range b.targets {
		if _, err := t.Paint(true); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OnPressStart starts a ripple on the target strictly containing the
// pointer. It returns that target, or nil when there is none.
func (b *Boundary) OnPressStart() *Target {
	if b.destroyed {
		return nil
	}
	var hit *Target
	for _, t := range b.targets {
		if t.mouseInside() {
			hit = t
			break
		}
	}
	if hit == nil {
		return nil
	}
	b.enqueue(hit)
	hit.press()
	b.sched.RequestTick()
	b.emit(EventPressStart, hit)
	return hit
}

// OnPressEnd releases every queued ripple that is still held, freezing its
// center at the current pointer.
func (b *Boundary) OnPressEnd() {
	for _, t := range b.queue {
		t.release(b.pointer.X, b.pointer.Y)
	}
	b.emit(EventPressEnd, nil)
}

// --- Animation queue ---

func (b *Boundary) isAnimating(t *Target) bool {
	for _, q := range b.queue {
		if q == t {
			return true
		}
	}
	return false
}

func (b *Boundary) enqueue(t *Target) {
	if !b.isAnimating(t) {
		b.queue = append(b.queue, t)
	}
}

func (b *Boundary) dequeue(t *Target) {
	for i, q := range b.queue {
		if q == t {
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
			return
		}
	}
}

func (b *Boundary) updateMaxRadius(r float64) {
	if r > b.maxRadius {
		b.maxRadius = r
	}
}

// --- Frame ---

func (b *Boundary) scheduledTick(frameID int64) {
	if err := b.Tick(frameID); err != nil {
		b.log.Warn("tick failed", "frame", frameID, "error", err)
	}
}

// Tick runs one frame: it advances running ripples, paints every target in
// registration order, retires finished ripples and schedules the next frame
// while the pointer is inside or a ripple is running. Failures of single
// targets do not stop the pass; they are returned joined.
func (b *Boundary) Tick(frameID int64) error {
	if b.destroyed {
		return ErrBoundaryDestroyed
	}
	b.frameID = frameID
	if !b.inBoundary && len(b.queue) == 0 {
		return nil
	}

	stats := tickStats{frameID: frameID}
	var errs []error

	start := time.Now()
	var finished []*Target
	for _, t := range b.queue {
		if t.frameID == frameID && t.ptr.hasProgress {
			continue
		}
		t.frameID = frameID
		if err := t.resolveStyle(); err != nil {
			errs = append(errs, err)
		}
		if t.advance(frameID) {
			finished = append(finished, t)
		}
	}
	mid := time.Now()
	stats.animateTime = mid.Sub(start)

	for _, t := range b.targets {
		t.frameID = frameID
		ok, err := t.Paint(false)
		if err != nil {
			errs = append(errs, err)
		}
		if ok {
			stats.painted++
		}
	}
	b.painted = b.pointer
	end := time.Now()
	stats.paintTime = end.Sub(mid)

	for _, t := range finished {
		b.cleanUp(t)
	}
	stats.finished = len(finished)
	stats.cleanupTime = time.Since(end)

	if b.inBoundary || len(b.queue) > 0 {
		b.sched.RequestTick()
	}
	b.record(stats)
	return errors.Join(errs...)
}

// cleanUp resets a finished ripple, drops it from the queue and repaints
// the target without it.
func (b *Boundary) cleanUp(t *Target) {
	b.emit(EventRippleEnd, t)
	t.resetAnimation()
	b.dequeue(t)
	if _, err := t.Paint(true); err != nil {
		b.log.Warn("repaint after ripple failed", "error", err)
	}
}

// Destroy stops the scheduler, clears every target and detaches the
// boundary from its manager.
func (b *Boundary) Destroy() {
	if b.destroyed {
		return
	}
	b.sched.Stop()
	for _, t := range b.targets {
		if t.ready() {
			t.Clear()
		}
	}
	b.targets = nil
	b.queue = nil
	b.destroyed = true
	if b.manager != nil {
		b.manager.remove(b)
	}
	b.log.Info("boundary destroyed")
}
