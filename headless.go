package reveal

import "fmt"

// DefaultFrameInterval is the virtual frame length in milliseconds used by
// Headless.
const DefaultFrameInterval = 16

// Headless drives boundaries without a window: a virtual clock, a FrameLoop
// and an Injector stand in for the display, the frame callback queue and
// the pointer device.
type Headless struct {
	Injector

	manager  *Manager
	loop     *FrameLoop
	router   *PointerRouter
	now      int64
	interval int64

	// OnSnapshot is called for snapshot steps of a script.
	OnSnapshot func(label string)
}

// NewHeadless creates a headless driver. The builder's clock is replaced by
// the driver's virtual clock.
func NewHeadless(b ConfigBuilder) *Headless {
	h := &Headless{loop: NewFrameLoop(), interval: DefaultFrameInterval}
	cfg := b.WithClock(h.Now).Build()
	h.manager = NewManager(cfg, h.loop)
	h.router = NewPointerRouter(h.manager)
	return h
}

// Manager returns the boundary manager.
func (h *Headless) Manager() *Manager { return h.manager }

// Router returns the pointer router.
func (h *Headless) Router() *PointerRouter { return h.router }

// Loop returns the frame loop.
func (h *Headless) Loop() *FrameLoop { return h.loop }

// Now returns the virtual time in milliseconds.
func (h *Headless) Now() int64 { return h.now }

// SetInterval sets the virtual frame length in milliseconds.
func (h *Headless) SetInterval(ms int64) {
	if ms > 0 {
		h.interval = ms
	}
}

// Frame runs one frame: at most one injected event is routed, the clock
// advances, and the frame callbacks requested so far are run. It returns the
// number of callbacks run.
func (h *Headless) Frame() int {
	h.processInjected(h.router)
	h.now += h.interval
	return h.loop.Advance(h.now)
}

// Frames runs n frames.
func (h *Headless) Frames(n int) {
	for i := 0; i < n; i++ {
		h.Frame()
	}
}

// Settle runs frames until no injected events or frame callbacks are left,
// up to limit frames. It reports whether the driver became idle.
func (h *Headless) Settle(limit int) bool {
	for i := 0; i < limit; i++ {
		if h.Pending() == 0 && h.loop.Pending() == 0 {
			return true
		}
		h.Frame()
	}
	return h.Pending() == 0 && h.loop.Pending() == 0
}

// Snapshot implements ScriptDriver.
func (h *Headless) Snapshot(label string) {
	if h.OnSnapshot != nil {
		h.OnSnapshot(label)
	}
}

// Run steps r until it is done, running one frame per step.
func (h *Headless) Run(r *TestRunner, maxFrames int) error {
	for i := 0; i < maxFrames; i++ {
		r.Step(h)
		if r.Done() {
			return nil
		}
		h.Frame()
	}
	return fmt.Errorf("script not done after %d frames", maxFrames)
}
