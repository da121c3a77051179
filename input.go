package reveal

// PointerRouter turns raw pointer samples into boundary events for every
// boundary of a Manager: enter and leave transitions, moves, and press and
// release edges of the primary button.
type PointerRouter struct {
	m      *Manager
	inside map[*Boundary]bool
	down   bool
	last   Vec2
	hasPos bool
}

// NewPointerRouter creates a router for the boundaries of m.
func NewPointerRouter(m *Manager) *PointerRouter {
	return &PointerRouter{m: m, inside: make(map[*Boundary]bool)}
}

// Position returns the last routed pointer position.
func (r *PointerRouter) Position() (Vec2, bool) { return r.last, r.hasPos }

// Down reports whether the primary button is held.
func (r *PointerRouter) Down() bool { return r.down }

// Process routes one pointer sample. It is called once per frame with the
// pointer position and the primary button state.
func (r *PointerRouter) Process(x, y float64, pressed bool) {
	r.last = Vec2{x, y}
	r.hasPos = true

	for _, b := range r.m.Boundaries() {
		r.route(b, x, y)
	}

	switch {
	case pressed && !r.down:
		for _, b := range r.m.Boundaries() {
			if r.inside[b] {
				b.OnPressStart()
			}
		}
	case !pressed && r.down:
		for _, b := range r.m.Boundaries() {
			b.OnPressEnd()
		}
	}
	r.down = pressed
	r.prune()
}

// Leave reports that the pointer left the host window. Held buttons are
// released.
func (r *PointerRouter) Leave() {
	for _, b := range r.m.Boundaries() {
		if r.down {
			b.OnPressEnd()
		}
		if r.inside[b] || b.InBoundary() {
			r.leave(b)
		}
		r.inside[b] = false
	}
	r.down = false
	r.hasPos = false
}

// --- Per-boundary routing ---

func (r *PointerRouter) route(b *Boundary, x, y float64) {
	in := b.Container() != nil && b.Container().BoundingRect().Contains(x, y)
	hit := b.OnPointerMove(x, y)
	if b.cfg.BorderDetection() == BorderAutoFit {
		in = in || hit
	}

	was := r.inside[b]
	switch {
	case in && !was:
		b.OnPointerEnter()
	case !in && (was || b.InBoundary()):
		r.leave(b)
	}
	r.inside[b] = in
}

func (r *PointerRouter) leave(b *Boundary) {
	if err := b.OnPointerLeave(); err != nil {
		b.log.Warn("leave repaint failed", "error", err)
	}
}

// prune forgets boundaries that were destroyed.
func (r *PointerRouter) prune() {
	if len(r.inside) <= len(r.m.Boundaries()) {
		return
	}
	live := make(map[*Boundary]bool, len(r.m.Boundaries()))
	for _, b := range r.m.Boundaries() {
		live[b] = r.inside[b]
	}
	r.inside = live
}
