package reveal

// syntheticKind identifies an injected pointer event.
type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticPress
	syntheticRelease
	syntheticLeave
)

// syntheticPointerEvent represents a single injected pointer event in host
// coordinates.
type syntheticPointerEvent struct {
	kind syntheticKind
	x, y float64
}

// Injector queues synthetic pointer events. Hosts consume one event per frame
// in place of real input, so scripted sequences replay deterministically.
type Injector struct {
	queue []syntheticPointerEvent
}

// InjectMove queues a pointer move to (x, y). The button state is unchanged.
func (in *Injector) InjectMove(x, y float64) {
	in.queue = append(in.queue, syntheticPointerEvent{kind: syntheticMove, x: x, y: y})
}

// InjectPress queues a primary button press at (x, y).
func (in *Injector) InjectPress(x, y float64) {
	in.queue = append(in.queue, syntheticPointerEvent{kind: syntheticPress, x: x, y: y})
}

// InjectRelease queues a primary button release at (x, y).
func (in *Injector) InjectRelease(x, y float64) {
	in.queue = append(in.queue, syntheticPointerEvent{kind: syntheticRelease, x: x, y: y})
}

// InjectLeave queues the pointer leaving the host window.
func (in *Injector) InjectLeave() {
	in.queue = append(in.queue, syntheticPointerEvent{kind: syntheticLeave})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (in *Injector) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectPath queues moves along the line from (fromX, fromY) to (toX, toY),
// one per frame, ending on the destination.
func (in *Injector) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Pending returns the number of queued events.
func (in *Injector) Pending() int { return len(in.queue) }

// processInjected pops one event and routes it. It returns true if an event
// was consumed, in which case real input should be skipped for the frame.
func (in *Injector) processInjected(r *PointerRouter) bool {
	if len(in.queue) == 0 {
		return false
	}
	evt := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]

	switch evt.kind {
	case syntheticMove:
		r.Process(evt.x, evt.y, r.Down())
	case syntheticPress:
		r.Process(evt.x, evt.y, true)
	case syntheticRelease:
		r.Process(evt.x, evt.y, false)
	case syntheticLeave:
		r.Leave()
	}
	return true
}
