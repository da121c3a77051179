package reveal

// EventSink is the interface for optional event bridges such as an ECS.
// When set on a Config, boundaries forward their pointer and ripple events
// to it.
type EventSink interface {
	EmitEvent(event Event)
}

// Event carries one boundary event.
type Event struct {
	Type     EventType
	Boundary int
	// Target is the index of the target in its boundary, or -1 when the
	// event is not about a single target.
	Target int
	X, Y   float64
	// Progress is the ripple progress for EventRippleEnd.
	Progress float64
}

// emit forwards an event to the configured sink, if any.
func (b *Boundary) emit(typ EventType, target *Target) {
	sink := b.cfg.EventSink()
	if sink == nil {
		return
	}
	e := Event{Type: typ, Boundary: b.id, Target: -1, X: b.pointer.X, Y: b.pointer.Y}
	if target != nil {
		for i, t := range b.targets {
			if t == target {
				e.Target = i
				break
			}
		}
		e.Progress = target.ptr.progress
	}
	sink.EmitEvent(e)
}
