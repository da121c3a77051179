package reveal

import "testing"

func TestInjectClick(t *testing.T) {
	rig := newRouterRig(t, nil)
	var in Injector

	in.InjectMove(50, 50)
	in.InjectClick(50, 50)
	if in.Pending() != 3 {
		t.Fatalf("expected 3 queued events, got %d", in.Pending())
	}

	// Frame 1: move
	in.processInjected(rig.r)
	if !rig.a.InBoundary() {
		t.Error("move did not enter the boundary")
	}

	// Frame 2: press
	in.processInjected(rig.r)
	if in.Pending() != 1 {
		t.Fatalf("expected 1 remaining event after frame 2, got %d", in.Pending())
	}
	q := rig.a.AnimationQueue()
	if len(q) != 1 {
		t.Fatalf("press did not start a ripple")
	}
	if q[0].ptr.released {
		t.Error("ripple released on the press frame")
	}

	// Frame 3: release
	in.processInjected(rig.r)
	if in.Pending() != 0 {
		t.Fatalf("expected 0 remaining events, got %d", in.Pending())
	}
	if !q[0].ptr.released {
		t.Error("ripple not released on the release frame")
	}

	if in.processInjected(rig.r) {
		t.Error("processInjected consumed an event from an empty queue")
	}
}

func TestInjectMoveKeepsButton(t *testing.T) {
	rig := newRouterRig(t, nil)
	var in Injector
	in.InjectPress(50, 50)
	in.InjectMove(60, 60)
	in.processInjected(rig.r)
	in.processInjected(rig.r)
	if !rig.r.Down() {
		t.Error("move released the button")
	}
}

func TestInjectPath(t *testing.T) {
	var in Injector
	in.InjectPath(0, 0, 100, 50, 4)
	if in.Pending() != 4 {
		t.Fatalf("expected 4 moves, got %d", in.Pending())
	}
	last := in.queue[3]
	if last.kind != syntheticMove || last.x != 100 || last.y != 50 {
		t.Errorf("last = %+v, want move to (100,50)", last)
	}
	first := in.queue[0]
	if first.x != 25 || first.y != 12.5 {
		t.Errorf("first = %+v, want (25,12.5)", first)
	}

	var one Injector
	one.InjectPath(0, 0, 10, 10, 0)
	if one.Pending() != 1 {
		t.Errorf("zero frames queued %d moves, want 1", one.Pending())
	}
}

func TestInjectLeave(t *testing.T) {
	rig := newRouterRig(t, nil)
	var in Injector
	in.InjectMove(50, 50)
	in.InjectLeave()
	in.processInjected(rig.r)
	in.processInjected(rig.r)
	if rig.a.InBoundary() {
		t.Error("leave event did not leave the boundary")
	}
}
