package reveal

import "testing"

func TestHeadlessVirtualClock(t *testing.T) {
	h := NewHeadless(NewConfigBuilder())
	if h.Manager().Config().Now() != 0 {
		t.Errorf("Now = %d, want 0", h.Manager().Config().Now())
	}
	h.Frames(3)
	if got := h.Manager().Config().Now(); got != 3*DefaultFrameInterval {
		t.Errorf("Now = %d, want %d", got, 3*DefaultFrameInterval)
	}
	h.SetInterval(100)
	h.Frame()
	if got := h.Loop().LastFrame(); got != 3*DefaultFrameInterval+100 {
		t.Errorf("LastFrame = %d, want %d", got, 3*DefaultFrameInterval+100)
	}
}

func TestHeadlessRippleScript(t *testing.T) {
	h := NewHeadless(NewConfigBuilder())
	box := NewBox("button", Rect{Width: 80, Height: 40})
	b := h.Manager().NewBoundary(box)
	s := NewImageSurface(80, 40)
	tg, err := b.AddTarget(s, box)
	if err != nil {
		t.Fatal(err)
	}

	var seen []float64
	h.OnSnapshot = func(string) {
		p, _ := tg.Progress()
		seen = append(seen, p)
	}

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "move", "x": 40, "y": 20},
		{"action": "press", "x": 40, "y": 20},
		{"action": "wait", "frames": 10},
		{"action": "snapshot", "label": "held"},
		{"action": "release", "x": 40, "y": 20},
		{"action": "snapshot", "label": "released"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Run(runner, 100); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || !(seen[0] > 0) {
		t.Fatalf("progress at snapshots = %v", seen)
	}

	// The pointer is still inside, so the boundary keeps ticking.
	h.Frames(500)
	if len(b.AnimationQueue()) != 0 {
		t.Error("ripple never finished")
	}
	if tg.Pressed() {
		t.Error("target still pressed after settling")
	}
}

func TestHeadlessSettleIdle(t *testing.T) {
	h := NewHeadless(NewConfigBuilder())
	box := NewBox("panel", Rect{Width: 40, Height: 40})
	b := h.Manager().NewBoundary(box)
	if _, err := b.AddTarget(NewImageSurface(40, 40), box); err != nil {
		t.Fatal(err)
	}
	h.InjectMove(20, 20)
	h.InjectLeave()
	if !h.Settle(10) {
		t.Error("driver did not become idle after the pointer left")
	}
	if b.Running() {
		t.Error("boundary still running")
	}
}

func TestHeadlessRunTimeout(t *testing.T) {
	h := NewHeadless(NewConfigBuilder())
	runner, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Run(runner, 5); err == nil {
		t.Error("expected error when the script outlasts maxFrames")
	}
}
