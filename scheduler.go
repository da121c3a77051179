package reveal

// FrameRequester is the host's redraw-on-next-frame primitive. fn runs once,
// on the next frame, with a frame id that increases between frames.
type FrameRequester interface {
	RequestFrame(fn func(frameID int64))
}

// Scheduler runs a tick function on upcoming frames. At most one frame is
// requested at a time; RequestTick is a no-op while one is pending.
type Scheduler struct {
	req     FrameRequester
	tick    func(frameID int64)
	pending bool
	stopped bool
}

// NewScheduler creates a scheduler that calls tick on frames requested from
// req.
func NewScheduler(req FrameRequester, tick func(frameID int64)) *Scheduler {
	return &Scheduler{req: req, tick: tick}
}

// RequestTick asks for tick to run on the next frame.
func (s *Scheduler) RequestTick() {
	if s.pending || s.stopped || s.req == nil {
		return
	}
	s.pending = true
	s.req.RequestFrame(s.fire)
}

// Running reports whether a tick is pending.
func (s *Scheduler) Running() bool { return s.pending }

// Stop cancels the pending tick and ignores further requests.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.pending = false
}

func (s *Scheduler) fire(frameID int64) {
	if !s.pending || s.stopped {
		return
	}
	s.pending = false
	s.tick(frameID)
}

// FrameLoop is a FrameRequester driven by the host: every Advance runs the
// callbacks requested before it, so a callback that requests another frame
// runs on the following Advance.
type FrameLoop struct {
	queue []func(int64)
	spare []func(int64)
	last  int64
}

// NewFrameLoop creates an empty frame loop.
func NewFrameLoop() *FrameLoop { return &FrameLoop{last: -1} }

func (l *FrameLoop) RequestFrame(fn func(frameID int64)) {
	l.queue = append(l.queue, fn)
}

// Advance runs the pending callbacks with frameID. Frame ids that do not
// increase are bumped to one past the previous frame.
func (l *FrameLoop) Advance(frameID int64) int {
	if frameID <= l.last {
		frameID = l.last + 1
	}
	l.last = frameID

	run := l.queue
	l.queue, l.spare = l.spare[:0], run
	for i, fn := range run {
		fn(frameID)
		run[i] = nil
	}
	return len(run)
}

// Pending returns the number of callbacks waiting for the next frame.
func (l *FrameLoop) Pending() int { return len(l.queue) }

// LastFrame returns the id of the last advanced frame, or -1.
func (l *FrameLoop) LastFrame() int64 { return l.last }
