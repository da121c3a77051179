package reveal

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"
)

// Tick phases recorded by the Profiler.
const (
	PhaseAnimate = "animate"
	PhasePaint   = "paint"
	PhaseCleanup = "cleanup"
)

// tickStats holds per-tick timing and paint counters.
type tickStats struct {
	frameID     int64
	animateTime time.Duration
	paintTime   time.Duration
	cleanupTime time.Duration
	painted     int
	finished    int
}

// ProfileMark is one timed phase of one tick.
type ProfileMark struct {
	Boundary int
	FrameID  int64
	Phase    string
	Duration time.Duration
}

// Profiler collects tick phase timings. Boundaries record into it when the
// configuration enables profiling. It is not safe for concurrent use.
type Profiler struct {
	marks []ProfileMark
	limit int
}

// NewProfiler creates a profiler keeping at most limit marks; older marks are
// dropped first. A limit of 0 keeps everything.
func NewProfiler(limit int) *Profiler {
	return &Profiler{limit: limit}
}

// Mark records a phase duration.
func (p *Profiler) Mark(boundary int, frameID int64, phase string, d time.Duration) {
	if p == nil {
		return
	}
	if p.limit > 0 && len(p.marks) >= p.limit {
		copy(p.marks, p.marks[1:])
		p.marks = p.marks[:len(p.marks)-1]
	}
	p.marks = append(p.marks, ProfileMark{Boundary: boundary, FrameID: frameID, Phase: phase, Duration: d})
}

// Marks returns the recorded marks, oldest first.
func (p *Profiler) Marks() []ProfileMark { return p.marks }

// Reset drops all marks.
func (p *Profiler) Reset() { p.marks = p.marks[:0] }

// WriteCSV dumps the marks as boundary,frame,phase,microseconds rows.
func (p *Profiler) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"boundary", "frame", "phase", "us"}); err != nil {
		return err
	}
	for _, m := range p.marks {
		rec := []string{
			strconv.Itoa(m.Boundary),
			strconv.FormatInt(m.FrameID, 10),
			m.Phase,
			strconv.FormatInt(m.Duration.Microseconds(), 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// record stores the stats of one tick and logs them at debug level.
func (b *Boundary) record(stats tickStats) {
	if b.profiler != nil {
		b.profiler.Mark(b.id, stats.frameID, PhaseAnimate, stats.animateTime)
		b.profiler.Mark(b.id, stats.frameID, PhasePaint, stats.paintTime)
		b.profiler.Mark(b.id, stats.frameID, PhaseCleanup, stats.cleanupTime)
	}
	if !b.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	b.log.Debug("tick",
		"frame", stats.frameID,
		"animate", stats.animateTime,
		"paint", stats.paintTime,
		"cleanup", stats.cleanupTime,
		"painted", stats.painted,
		"finished", stats.finished)
}
