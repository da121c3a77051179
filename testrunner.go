package reveal

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a pointer script.
type scriptStep struct {
	Action string  `json:"action" yaml:"action"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// script is the top-level structure of a pointer script.
type script struct {
	Steps []scriptStep `json:"steps" yaml:"steps"`
}

// ScriptDriver is what a TestRunner drives: an input injector plus a way to
// capture the current frame.
type ScriptDriver interface {
	InjectMove(x, y float64)
	InjectPress(x, y float64)
	InjectRelease(x, y float64)
	InjectLeave()
	InjectPath(fromX, fromY, toX, toY float64, frames int)
	Pending() int
	Snapshot(label string)
}

// TestRunner sequences injected pointer events and snapshots across frames.
// Actions: move, press, release, click, leave, path (moves from fromX,fromY
// to toX,toY over frames), drag (a path with the button held), wait (frames)
// and snapshot (label).
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON pointer script.
func LoadScript(data []byte) (*TestRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return newTestRunner(s)
}

// LoadScriptYAML parses a YAML pointer script.
func LoadScriptYAML(data []byte) (*TestRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return newTestRunner(s)
}

func newTestRunner(s script) (*TestRunner, error) {
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "move", "press", "release", "click", "leave", "path", "drag", "wait", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: s.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *TestRunner) Step(d ScriptDriver) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if d.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		d.InjectMove(st.X, st.Y)
	case "press":
		d.InjectPress(st.X, st.Y)
	case "release":
		d.InjectRelease(st.X, st.Y)
	case "click":
		d.InjectPress(st.X, st.Y)
		d.InjectRelease(st.X, st.Y)
	case "leave":
		d.InjectLeave()
	case "path":
		d.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "drag":
		d.InjectPress(st.FromX, st.FromY)
		d.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		d.InjectRelease(st.ToX, st.ToY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		d.Snapshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && d.Pending() == 0 {
		r.done = true
	}
}
