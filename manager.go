package reveal

// Manager owns the boundaries of one host. They share its configuration,
// frame requester and profiler.
type Manager struct {
	cfg        *Config
	req        FrameRequester
	profiler   *Profiler
	nextID     int
	boundaries []*Boundary
}

// NewManager creates a manager that schedules ticks on req. A nil cfg means
// DefaultConfig.
func NewManager(cfg *Config, req FrameRequester) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	m := &Manager{cfg: cfg, req: req}
	if cfg.Profile() {
		m.profiler = NewProfiler(4096)
	}
	return m
}

// Config returns the shared configuration.
func (m *Manager) Config() *Config { return m.cfg }

// Profiler returns the shared profiler, or nil when profiling is off.
func (m *Manager) Profiler() *Profiler { return m.profiler }

// NewBoundary creates a boundary over container with the next free id.
func (m *Manager) NewBoundary(container Element) *Boundary {
	b := newBoundary(m.nextID, container, m.req, m.cfg, m.profiler)
	b.manager = m
	m.nextID++
	m.boundaries = append(m.boundaries, b)
	b.log.Info("boundary created")
	return b
}

// Boundaries returns the live boundaries in creation order.
func (m *Manager) Boundaries() []*Boundary { return m.boundaries }

// Boundary returns the live boundary with the given id.
func (m *Manager) Boundary(id int) (*Boundary, bool) {
	for _, b := range m.boundaries {
		if b.id == id {
			return b, true
		}
	}
	return nil, false
}

func (m *Manager) remove(b *Boundary) {
	for i, x := range m.boundaries {
		if x == b {
			m.boundaries = append(m.boundaries[:i], m.boundaries[i+1:]...)
			return
		}
	}
}

// Destroy destroys every boundary.
func (m *Manager) Destroy() {
	for len(m.boundaries) > 0 {
		m.boundaries[len(m.boundaries)-1].Destroy()
	}
}
