package reveal

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// hostItem is a decorated box drawn by a Host.
type hostItem struct {
	box     *Box
	surface *EbitenSurface
}

// Host is an ebiten.Game that lays out boxes, routes the mouse into the
// boundaries of its Manager and draws each target surface over its box.
type Host struct {
	Injector

	manager *Manager
	loop    *FrameLoop
	router  *PointerRouter
	width   int
	height  int
	showFPS bool

	boxes []*Box
	items []hostItem

	runner *TestRunner
	shots  []string

	// ShotDir is where snapshot steps write PNG files.
	ShotDir string
	// OnUpdate is called at the end of every Update.
	OnUpdate func()
}

// NewHost creates a host with a logical screen of w by h pixels.
func NewHost(cfg *Config, w, h int) *Host {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	loop := NewFrameLoop()
	m := NewManager(cfg, loop)
	return &Host{
		manager: m,
		loop:    loop,
		router:  NewPointerRouter(m),
		width:   w,
		height:  h,
		ShotDir: "screenshots",
	}
}

// Manager returns the boundary manager.
func (h *Host) Manager() *Manager { return h.manager }

// AddBoundary creates a boundary over container and draws its background.
func (h *Host) AddBoundary(container *Box) *Boundary {
	h.boxes = append(h.boxes, container)
	return h.manager.NewBoundary(container)
}

// AddTarget decorates box with a new EbitenSurface registered on b.
func (h *Host) AddTarget(b *Boundary, box *Box) (*EbitenSurface, error) {
	s := NewEbitenSurface()
	if _, err := b.AddTarget(s, box); err != nil {
		return nil, err
	}
	h.boxes = append(h.boxes, box)
	h.items = append(h.items, hostItem{box: box, surface: s})
	return s, nil
}

// SetScript replaces real mouse input with a pointer script.
func (h *Host) SetScript(r *TestRunner) { h.runner = r }

// ScriptDone reports whether a script was set and has finished.
func (h *Host) ScriptDone() bool { return h.runner != nil && h.runner.Done() }

// Snapshot implements ScriptDriver. The screen is captured at the end of the
// next Draw.
func (h *Host) Snapshot(label string) { h.shots = append(h.shots, label) }

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.runner != nil {
		h.runner.Step(h)
	}
	if !h.processInjected(h.router) && h.runner == nil {
		h.pollMouse()
	}
	h.loop.Advance(h.manager.Config().Now())
	if h.OnUpdate != nil {
		h.OnUpdate()
	}
	return nil
}

func (h *Host) pollMouse() {
	x, y := ebiten.CursorPosition()
	if x < 0 || y < 0 || x >= h.width || y >= h.height {
		if _, ok := h.router.Position(); ok {
			h.router.Leave()
		}
		return
	}
	h.router.Process(float64(x), float64(y), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	for _, box := range h.boxes {
		if box.Background.A <= 0 {
			continue
		}
		r := pixelRect(box.Bounds).Intersect(screen.Bounds())
		if r.Empty() {
			continue
		}
		screen.SubImage(r).(*ebiten.Image).Fill(box.Background.toRGBA())
	}

	ratio := h.manager.Config().PixelRatio()
	for _, it := range h.items {
		rect := it.box.BoundingRect().floor()
		it.surface.DrawTo(screen, rect.X, rect.Y, ratio)
	}

	if h.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}

	for _, label := range h.shots {
		h.capture(screen, label)
	}
	h.shots = h.shots[:0]
}

func (h *Host) capture(screen *ebiten.Image, label string) {
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	path := SnapshotPath(h.ShotDir, label, "png")
	log := h.manager.Config().Logger()
	if err := writePNG(path, unpremultiply(pixels, b.Dx(), b.Dy())); err != nil {
		log.Warn("snapshot failed", "label", label, "error", err)
		return
	}
	log.Info("snapshot written", "label", label, "path", path)
}

// Layout implements ebiten.Game.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.width, h.height
}

// Run opens a window and runs h until the window is closed or the script
// finishes.
func Run(h *Host, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = h.width
	}
	if cfg.Height <= 0 {
		cfg.Height = h.height
	}
	h.showFPS = cfg.ShowFPS
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	err := ebiten.RunGame(&runGame{Host: h})
	if errors.Is(err, errScriptDone) {
		return nil
	}
	return err
}

// errScriptDone ends the game loop once a script has finished and its last
// snapshot has been drawn.
var errScriptDone = errors.New("reveal: script done")

type runGame struct {
	*Host
}

func (g *runGame) Update() error {
	if g.ScriptDone() && len(g.shots) == 0 {
		return errScriptDone
	}
	return g.Host.Update()
}
