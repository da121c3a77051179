package reveal

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---

// rippleShaderSrc fills with a radial gradient of up to three stops. Colors
// are passed straight and premultiplied in the shader.
const rippleShaderSrc = `//kage:unit pixels

package main

var Center vec2
var Radius float
var Offsets vec3
var Color0 vec4
var Color1 vec4
var Color2 vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	t := distance(dst.xy-imageDstOrigin(), Center) / max(Radius, 0.0001)
	c := Color2
	if t <= Offsets.x {
		c = Color0
	} else if t <= Offsets.y {
		c = mix(Color0, Color1, (t-Offsets.x)/max(Offsets.y-Offsets.x, 0.0001))
	} else if t <= Offsets.z {
		c = mix(Color1, Color2, (t-Offsets.y)/max(Offsets.z-Offsets.y, 0.0001))
	}
	return vec4(c.rgb*c.a, c.a)
}
`

var rippleShader *ebiten.Shader

func ensureRippleShader() *ebiten.Shader {
	if rippleShader == nil {
		s, err := ebiten.NewShader([]byte(rippleShaderSrc))
		if err != nil {
			panic(fmt.Sprintf("reveal: compile ripple shader: %v", err))
		}
		rippleShader = s
	}
	return rippleShader
}

// gradientUniforms converts g into the uniforms of the ripple shader. Stops
// beyond the third are ignored; missing stops repeat the last one.
func gradientUniforms(g *RadialGradient) map[string]any {
	var offs [3]float32
	var cols [3][]float32
	last := GradientStop{Offset: 1}
	for i := 0; i < 3; i++ {
		if i < len(g.Stops) {
			last = g.Stops[i]
		}
		offs[i] = float32(last.Offset)
		c := last.Color
		cols[i] = []float32{float32(clamp01(c.R)), float32(clamp01(c.G)), float32(clamp01(c.B)), float32(clamp01(c.A))}
	}
	return map[string]any{
		"Center":  []float32{float32(g.Center.X), float32(g.Center.Y)},
		"Radius":  float32(g.Radius),
		"Offsets": []float32{offs[0], offs[1], offs[2]},
		"Color0":  cols[0],
		"Color1":  cols[1],
		"Color2":  cols[2],
	}
}

// EbitenSurface is a RasterSurface backed by an *ebiten.Image. Paths are
// flattened and fan-triangulated; the nonzero fill rule of DrawTriangles
// resolves holes and overlaps.
type EbitenSurface struct {
	img   *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenSurface creates a surface. Its image is allocated on the first
// Resize.
func NewEbitenSurface() *EbitenSurface { return &EbitenSurface{} }

// Image returns the backing image, or nil before the first Resize.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

func (s *EbitenSurface) Ready() bool { return s.img != nil }

func (s *EbitenSurface) Resize(w, h int) {
	if s.img != nil {
		b := s.img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		s.img.Deallocate()
		s.img = nil
	}
	if w > 0 && h > 0 {
		s.img = ebiten.NewImage(w, h)
	}
}

func (s *EbitenSurface) ClearRect(r Rect) {
	if s.img == nil {
		return
	}
	rect := pixelRect(r).Intersect(s.img.Bounds())
	if rect.Empty() {
		return
	}
	if rect == s.img.Bounds() {
		s.img.Clear()
		return
	}
	s.img.SubImage(rect).(*ebiten.Image).Clear()
}

func (s *EbitenSurface) FillPath(p *Path, paint Paint) {
	if s.img == nil {
		return
	}
	s.triangulate(p)
	if len(s.inds) == 0 {
		return
	}

	switch {
	case paint.Gradient != nil:
		var op ebiten.DrawTrianglesShaderOptions
		op.FillRule = ebiten.FillRuleNonZero
		op.AntiAlias = true
		op.Uniforms = gradientUniforms(paint.Gradient)
		s.img.DrawTrianglesShader(s.verts, s.inds, ensureRippleShader(), &op)
	case paint.Pattern != nil:
		pat, ok := paint.Pattern.(*ebitenPattern)
		if !ok {
			return
		}
		for i := range s.verts {
			v := &s.verts[i]
			v.SrcX = v.DstX - float32(paint.Offset.X)
			v.SrcY = v.DstY - float32(paint.Offset.Y)
		}
		var op ebiten.DrawTrianglesOptions
		op.FillRule = ebiten.FillRuleNonZero
		op.AntiAlias = true
		op.Address = ebiten.AddressClampToZero
		s.img.DrawTriangles(s.verts, s.inds, pat.img, &op)
	}
}

// triangulate flattens p and builds one triangle fan per subpath.
func (s *EbitenSurface) triangulate(p *Path) {
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	for _, poly := range p.Flatten(8) {
		n := len(poly)
		if n < 3 || len(s.verts)+n > 1<<16 {
			continue
		}
		base := uint16(len(s.verts))
		for _, pt := range poly {
			s.verts = append(s.verts, ebiten.Vertex{
				DstX:   float32(pt.X),
				DstY:   float32(pt.Y),
				SrcX:   float32(pt.X),
				SrcY:   float32(pt.Y),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			})
		}
		// Fan triangulation: the first vertex is the hub.
		for i := 0; i < n-2; i++ {
			s.inds = append(s.inds, base, base+uint16(i+1), base+uint16(i+2))
		}
	}
}

// CreatePattern renders g on the CPU and uploads it with WritePixels.
func (s *EbitenSurface) CreatePattern(w, h int, g RadialGradient) Pattern {
	img := ebiten.NewImage(w, h)
	pix := make([]byte, w*h*4)
	fillGradientPixels(pix, w*4, w, h, &g)
	img.WritePixels(pix)
	return &ebitenPattern{img: img}
}

type ebitenPattern struct {
	img *ebiten.Image
}

func (p *ebitenPattern) Size() (int, int) {
	b := p.img.Bounds()
	return b.Dx(), b.Dy()
}

// WritePNG captures the surface. It must be called while the game loop is
// running, after the surface has been drawn.
func (s *EbitenSurface) WritePNG(path string) error {
	if s.img == nil {
		return fmt.Errorf("write %s: surface has no image", path)
	}
	b := s.img.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	s.img.ReadPixels(pixels)
	return writePNG(path, unpremultiply(pixels, b.Dx(), b.Dy()))
}

// DrawTo draws the surface onto dst with its top-left corner at (x, y),
// scaled down by the device pixel ratio.
func (s *EbitenSurface) DrawTo(dst *ebiten.Image, x, y, pixelRatio float64) {
	if s.img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	if pixelRatio > 0 && pixelRatio != 1 {
		op.GeoM.Scale(1/pixelRatio, 1/pixelRatio)
	}
	op.GeoM.Translate(x, y)
	dst.DrawImage(s.img, &op)
}
