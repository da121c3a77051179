package reveal

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// ImageSurface is a software RasterSurface backed by an *image.RGBA. Paths
// are rasterized with golang.org/x/image/vector. It needs no GPU and backs
// headless rendering and tests.
type ImageSurface struct {
	img *image.RGBA
	z   vector.Rasterizer
}

// NewImageSurface creates a surface of the given size. A zero size surface
// is not ready until it is resized.
func NewImageSurface(w, h int) *ImageSurface {
	s := &ImageSurface{}
	s.Resize(w, h)
	return s
}

// Image returns the backing image, or nil when the surface has no size.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

func (s *ImageSurface) Ready() bool { return s.img != nil }

// Resize reallocates the backing image, discarding its contents, when the
// size changes.
func (s *ImageSurface) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		s.img = nil
		return
	}
	if s.img != nil && s.img.Rect.Dx() == w && s.img.Rect.Dy() == h {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (s *ImageSurface) ClearRect(r Rect) {
	if s.img == nil {
		return
	}
	rect := pixelRect(r).Intersect(s.img.Rect)
	draw.Draw(s.img, rect, image.Transparent, image.Point{}, draw.Src)
}

func (s *ImageSurface) FillPath(p *Path, paint Paint) {
	if s.img == nil || p.Len() == 0 {
		return
	}
	var src image.Image
	switch {
	case paint.Gradient != nil:
		src = &gradientSource{g: paint.Gradient}
	case paint.Pattern != nil:
		pat, ok := paint.Pattern.(*imagePattern)
		if !ok {
			return
		}
		src = &patternSource{img: pat.img, off: paint.Offset}
	default:
		return
	}

	b := s.img.Rect
	s.z.Reset(b.Dx(), b.Dy())
	s.z.DrawOp = draw.Over
	p.Walk(rasterizerSink{&s.z})
	s.z.Draw(s.img, b, src, image.Point{})
}

func (s *ImageSurface) CreatePattern(w, h int, g RadialGradient) Pattern {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillGradientPixels(img.Pix, img.Stride, w, h, &g)
	return &imagePattern{img: img}
}

// imagePattern is the Pattern type of ImageSurface.
type imagePattern struct {
	img *image.RGBA
}

func (p *imagePattern) Size() (int, int) { return p.img.Rect.Dx(), p.img.Rect.Dy() }

// fillGradientPixels writes g sampled at pixel centers into premultiplied
// RGBA pixels.
func fillGradientPixels(pix []byte, stride, w, h int, g *RadialGradient) {
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			c := g.At(float64(x)+0.5, float64(y)+0.5).toRGBA()
			off := x * 4
			row[off+0] = c.R
			row[off+1] = c.G
			row[off+2] = c.B
			row[off+3] = c.A
		}
	}
}

// pixelRect rounds r outward to whole pixels.
func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}

// rasterizerSink feeds a Path into a vector.Rasterizer.
type rasterizerSink struct{ z *vector.Rasterizer }

func (r rasterizerSink) MoveTo(x, y float64) { r.z.MoveTo(float32(x), float32(y)) }
func (r rasterizerSink) LineTo(x, y float64) { r.z.LineTo(float32(x), float32(y)) }
func (r rasterizerSink) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.z.CubeTo(float32(c1x), float32(c1y), float32(c2x), float32(c2y), float32(x), float32(y))
}
func (r rasterizerSink) Close() { r.z.ClosePath() }

// everywhere is the bounds of the unbounded source images below.
var everywhere = image.Rect(-1<<24, -1<<24, 1<<24, 1<<24)

// patternSource places a pattern image with its top-left corner at off.
// Pixels outside the pattern are transparent.
type patternSource struct {
	img *image.RGBA
	off Vec2
}

func (p *patternSource) ColorModel() color.Model { return color.RGBAModel }
func (p *patternSource) Bounds() image.Rectangle { return everywhere }
func (p *patternSource) At(x, y int) color.Color {
	px := int(math.Floor(float64(x) + 0.5 - p.off.X))
	py := int(math.Floor(float64(y) + 0.5 - p.off.Y))
	if !(image.Point{px, py}.In(p.img.Rect)) {
		return color.RGBA{}
	}
	return p.img.RGBAAt(px, py)
}

// gradientSource samples a radial gradient at pixel centers.
type gradientSource struct {
	g *RadialGradient
}

func (s *gradientSource) ColorModel() color.Model { return color.RGBAModel }
func (s *gradientSource) Bounds() image.Rectangle { return everywhere }
func (s *gradientSource) At(x, y int) color.Color {
	return s.g.At(float64(x)+0.5, float64(y)+0.5).toRGBA()
}
