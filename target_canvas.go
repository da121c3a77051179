package reveal

import "math"

// updateCachedBitmap renders the border and hover light glow patterns when
// their radius, color or opacity changed.
func (t *Target) updateCachedBitmap() {
	s := &t.cache.style
	radius := s.TrueFillRadius[1]
	if !(radius > 0) {
		radius = 1
	}
	t.border.update(revealKey{
		radius:       radius,
		radiusFactor: glowFactor(s.BorderFillRadius),
		color:        s.BorderColor,
		opacity:      s.Opacity,
	}, func(k revealKey) Pattern { return t.glowPattern(k, k.opacity) })
	t.fill.update(revealKey{
		radius:       radius,
		radiusFactor: 1,
		color:        s.HoverLightColor,
		opacity:      s.Opacity,
	}, func(k revealKey) Pattern { return t.glowPattern(k, k.opacity/2) })
	t.cache.fillDirty = false
}

// glowPattern renders a centered radial glow of key into a new offscreen.
func (t *Target) glowPattern(key revealKey, alpha float64) Pattern {
	n := int(math.Ceil(key.size() * t.boundary.cfg.PixelRatio()))
	if n <= 0 {
		return nil
	}
	half := float64(n) / 2
	t.boundary.log.Debug("regenerate glow pattern",
		"size", n, "radius", key.radius, "factor", key.radiusFactor)
	return t.raster.CreatePattern(n, n, revealGradient(Vec2{half, half}, half, key.color, alpha))
}

func (t *Target) paintCanvas(rel Vec2, hover, glow bool) {
	t.updateCachedBitmap()
	k := t.boundary.cfg.PixelRatio()

	place := func(c *cachedReveal) Vec2 {
		r := c.key.radius * c.key.radiusFactor
		return Vec2{(rel.X - r) * k, (rel.Y - r) * k}
	}

	if glow && t.border.pattern != nil {
		t.raster.FillPath(&t.borderPath, Paint{Pattern: t.border.pattern, Offset: place(&t.border)})
	}
	if hover && t.fill.pattern != nil {
		t.raster.FillPath(&t.fillPath, Paint{Pattern: t.fill.pattern, Offset: place(&t.fill)})
	}
	if g := t.rippleGradient(rel); g != nil {
		dg := g.scaled(k)
		t.raster.FillPath(&t.fillPath, Paint{Gradient: &dg})
	}
}
