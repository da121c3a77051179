package reveal

// updateStops rebuilds the glow gradient stops after a fill change. Only the
// gradient center moves between frames otherwise.
func (t *Target) updateStops() {
	if !t.cache.fillDirty && t.borderStops != nil {
		return
	}
	s := &t.cache.style
	t.borderStops = revealGradient(Vec2{}, 0, s.BorderColor, s.Opacity).Stops
	t.fillStops = revealGradient(Vec2{}, 0, s.HoverLightColor, s.Opacity/2).Stops
	t.cache.fillDirty = false
	t.boundary.log.Debug("regenerate gradient stops", "kind", t.kind.String())
}

func (t *Target) paintVector(rel Vec2, hover, glow bool) {
	t.updateStops()
	k := t.boundary.cfg.PixelRatio()
	s := &t.cache.style
	radius := s.TrueFillRadius[1]
	if !(radius > 0) {
		radius = 1
	}

	if glow {
		g := RadialGradient{Center: rel, Radius: radius * glowFactor(s.BorderFillRadius), Stops: t.borderStops}
		t.setLayer(LayerBorder, g.scaled(k))
	}
	if hover {
		g := RadialGradient{Center: rel, Radius: radius, Stops: t.fillStops}
		t.setLayer(LayerFill, g.scaled(k))
	}
	if g := t.rippleGradient(rel); g != nil {
		t.setLayer(LayerRipple, g.scaled(k))
	}
}

func (t *Target) setLayer(l VectorLayer, g RadialGradient) {
	t.vec.SetGradient(l, &g)
	t.shown[l] = true
}
