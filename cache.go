package reveal

import "math"

// revealKey identifies the gradient of a cached glow pattern.
type revealKey struct {
	radius       float64
	radiusFactor float64
	color        RGB
	opacity      float64
}

func (k revealKey) equal(o revealKey) bool {
	return sameFloat(k.radius, o.radius) && sameFloat(k.radiusFactor, o.radiusFactor) &&
		k.color == o.color && sameFloat(k.opacity, o.opacity)
}

// size is the edge length of the pattern in CSS pixels.
func (k revealKey) size() float64 {
	return 2 * k.radius * k.radiusFactor
}

// cachedReveal is one glow pattern and the key it was rendered for. The
// pattern is regenerated only when a key field changes.
type cachedReveal struct {
	key     revealKey
	valid   bool
	pattern Pattern
}

// update makes sure the pattern matches key, calling gen to render a new one
// when it does not. It reports whether gen was called.
func (c *cachedReveal) update(key revealKey, gen func(revealKey) Pattern) bool {
	if c.valid && c.key.equal(key) {
		return false
	}
	c.key = key
	c.valid = true
	c.pattern = nil
	if s := key.size(); s > 0 && !math.IsInf(s, 0) {
		c.pattern = gen(key)
	}
	return true
}

func (c *cachedReveal) reset() {
	c.valid = false
	c.pattern = nil
}

// glowFactor normalizes a fill radius factor; non-positive and NaN factors
// mean 1.
func glowFactor(f float64) float64 {
	if !(f > 0) {
		return 1
	}
	return f
}
