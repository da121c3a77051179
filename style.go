package reveal

import (
	"math"
	"strconv"
	"strings"
)

// Style property names consumed by the resolver.
const (
	PropColor                          = "--reveal-color"
	PropOpacity                        = "--reveal-opacity"
	PropBorderColor                    = "--reveal-border-color"
	PropBorderWidth                    = "--reveal-border-width"
	PropBorderFillRadius               = "--reveal-border-fill-radius"
	PropBorderDecorationType           = "--reveal-border-decoration-type"
	PropBorderDecorationRadius         = "--reveal-border-decoration-radius"
	PropBorderDecorationTopLeftRadius  = "--reveal-border-decoration-top-left-radius"
	PropBorderDecorationTopRightRadius = "--reveal-border-decoration-top-right-radius"
	PropBorderDecorationBottomRight    = "--reveal-border-decoration-bottom-right-radius"
	PropBorderDecorationBottomLeft     = "--reveal-border-decoration-bottom-left-radius"
	PropBorderTopType                  = "--reveal-border-top-type"
	PropBorderRightType                = "--reveal-border-right-type"
	PropBorderBottomType               = "--reveal-border-bottom-type"
	PropBorderLeftType                 = "--reveal-border-left-type"
	PropHoverLight                     = "--reveal-hover-light"
	PropHoverLightColor                = "--reveal-hover-light-color"
	PropHoverLightFillRadius           = "--reveal-hover-light-fill-radius"
	PropHoverLightFillRadiusMode       = "--reveal-hover-light-fill-radius-mode"
	PropDiffuse                        = "--reveal-diffuse"
	PropPressAnimation                 = "--reveal-press-animation"
	PropPressAnimationColor            = "--reveal-press-animation-color"
	PropPressAnimationRadiusMode       = "--reveal-press-animation-radius-mode"
	PropPressAnimationSpeed            = "--reveal-press-animation-speed"
	PropReleaseAnimationAccelerateRate = "--reveal-release-animation-accelerate-rate"
)

// Element attributes queried before the matching style property.
const (
	AttrTopLeftBorderRadius     = "data-top-left-border-radius"
	AttrTopRightBorderRadius    = "data-top-right-border-radius"
	AttrBottomRightBorderRadius = "data-bottom-right-border-radius"
	AttrBottomLeftBorderRadius  = "data-bottom-left-border-radius"
	AttrTopBorder               = "data-top-border"
	AttrRightBorder             = "data-right-border"
	AttrBottomBorder            = "data-bottom-border"
	AttrLeftBorder              = "data-left-border"
)

// FillMode selects how the hover light radius is derived.
type FillMode uint8

const (
	FillRelative FillMode = iota // radius scales with the element size
	FillAbsolute                 // radius is the configured value in pixels
)

func (m FillMode) String() string {
	if m == FillAbsolute {
		return "absolute"
	}
	return "relative"
}

// PressFillMode selects the ripple radius.
type PressFillMode uint8

const (
	PressConstrained PressFillMode = iota // hover light radius
	PressCover                            // larger of width and height
)

func (m PressFillMode) String() string {
	if m == PressCover {
		return "cover"
	}
	return "constrained"
}

// CachedStyle is the resolved style snapshot of one target. It is mutated in
// place on every successful resolution.
type CachedStyle struct {
	Color   RGB
	Opacity float64

	BorderColor      RGB
	BorderWidth      float64
	BorderFillRadius float64
	Decoration       Decoration
	Radii            Corners
	Edges            Edges

	HoverLight           bool
	HoverLightColor      RGB
	HoverLightFillRadius float64
	HoverLightFillMode   FillMode

	Diffuse bool

	PressAnimation                 bool
	PressAnimationFillMode         PressFillMode
	PressAnimationColor            RGB
	PressAnimationSpeed            float64
	ReleaseAnimationAccelerateRate float64

	// TrueFillRadius is (min, max) of the hover light radius in pixels.
	TrueFillRadius [2]float64
}

// styleCache tags a CachedStyle with the frame it was resolved for and
// tracks which derived resources it invalidated.
type styleCache struct {
	style   CachedStyle
	frameID int64
	valid   bool

	shapeDirty bool
	fillDirty  bool
}

func newStyleCache() styleCache {
	return styleCache{
		frameID:    -2,
		shapeDirty: true,
		fillDirty:  true,
	}
}

// resolve refreshes the snapshot for frameID. It returns false without
// touching the snapshot when src is not ready or frameID is already cached.
// Enum violations return a *ValidationError and leave the snapshot stale.
func (c *styleCache) resolve(frameID int64, src StyleSource, el Element, rect Rect) (bool, error) {
	if c.valid && c.frameID == frameID {
		return false, nil
	}
	if src == nil || src.Size() == 0 {
		return false, nil
	}

	decoration, err := parseDecoration(src.Get(PropBorderDecorationType))
	if err != nil {
		return false, err
	}
	fillMode, err := parseFillMode(src.Get(PropHoverLightFillRadiusMode))
	if err != nil {
		return false, err
	}
	pressMode, err := parsePressFillMode(src.Get(PropPressAnimationRadiusMode))
	if err != nil {
		return false, err
	}

	base := colorOr(src.GetColor(PropColor), RGB{})
	next := CachedStyle{
		Color:   base,
		Opacity: src.GetNumber(PropOpacity),

		BorderColor:      colorOr(src.GetColor(PropBorderColor), base),
		BorderWidth:      src.GetNumber(PropBorderWidth),
		BorderFillRadius: src.GetNumber(PropBorderFillRadius),
		Decoration:       decoration,
		Edges: Edges{
			Top:    edgeFactor(el, src, AttrTopBorder, PropBorderTopType),
			Right:  edgeFactor(el, src, AttrRightBorder, PropBorderRightType),
			Bottom: edgeFactor(el, src, AttrBottomBorder, PropBorderBottomType),
			Left:   edgeFactor(el, src, AttrLeftBorder, PropBorderLeftType),
		},

		HoverLight:           src.Get(PropHoverLight) == "true",
		HoverLightColor:      colorOr(src.GetColor(PropHoverLightColor), base),
		HoverLightFillRadius: src.GetNumber(PropHoverLightFillRadius),
		HoverLightFillMode:   fillMode,

		Diffuse: src.Get(PropDiffuse) == "true",

		PressAnimation:                 src.Get(PropPressAnimation) == "true",
		PressAnimationFillMode:         pressMode,
		PressAnimationColor:            colorOr(src.GetColor(PropPressAnimationColor), base),
		PressAnimationSpeed:            src.GetNumber(PropPressAnimationSpeed),
		ReleaseAnimationAccelerateRate: src.GetNumber(PropReleaseAnimationAccelerateRate),
	}

	shared := src.GetNumber(PropBorderDecorationRadius)
	next.Radii = Corners{
		TopLeft:     cornerRadius(el, src, AttrTopLeftBorderRadius, PropBorderDecorationTopLeftRadius, shared),
		TopRight:    cornerRadius(el, src, AttrTopRightBorderRadius, PropBorderDecorationTopRightRadius, shared),
		BottomRight: cornerRadius(el, src, AttrBottomRightBorderRadius, PropBorderDecorationBottomRight, shared),
		BottomLeft:  cornerRadius(el, src, AttrBottomLeftBorderRadius, PropBorderDecorationBottomLeft, shared),
	}
	next.TrueFillRadius = trueFillRadius(rect, next.HoverLightFillMode, next.HoverLightFillRadius)

	prev := &c.style
	if !c.valid {
		c.shapeDirty, c.fillDirty = true, true
	} else {
		c.shapeDirty = c.shapeDirty ||
			prev.Decoration != next.Decoration ||
			!sameFloat(prev.BorderWidth, next.BorderWidth) ||
			prev.Edges != next.Edges ||
			!sameCorners(prev.Radii, next.Radii)
		c.fillDirty = c.fillDirty ||
			prev.Color != next.Color ||
			!sameFloat(prev.Opacity, next.Opacity) ||
			prev.BorderColor != next.BorderColor ||
			!sameFloat(prev.BorderFillRadius, next.BorderFillRadius) ||
			prev.HoverLightColor != next.HoverLightColor ||
			!sameFloat(prev.HoverLightFillRadius, next.HoverLightFillRadius) ||
			prev.HoverLightFillMode != next.HoverLightFillMode ||
			prev.TrueFillRadius != next.TrueFillRadius
	}

	*prev = next
	c.frameID = frameID
	c.valid = true
	return true, nil
}

// maxRadius is the largest distance a glow of this style reaches from the
// pointer.
func (s *CachedStyle) maxRadius() float64 {
	r := s.TrueFillRadius[1]
	if f := s.BorderFillRadius; f > 1 {
		r *= f
	}
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// trueFillRadius derives the (min, max) hover light radius.
func trueFillRadius(rect Rect, mode FillMode, factor float64) [2]float64 {
	switch mode {
	case FillAbsolute:
		return [2]float64{factor, factor}
	default:
		lo := math.Min(rect.Width, rect.Height)
		hi := math.Max(rect.Width, rect.Height)
		return [2]float64{lo * factor, hi * factor}
	}
}

func parseDecoration(v string) (Decoration, error) {
	switch strings.TrimSpace(v) {
	case "", "miter":
		return DecorationMiter, nil
	case "bevel":
		return DecorationBevel, nil
	case "round":
		return DecorationRound, nil
	}
	return 0, &ValidationError{Property: PropBorderDecorationType, Value: v, Allowed: decorationNames[:]}
}

func parseFillMode(v string) (FillMode, error) {
	switch strings.TrimSpace(v) {
	case "", "relative":
		return FillRelative, nil
	case "absolute":
		return FillAbsolute, nil
	}
	return 0, &ValidationError{Property: PropHoverLightFillRadiusMode, Value: v, Allowed: []string{"relative", "absolute"}}
}

func parsePressFillMode(v string) (PressFillMode, error) {
	switch strings.TrimSpace(v) {
	case "", "constrained":
		return PressConstrained, nil
	case "cover":
		return PressCover, nil
	}
	return 0, &ValidationError{Property: PropPressAnimationRadiusMode, Value: v, Allowed: []string{"constrained", "cover"}}
}

// colorOr parses s, falling back when s is empty or malformed.
func colorOr(s string, fallback RGB) RGB {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// edgeFactor reads an edge visibility: the element attribute wins over the
// style property; only "line" shows the edge.
func edgeFactor(el Element, src StyleSource, attr, prop string) float64 {
	v, ok := attribute(el, attr)
	if !ok || v == "" {
		v = src.Get(prop)
	}
	if strings.TrimSpace(v) == "line" {
		return 1
	}
	return 0
}

// cornerRadius applies the per-corner override when it is present and
// non-negative, otherwise the shared radius.
func cornerRadius(el Element, src StyleSource, attr, prop string, shared float64) float64 {
	var v float64
	if s, ok := attribute(el, attr); ok && s != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px")), 64)
		if err != nil {
			f = math.NaN()
		}
		v = f
	} else {
		v = src.GetNumber(prop)
	}
	if v >= 0 {
		return v
	}
	return shared
}

func attribute(el Element, name string) (string, bool) {
	if el == nil {
		return "", false
	}
	return el.Attribute(name)
}

// sameFloat treats two NaNs as equal so NaN inputs do not mark caches dirty
// on every frame.
func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func sameCorners(a, b Corners) bool {
	return sameFloat(a.TopLeft, b.TopLeft) && sameFloat(a.TopRight, b.TopRight) &&
		sameFloat(a.BottomRight, b.BottomRight) && sameFloat(a.BottomLeft, b.BottomLeft)
}
