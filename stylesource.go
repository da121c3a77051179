package reveal

import (
	"math"
	"strconv"
	"strings"
)

// StyleSource resolves named style properties for one element.
// Size reports how many properties are available; 0 means the element is not
// yet resolvable and callers retry on a later frame.
type StyleSource interface {
	Size() int
	Get(name string) string
	GetColor(name string) string
	GetNumber(name string) float64 // NaN when absent or malformed
}

// Element is the bounds source of a reveal target: the container whose
// rectangle the reveal is drawn over.
type Element interface {
	// BoundingRect returns the element rectangle in boundary coordinates.
	BoundingRect() Rect
	// Attribute returns an element-level attribute such as
	// "data-top-left-border-radius".
	Attribute(name string) (string, bool)
}

// classed elements contribute style sheet classes.
type classed interface {
	Classes() []string
}

// attachable elements can report that they are not attached yet.
type attachable interface {
	Attached() bool
}

// StyleMode selects the StyleSource strategy.
type StyleMode uint8

const (
	// StyleCompat re-reads the string values of the style sheet on every
	// access and parses them on demand.
	StyleCompat StyleMode = iota
	// StyleTyped parses the values once per class set and serves typed
	// numbers from the parsed table.
	StyleTyped
)

func (m StyleMode) String() string {
	if m == StyleTyped {
		return "typed"
	}
	return "compat"
}

// StyleSourceFactory creates the StyleSource of a newly registered target.
type StyleSourceFactory func(el Element) StyleSource

// newStyleSourceFactory returns the factory for mode. Elements that are
// themselves a StyleSource are used directly.
func newStyleSourceFactory(mode StyleMode, sheet *StyleSheet) StyleSourceFactory {
	return func(el Element) StyleSource {
		if s, ok := el.(StyleSource); ok {
			return s
		}
		if mode == StyleTyped {
			return NewTypedStyleSource(sheet, el)
		}
		return NewCompatStyleSource(sheet, el)
	}
}

func elementClasses(el Element) []string {
	if c, ok := el.(classed); ok {
		return c.Classes()
	}
	return nil
}

func elementAttached(el Element) bool {
	if a, ok := el.(attachable); ok {
		return a.Attached()
	}
	return true
}

// --- Compat strategy ---

// CompatStyleSource looks properties up in the style sheet on every call and
// parses strings on demand.
type CompatStyleSource struct {
	sheet *StyleSheet
	el    Element
}

// NewCompatStyleSource creates a string-parsing StyleSource.
func NewCompatStyleSource(sheet *StyleSheet, el Element) *CompatStyleSource {
	return &CompatStyleSource{sheet: sheet, el: el}
}

func (s *CompatStyleSource) Size() int {
	if s.sheet == nil || !elementAttached(s.el) {
		return 0
	}
	return s.sheet.count(elementClasses(s.el))
}

func (s *CompatStyleSource) Get(name string) string {
	if s.sheet == nil {
		return ""
	}
	v, _ := s.sheet.Lookup(elementClasses(s.el), name)
	return strings.TrimSpace(v)
}

// GetColor returns the property normalized to "rgb(r, g, b)", or "" when it
// is empty or malformed.
func (s *CompatStyleSource) GetColor(name string) string {
	c, err := ParseColor(s.Get(name))
	if err != nil {
		return ""
	}
	return "rgb(" + c.String() + ")"
}

func (s *CompatStyleSource) GetNumber(name string) float64 {
	return parseNumber(s.Get(name))
}

// --- Typed strategy ---

// StyleValue is one pre-parsed style property.
type StyleValue struct {
	Raw    string
	Number float64 // NaN unless Raw is numeric
}

// TypedStyleSource parses the style sheet into typed values once per class
// set and serves lookups from that table.
type TypedStyleSource struct {
	sheet  *StyleSheet
	el     Element
	key    string
	values map[string]StyleValue
}

// NewTypedStyleSource creates a StyleSource with pre-parsed values.
func NewTypedStyleSource(sheet *StyleSheet, el Element) *TypedStyleSource {
	return &TypedStyleSource{sheet: sheet, el: el}
}

// table returns the parsed values, rebuilding them when the class set of
// the element changed.
func (s *TypedStyleSource) table() map[string]StyleValue {
	if s.sheet == nil {
		return nil
	}
	classes := elementClasses(s.el)
	key := strings.Join(classes, " ")
	if s.values != nil && key == s.key {
		return s.values
	}
	merged := s.sheet.Resolve(classes)
	values := make(map[string]StyleValue, len(merged))
	for k, v := range merged {
		v = strings.TrimSpace(v)
		values[k] = StyleValue{Raw: v, Number: parseNumber(v)}
	}
	s.key = key
	s.values = values
	return values
}

func (s *TypedStyleSource) Size() int {
	if !elementAttached(s.el) {
		return 0
	}
	return len(s.table())
}

func (s *TypedStyleSource) Get(name string) string {
	return s.table()[name].Raw
}

func (s *TypedStyleSource) GetColor(name string) string {
	return s.Get(name)
}

func (s *TypedStyleSource) GetNumber(name string) float64 {
	v, ok := s.table()[name]
	if !ok {
		return math.NaN()
	}
	return v.Number
}

// parseNumber parses a number with an optional "px" suffix. Malformed input
// yields NaN.
func parseNumber(v string) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	if v == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// MapStyleSource is a fixed property table, handy for elements that carry
// their own style.
type MapStyleSource map[string]string

func (m MapStyleSource) Size() int              { return len(m) }
func (m MapStyleSource) Get(name string) string { return strings.TrimSpace(m[name]) }
func (m MapStyleSource) GetColor(name string) string {
	return m.Get(name)
}
func (m MapStyleSource) GetNumber(name string) float64 { return parseNumber(m[name]) }
