package reveal

// Box is a plain rectangular Element. Hosts that have no layout system of
// their own describe their decorated elements with boxes.
type Box struct {
	Name   string
	Bounds Rect
	// Class lists style sheet classes, later classes override earlier ones.
	Class []string
	// Attrs holds element attributes such as AttrTopLeftBorderRadius.
	Attrs map[string]string
	// Detached boxes report no style properties until attached.
	Detached bool
	// Background is painted under the reveal by hosts that draw boxes.
	Background Color
}

// NewBox creates a box with the given bounds and classes.
func NewBox(name string, bounds Rect, class ...string) *Box {
	return &Box{Name: name, Bounds: bounds, Class: class}
}

func (b *Box) BoundingRect() Rect { return b.Bounds }

func (b *Box) Attribute(name string) (string, bool) {
	v, ok := b.Attrs[name]
	return v, ok
}

// SetAttribute sets an element attribute.
func (b *Box) SetAttribute(name, value string) {
	if b.Attrs == nil {
		b.Attrs = make(map[string]string)
	}
	b.Attrs[name] = value
}

func (b *Box) Classes() []string { return b.Class }

func (b *Box) Attached() bool { return !b.Detached }
