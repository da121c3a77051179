package reveal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedSurface is returned when a surface handle registered with
	// a boundary implements neither RasterSurface nor VectorSurface.
	ErrUnsupportedSurface = errors.New("reveal: unsupported surface type")

	// ErrNilElement is returned when a target is registered without a
	// container element.
	ErrNilElement = errors.New("reveal: nil container element")

	// ErrUnknownTarget is returned when removing a surface that was never
	// registered with the boundary.
	ErrUnknownTarget = errors.New("reveal: surface is not registered")

	// ErrInvalidColor is wrapped by ParseColor failures.
	ErrInvalidColor = errors.New("reveal: invalid color")

	// ErrBoundaryDestroyed is returned by operations on a destroyed boundary.
	ErrBoundaryDestroyed = errors.New("reveal: boundary destroyed")
)

// ValidationError reports a style property whose value is outside its
// enumerated set. It aborts style resolution for one target for one frame.
type ValidationError struct {
	Property string
	Value    string
	Allowed  []string
}

func (e *ValidationError) Error() string {
	quoted := make([]string, len(e.Allowed))
	for i, a := range e.Allowed {
		quoted[i] = "`" + a + "`"
	}
	return fmt.Sprintf("reveal: the value of `%s` must be %s, but got `%s`",
		e.Property, strings.Join(quoted, ", "), e.Value)
}
