package reveal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a normalized color channel triplet. Alpha travels separately as the
// opacity style properties.
type RGB struct {
	R, G, B uint8
}

// String formats the triplet as "r, g, b".
func (c RGB) String() string {
	return strconv.Itoa(int(c.R)) + ", " + strconv.Itoa(int(c.G)) + ", " + strconv.Itoa(int(c.B))
}

// Color returns the triplet as a Color with the given alpha.
func (c RGB) Color(alpha float64) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: alpha,
	}
}

// Hex returns the triplet in #rrggbb form.
func (c RGB) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// ParseColor parses hex (#rgb, #rrggbb) and functional (rgb(), rgba())
// color syntax into a channel triplet. The alpha channel of rgba() is
// ignored. An empty string is an error wrapping ErrInvalidColor so callers
// can fall back to another color.
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, fmt.Errorf("%w: empty value", ErrInvalidColor)
	}

	if s[0] == '#' {
		c, err := colorful.Hex(s)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		r, g, b := c.Clamped().RGB255()
		return RGB{r, g, b}, nil
	}

	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return RGB{}, fmt.Errorf("%w: %q is not a valid color value", ErrInvalidColor, s)
	}

	// Accept both "r, g, b" and the space separated "r g b / a" form.
	body := strings.NewReplacer(",", " ", "/", " ").Replace(s[open+1 : end])
	fields := strings.Fields(body)
	if len(fields) < 3 {
		return RGB{}, fmt.Errorf("%w: %q should have at least three color channels", ErrInvalidColor, s)
	}

	var out [3]uint8
	for i := 0; i < 3; i++ {
		v, err := parseChannel(fields[i])
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		out[i] = v
	}
	return RGB{out[0], out[1], out[2]}, nil
}

// parseChannel parses one functional color channel: 0-255 or a percentage.
func parseChannel(f string) (uint8, error) {
	percent := strings.HasSuffix(f, "%")
	f = strings.TrimSuffix(f, "%")
	v, err := strconv.ParseFloat(f, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("channel %q is not a number", f)
	}
	if percent {
		v = v * 255 / 100
	}
	return uint8(math.Round(clamp(v, 0, 255))), nil
}
