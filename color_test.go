package reveal

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#ff8000", RGB{255, 128, 0}},
		{"#FFF", RGB{255, 255, 255}},
		{"  #000000 ", RGB{0, 0, 0}},
		{"rgb(1, 2, 3)", RGB{1, 2, 3}},
		{"rgba(10,20,30,0.5)", RGB{10, 20, 30}},
		{"rgb(255 0 128 / 50%)", RGB{255, 0, 128}},
		{"rgb(100%, 0%, 50%)", RGB{255, 0, 128}},
		{"rgb(10%, 20%, 30%)", RGB{26, 51, 77}},
		{"rgb(300, -4, 12.6)", RGB{255, 0, 13}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "red", "rgb(1, 2)", "rgb(a, b, c)", "#zzzzzz", "rgb(1, 2, 3"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseColor(in)
			if err == nil {
				t.Fatalf("ParseColor(%q) succeeded, want error", in)
			}
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("error %v does not wrap ErrInvalidColor", err)
			}
		})
	}
}

func TestRGBFormatting(t *testing.T) {
	c := RGB{12, 0, 255}
	if got := c.String(); got != "12, 0, 255" {
		t.Errorf("String() = %q", got)
	}
	if got := c.Hex(); got != "#0c00ff" {
		t.Errorf("Hex() = %q", got)
	}
	col := c.Color(0.5)
	if col.A != 0.5 || col.B != 1 || col.G != 0 {
		t.Errorf("Color() = %+v", col)
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	if got.A != 128 || got.R != 128 || got.G != 64 || got.B != 0 {
		t.Errorf("toRGBA() = %+v", got)
	}
}
