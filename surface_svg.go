package reveal

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// SVGSurface is a VectorSurface that keeps its path elements in memory and
// serializes them as an SVG document.
type SVGSurface struct {
	id    string
	w, h  int
	paths [layerCount]string
	grads [layerCount]*RadialGradient

	// Updates counts SetPathData and SetGradient calls.
	Updates int
}

// NewSVGSurface creates a surface whose gradient ids are prefixed with id.
func NewSVGSurface(id string) *SVGSurface {
	if id == "" {
		id = "reveal"
	}
	return &SVGSurface{id: id}
}

func (s *SVGSurface) Ready() bool { return true }

func (s *SVGSurface) Resize(w, h int) { s.w, s.h = w, h }

// Size returns the current size.
func (s *SVGSurface) Size() (int, int) { return s.w, s.h }

func (s *SVGSurface) SetPathData(l VectorLayer, d string) {
	s.paths[l] = d
	s.Updates++
}

func (s *SVGSurface) SetGradient(l VectorLayer, g *RadialGradient) {
	if g == nil {
		s.grads[l] = nil
	} else {
		cp := *g
		cp.Stops = append([]GradientStop(nil), g.Stops...)
		s.grads[l] = &cp
	}
	s.Updates++
}

// PathData returns the outline of layer.
func (s *SVGSurface) PathData(l VectorLayer) string { return s.paths[l] }

// Gradient returns the fill of layer, or nil when it is hidden.
func (s *SVGSurface) Gradient(l VectorLayer) *RadialGradient { return s.grads[l] }

// WriteTo writes the surface as a standalone SVG document.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		s.w, s.h, s.w, s.h)
	bw.WriteString("<defs>\n")
	for l := VectorLayer(0); l < layerCount; l++ {
		g := s.grads[l]
		if g == nil {
			continue
		}
		fmt.Fprintf(bw, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`+"\n",
			s.gradientID(l), fmtNum(g.Center.X), fmtNum(g.Center.Y), fmtNum(g.Radius))
		for _, st := range g.Stops {
			c := RGB{R: channel8(st.Color.R), G: channel8(st.Color.G), B: channel8(st.Color.B)}
			fmt.Fprintf(bw, `<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n",
				fmtNum(st.Offset), c.Hex(), fmtNum(clamp01(st.Color.A)))
		}
		bw.WriteString("</radialGradient>\n")
	}
	bw.WriteString("</defs>\n")
	for l := VectorLayer(0); l < layerCount; l++ {
		if s.paths[l] == "" {
			continue
		}
		fill := "none"
		if s.grads[l] != nil {
			fill = "url(#" + s.gradientID(l) + ")"
		}
		fmt.Fprintf(bw, `<path class="%s" d="%s" fill="%s" fill-rule="nonzero"/>`+"\n", l, s.paths[l], fill)
	}
	bw.WriteString("</svg>\n")

	err := bw.Flush()
	return cw.n, err
}

func (s *SVGSurface) gradientID(l VectorLayer) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s.id+"-"+l.String()))
	return b.String()
}

func channel8(v float64) uint8 { return uint8(clamp01(v)*255 + 0.5) }

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
