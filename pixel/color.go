package pixel

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Black returns the packed black of depth d.
func (d Depth) Black() Color { return d.RGB(0, 0, 0) }

// White returns the packed white of depth d.
func (d Depth) White() Color { return d.RGB(0xFF, 0xFF, 0xFF) }

// FromColor converts any image/color value to the packed form of d.
// Alpha is ignored except for ARGB8888, where it is kept.
func (d Depth) FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	p := d.RGB(n.R, n.G, n.B)
	if d == ARGB8888 {
		p = p&0xFFFFFF | Color(n.A)<<24
	}
	return p
}

// NRGBA converts a packed colour of depth d to an opaque image/color value.
func (d Depth) NRGBA(c Color) color.NRGBA {
	r, g, b := d.Channels(c)
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

// ParseHex parses a CSS-style "#rrggbb" (or "#rgb") string into a packed
// colour of depth d.
func (d Depth) ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("pixel: parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return d.RGB(r, g, b), nil
}
