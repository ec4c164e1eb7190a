// Package raster implements the clipped integer fill primitives the engine
// draws with: flat, bordered and rounded rectangles, pixmap blits and alpha
// blending.
//
// Every primitive takes a Surface, a clip Area and a target Area and writes
// only to the pixels in all three. Disjoint inputs are a silent no-op. No
// primitive reads or writes engine state other than the Surface buffer.
package raster

import (
	"image"

	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
)

// Surface is a window of the screen backed by a scratch buffer.
//
// The buffer holds H rows of W pixels in the layout of Depth; W is also the
// row stride. (X, Y) is the screen position of the first pixel. The
// compositor creates a fresh Surface for every row slice.
type Surface struct {
	Buf   []byte
	Depth pixel.Depth
	X, Y  int16
	W, H  int16
}

// NewSurface wraps buf as a w×h surface at screen position (x, y).
// buf must hold at least w*h pixels.
func NewSurface(buf []byte, d pixel.Depth, x, y, w, h int16) *Surface {
	return &Surface{Buf: buf, Depth: d, X: x, Y: y, W: w, H: h}
}

// Area returns the screen rectangle covered by s.
func (s *Surface) Area() geom.Area {
	return geom.Rect(s.X, s.Y, s.W, s.H)
}

// offset returns the byte index of screen pixel (x, y).
func (s *Surface) offset(x, y int) int {
	return ((y-int(s.Y))*int(s.W) + (x - int(s.X))) * s.Depth.BytesPerPixel()
}

// Offset returns the byte index in Buf of screen pixel (x, y). The point
// must lie inside s.
func (s *Surface) Offset(x, y int16) int {
	return s.offset(int(x), int(y))
}

// bounds intersects the surface with clip and rect.
func (s *Surface) bounds(clip, rect geom.Area) (geom.Area, bool) {
	a, ok := s.Area().Clip(rect)
	if !ok {
		return a, false
	}
	return a, a.SelfClip(clip)
}

// put writes c at byte index i with opacity alpha.
func (s *Surface) put(i int, c pixel.Color, alpha uint8) {
	switch alpha {
	case pixel.Opaque:
		s.Depth.Store(s.Buf, i, c)
	case pixel.Transparent:
	default:
		s.Depth.Store(s.Buf, i, s.Depth.Mix(c, s.Depth.Load(s.Buf, i), alpha))
	}
}

// Cover writes c at byte index i with coverage cov and then opacity alpha:
// the colour is first mixed with the background by coverage, and that
// result is mixed with the same background again by alpha.
func (s *Surface) Cover(i int, c pixel.Color, cov, alpha uint8) {
	bg := s.Depth.Load(s.Buf, i)
	mix := s.Depth.Blend(c, bg, cov)
	s.Depth.Store(s.Buf, i, s.Depth.Blend(mix, bg, alpha))
}

// At returns the pixel at screen position (x, y), or 0 outside s.
func (s *Surface) At(x, y int16) pixel.Color {
	if !s.Area().Contains(x, y) {
		return 0
	}
	return s.Depth.Load(s.Buf, s.offset(int(x), int(y)))
}

// Set stores c at screen position (x, y). Points outside s are ignored.
func (s *Surface) Set(x, y int16, c pixel.Color) {
	if !s.Area().Contains(x, y) {
		return
	}
	s.Depth.Store(s.Buf, s.offset(int(x), int(y)), c)
}

// Fill sets every pixel of s to c.
func (s *Surface) Fill(c pixel.Color) {
	bpp := s.Depth.BytesPerPixel()
	n := int(s.W) * int(s.H) * bpp
	for i := 0; i < n; i += bpp {
		s.Depth.Store(s.Buf, i, c)
	}
}

// NRGBA returns an opaque copy of s whose bounds are its screen rectangle.
func (s *Surface) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(int(s.X), int(s.Y), int(s.X)+int(s.W), int(s.Y)+int(s.H)))
	bpp := s.Depth.BytesPerPixel()
	for row := 0; row < int(s.H); row++ {
		for col := 0; col < int(s.W); col++ {
			c := s.Depth.Load(s.Buf, (row*int(s.W)+col)*bpp)
			img.SetNRGBA(int(s.X)+col, int(s.Y)+row, s.Depth.NRGBA(c))
		}
	}
	return img
}
