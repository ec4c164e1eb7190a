// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/internal/fixmath"
	"github.com/gogpu/fbui/pixel"
)

// corners holds the four corner-circle centres of a rounded rectangle.
// Pixels strictly between cx1 and cx2 (or cy1 and cy2) lie in a straight
// band and need no distance test.
type corners struct {
	cx1, cx2, cy1, cy2 int
}

func newCorners(rect geom.Area, r int) corners {
	return corners{
		cx1: int(rect.X1) + r,
		cx2: int(rect.X2) - r,
		cy1: int(rect.Y1) + r,
		cy2: int(rect.Y2) - r,
	}
}

func (k corners) rowBand(y int) bool { return y > k.cy1 && y < k.cy2 }
func (k corners) colBand(x int) bool { return x > k.cx1 && x < k.cx2 }

// dy2 returns the squared vertical distance from row y to the nearest
// corner centre row.
func (k corners) dy2(y int) int {
	cy := k.cy1
	if y > k.cy1 {
		cy = k.cy2
	}
	return (y - cy) * (y - cy)
}

// dist2 returns the squared distance from (x, ·) to the nearest corner
// centre, given the row's dy2.
func (k corners) dist2(x, dy2 int) int {
	cx := k.cx1
	if x > k.cx1 {
		cx = k.cx2
	}
	return (x-cx)*(x-cx) + dy2
}

// FillRoundRect fills rect with c, rounding its corners with radius r and
// anti-aliasing the one-pixel ring outside the arc. r is clamped with
// geom.FixRadius; r == 0 is exactly FillRect.
func FillRoundRect(s *Surface, clip, rect geom.Area, r int16, c pixel.Color, alpha uint8) {
	r = geom.FixRadius(rect.Width(), rect.Height(), r)
	if r == 0 {
		FillRect(s, clip, rect, c, alpha)
		return
	}
	fillRound(s, clip, rect, int(r), c, nil, alpha)
}

// FillRoundPixmap blits pm centred on rect, clipped to rounded corners of
// radius r. r == 0 is exactly FillPixmap.
func FillRoundPixmap(s *Surface, clip, rect geom.Area, r int16, pm *Pixmap, alpha uint8) {
	r = geom.FixRadius(rect.Width(), rect.Height(), r)
	if r == 0 {
		FillPixmap(s, clip, rect, pm, alpha)
		return
	}
	fillRound(s, clip, rect, int(r), 0, pm, alpha)
}

// fillRound is the shared rounded fill. When pm is non-nil the source colour
// of each pixel is sampled from it and c is ignored.
func fillRound(s *Surface, clip, rect geom.Area, r int, c pixel.Color, pm *Pixmap, alpha uint8) {
	if alpha == pixel.Transparent {
		return
	}
	a, ok := s.bounds(clip, rect)
	if !ok {
		return
	}
	var src sampler
	if pm != nil {
		src = newSampler(pm, rect, s.Depth)
	}
	k := newCorners(rect, r)
	r2, r2Edge := r*r, (r+1)*(r+1)
	bpp := s.Depth.BytesPerPixel()

	for y := int(a.Y1); y <= int(a.Y2); y++ {
		i := s.offset(int(a.X1), y)
		band := k.rowBand(y)
		dy2 := 0
		if !band {
			dy2 = k.dy2(y)
		}
		for x := int(a.X1); x <= int(a.X2); x, i = x+1, i+bpp {
			col := c
			if pm != nil {
				var ok bool
				if col, ok = src.at(x, y); !ok {
					continue
				}
			}
			if band || k.colBand(x) {
				s.put(i, col, alpha)
				continue
			}
			d2 := k.dist2(x, dy2)
			switch {
			case d2 >= r2Edge:
			case d2 >= r2:
				s.Cover(i, col, pixel.Opaque-fixmath.SqrtError(uint32(d2)), alpha)
			default:
				s.put(i, col, alpha)
			}
		}
	}
}

// FillRoundRectBorder fills a rounded rect with c and a border band of the
// given width in border. Both the outer arc and the inner arc, where the
// border meets the fill, are anti-aliased. r is clamped with
// geom.FixRadius and width to half the shorter side. r == 0 delegates to
// FillRectBorder and width == 0 to FillRoundRect.
func FillRoundRectBorder(s *Surface, clip, rect geom.Area, r int16, c, border pixel.Color, width int16, alpha uint8) {
	r = geom.FixRadius(rect.Width(), rect.Height(), r)
	width = clampBorder(rect, width)
	switch {
	case r == 0:
		FillRectBorder(s, clip, rect, c, border, width, alpha)
		return
	case width == 0:
		fillRound(s, clip, rect, int(r), c, nil, alpha)
		return
	case alpha == pixel.Transparent:
		return
	}
	a, ok := s.bounds(clip, rect)
	if !ok {
		return
	}

	rad, bw := int(r), int(width)
	rIn := max(rad-bw+1, 0)
	inR2, outR2 := rIn*rIn, rad*rad
	inR2Max, outR2Max := 0, (rad+1)*(rad+1)
	if rIn > 0 {
		inR2Max = (rIn - 1) * (rIn - 1)
	}
	k := newCorners(rect, rad)
	ix1, ix2 := int(rect.X1)+bw, int(rect.X2)-bw
	iy1, iy2 := int(rect.Y1)+bw, int(rect.Y2)-bw
	bpp := s.Depth.BytesPerPixel()

	for y := int(a.Y1); y <= int(a.Y2); y++ {
		i := s.offset(int(a.X1), y)
		if k.rowBand(y) {
			for x := int(a.X1); x <= int(a.X2); x, i = x+1, i+bpp {
				if x < ix1 || x > ix2 {
					s.put(i, border, alpha)
				} else {
					s.put(i, c, alpha)
				}
			}
			continue
		}

		dy2 := k.dy2(y)
		edgeRow := y < iy1 || y > iy2
		for x := int(a.X1); x <= int(a.X2); x, i = x+1, i+bpp {
			if k.colBand(x) {
				if edgeRow {
					s.put(i, border, alpha)
				} else {
					s.put(i, c, alpha)
				}
				continue
			}
			d2 := k.dist2(x, dy2)
			switch {
			case d2 >= outR2Max:
			case d2 < inR2Max:
				s.put(i, c, alpha)
			case d2 < inR2:
				s.put(i, s.Depth.Blend(border, c, fixmath.SqrtError(uint32(d2))), alpha)
			case d2 > outR2:
				s.Cover(i, border, pixel.Opaque-fixmath.SqrtError(uint32(d2)), alpha)
			default:
				s.put(i, border, alpha)
			}
		}
	}
}
