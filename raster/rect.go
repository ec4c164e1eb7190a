// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
)

// FillRect fills surface ∩ clip ∩ rect with c at opacity alpha.
func FillRect(s *Surface, clip, rect geom.Area, c pixel.Color, alpha uint8) {
	if alpha == pixel.Transparent {
		return
	}
	a, ok := s.bounds(clip, rect)
	if !ok {
		return
	}
	bpp := s.Depth.BytesPerPixel()
	for y := int(a.Y1); y <= int(a.Y2); y++ {
		i := s.offset(int(a.X1), y)
		for x := int(a.X1); x <= int(a.X2); x, i = x+1, i+bpp {
			s.put(i, c, alpha)
		}
	}
}

// FillRectBorder fills rect with c and paints a band of the given width
// along its edges with border. Pixels whose distance to every edge is at
// least width belong to the interior. width is clamped to half the shorter
// side; zero delegates to FillRect.
func FillRectBorder(s *Surface, clip, rect geom.Area, c, border pixel.Color, width int16, alpha uint8) {
	width = clampBorder(rect, width)
	if width == 0 {
		FillRect(s, clip, rect, c, alpha)
		return
	}
	if alpha == pixel.Transparent {
		return
	}
	a, ok := s.bounds(clip, rect)
	if !ok {
		return
	}
	in := geom.Area{X1: rect.X1 + width, Y1: rect.Y1 + width, X2: rect.X2 - width, Y2: rect.Y2 - width}
	bpp := s.Depth.BytesPerPixel()
	for y := int(a.Y1); y <= int(a.Y2); y++ {
		i := s.offset(int(a.X1), y)
		for x := int(a.X1); x <= int(a.X2); x, i = x+1, i+bpp {
			if in.Contains(int16(x), int16(y)) {
				s.put(i, c, alpha)
			} else {
				s.put(i, border, alpha)
			}
		}
	}
}

// clampBorder limits a border width to half of the shorter side of rect.
func clampBorder(rect geom.Area, width int16) int16 {
	limit := min(rect.Width(), rect.Height()) / 2
	return max(min(width, limit), 0)
}
