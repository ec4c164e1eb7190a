// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

import (
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/raster"
)

// Opacity tables mapping stored coverage to an 8-bit blend factor.
var (
	opa4 = [16]uint8{0, 17, 34, 51, 68, 85, 102, 119, 136, 153, 170, 187, 204, 221, 238, 255}
	opa2 = [4]uint8{0, 85, 170, 255}
)

// opacity returns the blend factor for a stored coverage value.
func (f *Font) opacity(v uint8) uint8 {
	if f.BPP == 2 {
		return opa2[v&0x3]
	}
	return opa4[v&0xF]
}

// GlyphRect returns the screen rectangle of glyph idx drawn with its line
// top-left at (x, y).
func (f *Font) GlyphRect(x, y int16, idx int) geom.Area {
	g := &f.Glyphs[idx]
	offY2 := f.Height - int16(g.OfsY) - f.BaseLine
	return geom.Rect(x+int16(g.OfsX), y+offY2-int16(g.BoxH), int16(g.BoxW), int16(g.BoxH))
}

// DrawGlyph draws glyph idx with its line top-left at (x, y) in colour c,
// touching only surface ∩ clip ∩ the glyph box.
func (f *Font) DrawGlyph(s *raster.Surface, clip geom.Area, x, y int16, idx int, c pixel.Color, alpha uint8) {
	if alpha == pixel.Transparent {
		return
	}
	box := f.GlyphRect(x, y, idx)
	a, ok := s.Area().Clip(box)
	if !ok || !a.SelfClip(clip) {
		return
	}
	g := &f.Glyphs[idx]
	dot := f.Bitmap[g.BitmapIndex:]
	bpp := s.Depth.BytesPerPixel()
	w := int(g.BoxW)

	if !f.Compressed {
		for y := int(a.Y1); y <= int(a.Y2); y++ {
			i := s.Offset(a.X1, int16(y))
			rowBase := (y - int(box.Y1)) * w
			for x := int(a.X1); x <= int(a.X2); x, i = x+1, i+bpp {
				if cov := f.opacity(f.rawAt(dot, rowBase+x-int(box.X1))); cov != 0 {
					s.Cover(i, c, cov, alpha)
				}
			}
		}
		return
	}

	dec := newRLEDecoder(dot, f.BPP)
	for y := box.Y1; y < a.Y1; y++ {
		dec.line(nil, w)
	}
	line := getLine(w)
	defer putLine(line)
	for y := a.Y1; y <= a.Y2; y++ {
		dec.line(*line, w)
		i := s.Offset(a.X1, y)
		for x := int(a.X1); x <= int(a.X2); x, i = x+1, i+bpp {
			if cov := f.opacity((*line)[x-int(box.X1)]); cov != 0 {
				s.Cover(i, c, cov, alpha)
			}
		}
	}
}

// rawAt returns the coverage value of pixel n of a raw glyph bitmap.
func (f *Font) rawAt(dot []byte, n int) uint8 {
	if f.BPP == 4 {
		b := dot[n>>1]
		if n&1 != 0 {
			return b & 0x0F
		}
		return b >> 4
	}
	shift := uint(3-n&3) * 2
	return dot[n>>2] >> shift & 0x03
}

// DrawString draws text on one line starting with the line top-left at
// (x, y). Code points the font does not cover draw glyph 0.
func (f *Font) DrawString(s *raster.Surface, clip geom.Area, x, y int16, text string, c pixel.Color, alpha uint8) {
	for i := 0; i < len(text); {
		r, n := DecodeRuneInString(text[i:])
		i += n
		idx := f.Glyph(r)
		f.DrawGlyph(s, clip, x, y, idx, c, alpha)
		x += f.Glyphs[idx].Advance()
	}
}

// DrawLines draws text starting at (x, y), breaking lines at '\n' and
// before any glyph whose advance would cross clip.X2. A glyph at the start
// of a line is never wrapped. Lines are Height+margin apart.
func (f *Font) DrawLines(s *raster.Surface, clip geom.Area, x, y int16, text string, c pixel.Color, alpha uint8, margin int16) {
	f.DrawText(s, clip, clip, x, y, text, c, alpha, margin)
}

// DrawText is DrawLines with the wrap edge taken from box instead of clip,
// so that text laid out in box wraps the same way however it is clipped.
// Pixels are written inside clip ∩ box only.
func (f *Font) DrawText(s *raster.Surface, clip, box geom.Area, x, y int16, text string, c pixel.Color, alpha uint8, margin int16) {
	if !clip.SelfClip(box) {
		return
	}
	xOff := x
	for i := 0; i < len(text); {
		r, n := DecodeRuneInString(text[i:])
		i += n
		if r == '\n' {
			xOff = x
			y += f.Height + margin
			continue
		}
		idx := f.Glyph(r)
		w := f.Glyphs[idx].Advance()
		if xOff != x && xOff+w-1 > box.X2 {
			xOff = x
			y += f.Height + margin
		}
		f.DrawGlyph(s, clip, xOff, y, idx, c, alpha)
		xOff += w
	}
}

// StringWidth returns the sum of the advances of text.
func (f *Font) StringWidth(text string) int16 {
	var w int16
	for i := 0; i < len(text); {
		r, n := DecodeRuneInString(text[i:])
		i += n
		w += f.Advance(r)
	}
	return w
}

// StringHeight returns the height of text laid out by DrawLines in a box
// width pixels wide.
func (f *Font) StringHeight(width int16, text string, margin int16) int16 {
	lines := int16(1)
	var off int16
	for i := 0; i < len(text); {
		r, n := DecodeRuneInString(text[i:])
		i += n
		if r == '\n' {
			lines++
			off = 0
			continue
		}
		w := f.Advance(r)
		if off != 0 && off+w > width {
			lines++
			off = 0
		}
		off += w
	}
	return lines * (f.Height + margin)
}

// TextPos returns the line top-left at which text, widened by offset
// pixels, sits at anchor a inside area.
func (f *Font) TextPos(area geom.Area, text string, offset int16, a geom.Align) geom.Pos {
	size := geom.Size{W: f.StringWidth(text) + offset, H: f.Height}
	p := geom.AlignPos(area.Size(), size, a)
	return geom.Pos{X: area.X1 + p.X, Y: area.Y1 + p.Y}
}
