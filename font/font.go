// Package font renders anti-aliased bitmap fonts onto a raster.Surface.
//
// A Font is an immutable table: a packed glyph bitmap, per-glyph metrics
// and a Unicode index made of sorted ranges. Glyph coverage is stored at 2
// or 4 bits per pixel, either raw (most significant bits first) or run-length
// compressed. Drawing maps coverage through an opacity table and blends in
// two stages: colour over background by coverage, then that result over the
// background again by the caller's alpha.
//
// Fonts are usually generated offline with FromFace (see cmd/fbsim fontconv)
// and loaded with Parse.
package font

import (
	"fmt"
	"slices"
	"sort"

	"github.com/gogpu/fbui/internal/logging"
)

// Glyph holds the metrics of one glyph.
type Glyph struct {
	// BitmapIndex is the byte offset of the glyph's coverage data in
	// Font.Bitmap.
	BitmapIndex uint32
	// AdvW is the horizontal advance in 1/16 pixel.
	AdvW uint16
	// BoxW and BoxH are the size of the coverage box.
	BoxW, BoxH uint16
	// OfsX is the box's left edge relative to the pen position.
	OfsX int8
	// OfsY is the box's bottom edge above the baseline.
	OfsY int8
}

// Advance returns the advance in whole pixels.
func (g *Glyph) Advance() int16 {
	return int16(g.AdvW >> 4)
}

// Range maps a block of code points to consecutive glyph indices.
//
// A dense range covers every code point in [Start, Start+Len). A sparse
// range lists the covered code points in List as ascending offsets from
// Start; Len is still the span of the block and bounds every offset.
type Range struct {
	Start       rune
	Len         uint32
	List        []uint16
	GlyphOffset uint32
}

// end returns the first code point after the range.
func (r *Range) end() rune {
	return r.Start + rune(r.Len)
}

// Font is an immutable bitmap font.
type Font struct {
	Bitmap []byte
	// Glyphs[0] is drawn for code points the font does not cover.
	Glyphs []Glyph
	// Ranges are sorted by Start and do not overlap.
	Ranges []Range
	// Height is the line height in pixels.
	Height int16
	// BaseLine is the distance from the bottom of the line to the baseline.
	BaseLine int16
	// BPP is 2 or 4.
	BPP uint8
	// Compressed selects run-length coded bitmaps.
	Compressed bool
}

// Index returns the glyph index of r. ok is false when the font does not
// cover r.
func (f *Font) Index(r rune) (int, bool) {
	i := sort.Search(len(f.Ranges), func(i int) bool { return r < f.Ranges[i].end() })
	if i == len(f.Ranges) {
		return 0, false
	}
	rg := &f.Ranges[i]
	if r < rg.Start {
		return 0, false
	}
	off := uint32(r - rg.Start)
	if rg.List == nil {
		return int(rg.GlyphOffset + off), true
	}
	if off > 0xFFFF {
		return 0, false
	}
	pos, found := slices.BinarySearch(rg.List, uint16(off))
	if !found {
		return 0, false
	}
	return int(rg.GlyphOffset) + pos, true
}

// Glyph returns the glyph index of r, or 0 with a warning when the font
// does not cover it.
func (f *Font) Glyph(r rune) int {
	if i, ok := f.Index(r); ok {
		return i
	}
	logging.Get().Warn("font: code point not in font", "rune", fmt.Sprintf("U+%04X", r))
	return 0
}

// Advance returns the advance of r in whole pixels.
func (f *Font) Advance(r rune) int16 {
	return f.Glyphs[f.Glyph(r)].Advance()
}

// Validate checks the internal consistency of f: bit depth, sorted
// non-overlapping ranges, sparse lists inside their span, glyph indices
// inside Glyphs and raw bitmaps inside Bitmap.
func (f *Font) Validate() error {
	if f.BPP != 2 && f.BPP != 4 {
		return ErrBPP
	}
	if len(f.Glyphs) == 0 {
		return ErrNoGlyphs
	}
	var prevEnd rune
	for i := range f.Ranges {
		rg := &f.Ranges[i]
		if i > 0 && rg.Start < prevEnd {
			return &FormatError{Table: "range", Index: i, Err: ErrUnsorted}
		}
		prevEnd = rg.end()
		n := rg.Len
		if rg.List != nil {
			n = uint32(len(rg.List))
			for j, off := range rg.List {
				if j > 0 && off <= rg.List[j-1] {
					return &FormatError{Table: "range", Index: i, Err: ErrUnsorted}
				}
				if uint32(off) >= rg.Len {
					return &FormatError{Table: "range", Index: i, Err: ErrOutOfBounds}
				}
			}
		}
		if uint64(rg.GlyphOffset)+uint64(n) > uint64(len(f.Glyphs)) {
			return &FormatError{Table: "range", Index: i, Err: ErrOutOfBounds}
		}
	}
	for i := range f.Glyphs {
		g := &f.Glyphs[i]
		size := uint64(g.BitmapIndex)
		if !f.Compressed {
			size += (uint64(g.BoxW)*uint64(g.BoxH)*uint64(f.BPP) + 7) / 8
		}
		if size > uint64(len(f.Bitmap)) {
			return &FormatError{Table: "glyph", Index: i, Err: ErrOutOfBounds}
		}
	}
	return nil
}
