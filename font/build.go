package font

import (
	"fmt"
	"image"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/rangetable"
)

// denseMin is the shortest run of consecutive code points stored as a
// dense range. Shorter runs are gathered into sparse ranges.
const denseMin = 8

// Options controls FromFace.
type Options struct {
	// BPP is the coverage depth, 2 or 4. Zero means 4.
	BPP uint8
	// Compress selects run-length coded bitmaps.
	Compress bool
}

// FromFace rasterises every code point of charset that face covers into a
// bitmap font. Glyph 0 is the face's replacement glyph (U+FFFD, then '?',
// else an empty glyph half a line wide).
func FromFace(face font.Face, charset *unicode.RangeTable, opts Options) (*Font, error) {
	bpp := opts.BPP
	if bpp == 0 {
		bpp = 4
	}
	if bpp != 2 && bpp != 4 {
		return nil, ErrBPP
	}

	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	f := &Font{
		Height:     int16(ascent + descent),
		BaseLine:   int16(descent),
		BPP:        bpp,
		Compressed: opts.Compress,
	}

	var runes []rune
	rangetable.Visit(charset, func(r rune) {
		if _, ok := face.GlyphAdvance(r); ok {
			runes = append(runes, r)
		}
	})
	if len(runes) == 0 {
		return nil, ErrEmptyCharset
	}

	b := builder{font: f, face: face}
	if !b.add(unicode.ReplacementChar) && !b.add('?') {
		f.Glyphs = append(f.Glyphs, Glyph{
			BitmapIndex: uint32(len(f.Bitmap)),
			AdvW:        uint16(f.Height/2) << 4,
		})
	}
	for _, r := range runes {
		if !b.add(r) {
			return nil, fmt.Errorf("font: rasterise U+%04X: glyph vanished", r)
		}
	}
	f.Ranges = buildRanges(runes, 1)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// builder appends rasterised glyphs to a font.
type builder struct {
	font   *Font
	face   font.Face
	values []uint8
}

// add rasterises r and appends it as the next glyph.
func (b *builder) add(r rune) bool {
	dr, mask, mp, adv, ok := b.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return false
	}
	f := b.font
	levels := uint32(1)<<f.BPP - 1
	b.values = b.values[:0]
	for y := 0; y < dr.Dy(); y++ {
		for x := 0; x < dr.Dx(); x++ {
			_, _, _, a := mask.At(mp.X+x, mp.Y+y).RGBA()
			b.values = append(b.values, uint8((a*levels+0x7FFF)/0xFFFF))
		}
	}
	g := Glyph{
		BitmapIndex: uint32(len(f.Bitmap)),
		AdvW:        uint16(adv >> 2),
		BoxW:        uint16(dr.Dx()),
		BoxH:        uint16(dr.Dy()),
		OfsX:        int8(dr.Min.X),
		OfsY:        int8(-dr.Max.Y),
	}
	if f.Compressed {
		f.Bitmap = append(f.Bitmap, EncodeRLE(b.values, f.BPP)...)
	} else {
		f.Bitmap = append(f.Bitmap, packRaw(b.values, f.BPP)...)
	}
	f.Glyphs = append(f.Glyphs, g)
	return true
}

// buildRanges groups ascending code points into dense ranges for long
// consecutive runs and sparse ranges for everything in between. Glyph
// indices are assigned in code point order starting at first.
func buildRanges(runes []rune, first uint32) []Range {
	var (
		out    []Range
		glyph  = first
		sparse *Range
	)
	flush := func() {
		if sparse == nil {
			return
		}
		last := sparse.List[len(sparse.List)-1]
		sparse.Len = uint32(last) + 1
		out = append(out, *sparse)
		glyph += uint32(len(sparse.List))
		sparse = nil
	}
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[j-1]+1 {
			j++
		}
		start, n := runes[i], j-i
		if n >= denseMin {
			flush()
			out = append(out, Range{Start: start, Len: uint32(n), GlyphOffset: glyph})
			glyph += uint32(n)
			i = j
			continue
		}
		if sparse != nil && runes[j-1]-sparse.Start > 0xFFFF {
			flush()
		}
		if sparse == nil {
			sparse = &Range{Start: start, GlyphOffset: glyph}
		}
		for _, r := range runes[i:j] {
			sparse.List = append(sparse.List, uint16(r-sparse.Start))
		}
		i = j
	}
	flush()
	return out
}

// Charset builds a code point table from a comma-separated list of items.
// An item is a named set ("ascii", "latin1"), a Unicode script or category
// name ("Han", "Greek", "Lu"), a single code point ("0x4E2D", "U+4E2D") or
// an inclusive range ("0x20-0x7E").
func Charset(spec string) (*unicode.RangeTable, error) {
	var tables []*unicode.RangeTable
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		t, err := charsetItem(item)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("font: empty charset %q", spec)
	}
	return rangetable.Merge(tables...), nil
}

func charsetItem(item string) (*unicode.RangeTable, error) {
	switch strings.ToLower(item) {
	case "ascii":
		return codeRange(0x20, 0x7E), nil
	case "latin1":
		return rangetable.Merge(codeRange(0x20, 0x7E), codeRange(0xA0, 0xFF)), nil
	}
	if t, ok := unicode.Scripts[item]; ok {
		return t, nil
	}
	if t, ok := unicode.Categories[item]; ok {
		return t, nil
	}
	lo, hi, isRange := strings.Cut(item, "-")
	a, err := parseCodePoint(lo)
	if err != nil {
		return nil, err
	}
	if !isRange {
		return rangetable.New(a), nil
	}
	b, err := parseCodePoint(hi)
	if err != nil {
		return nil, err
	}
	if b < a {
		return nil, fmt.Errorf("font: inverted charset range %q", item)
	}
	return codeRange(a, b), nil
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "U+"), "u+")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, fmt.Errorf("font: bad code point %q", s)
	}
	return rune(v), nil
}

func codeRange(lo, hi rune) *unicode.RangeTable {
	rs := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		rs = append(rs, r)
	}
	return rangetable.New(rs...)
}

// ParseFace opens a TrueType or OpenType font at the given pixel size.
func ParseFace(data []byte, size float64) (font.Face, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: failed to create face: %w", err)
	}
	return face, nil
}

// Bounds returns the union of all glyph boxes drawn at the origin, a quick
// way to size a text cell.
func (f *Font) Bounds() image.Rectangle {
	var r image.Rectangle
	for i := range f.Glyphs {
		a := f.GlyphRect(0, 0, i)
		if a.Empty() {
			continue
		}
		r = r.Union(image.Rect(int(a.X1), int(a.Y1), int(a.X2)+1, int(a.Y2)+1))
	}
	return r
}
