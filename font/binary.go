package font

import (
	"encoding/binary"
	"fmt"
)

// Binary layout, all integers little-endian:
//
//	header  magic "FBFN", version u16, height i16, baseline i16, bpp u8,
//	        flags u8 (bit 0 = compressed), glyphs u32, ranges u32, bitmap u32
//	glyph   bitmapIndex u32, advW u16, boxW u16, boxH u16, ofsX i8, ofsY i8
//	range   start u32, len u32, glyphOffset u32, listLen u32 (0 = dense),
//	        list u16 × listLen
//	bitmap  raw bytes
const (
	magic          = "FBFN"
	version        = 1
	headerSize     = 4 + 2 + 2 + 2 + 1 + 1 + 4 + 4 + 4
	glyphSize      = 4 + 2 + 2 + 2 + 1 + 1
	rangeSize      = 4 * 4
	flagCompressed = 1 << 0
)

// MarshalBinary encodes f in the binary font format.
func (f *Font) MarshalBinary() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	out := make([]byte, 0, headerSize+len(f.Glyphs)*glyphSize+len(f.Ranges)*rangeSize+len(f.Bitmap))
	out = append(out, magic...)
	out = le.AppendUint16(out, version)
	out = le.AppendUint16(out, uint16(f.Height))
	out = le.AppendUint16(out, uint16(f.BaseLine))
	var flags uint8
	if f.Compressed {
		flags |= flagCompressed
	}
	out = append(out, f.BPP, flags)
	out = le.AppendUint32(out, uint32(len(f.Glyphs)))
	out = le.AppendUint32(out, uint32(len(f.Ranges)))
	out = le.AppendUint32(out, uint32(len(f.Bitmap)))

	for _, g := range f.Glyphs {
		out = le.AppendUint32(out, g.BitmapIndex)
		out = le.AppendUint16(out, g.AdvW)
		out = le.AppendUint16(out, g.BoxW)
		out = le.AppendUint16(out, g.BoxH)
		out = append(out, byte(g.OfsX), byte(g.OfsY))
	}
	for _, r := range f.Ranges {
		out = le.AppendUint32(out, uint32(r.Start))
		out = le.AppendUint32(out, r.Len)
		out = le.AppendUint32(out, r.GlyphOffset)
		out = le.AppendUint32(out, uint32(len(r.List)))
		for _, v := range r.List {
			out = le.AppendUint16(out, v)
		}
	}
	return append(out, f.Bitmap...), nil
}

// UnmarshalBinary decodes data into f.
func (f *Font) UnmarshalBinary(data []byte) error {
	p, err := Parse(data)
	if err != nil {
		return err
	}
	*f = *p
	return nil
}

// reader walks a byte slice, remembering the first overrun.
type reader struct {
	data []byte
	pos  int
	err  error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.data)-r.pos < n {
		r.err = fmt.Errorf("%w at offset %d", ErrTruncated, r.pos)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) u16() uint16 {
	if b := r.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (r *reader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

// Parse decodes a font blob produced by MarshalBinary and validates it.
// The returned font aliases data's bitmap bytes.
func Parse(data []byte) (*Font, error) {
	if len(data) < len(magic) || string(data[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	r := &reader{data: data, pos: len(magic)}
	if v := r.u16(); r.err == nil && v != version {
		return nil, fmt.Errorf("%w %d", ErrVersion, v)
	}
	f := &Font{
		Height:   int16(r.u16()),
		BaseLine: int16(r.u16()),
		BPP:      r.u8(),
	}
	f.Compressed = r.u8()&flagCompressed != 0
	nGlyphs, nRanges, nBitmap := r.u32(), r.u32(), r.u32()
	if r.err != nil {
		return nil, r.err
	}
	// Bound the allocations by what the blob can actually hold.
	if uint64(nGlyphs)*glyphSize > uint64(len(data)) || uint64(nRanges)*rangeSize > uint64(len(data)) {
		return nil, ErrTruncated
	}

	f.Glyphs = make([]Glyph, nGlyphs)
	for i := range f.Glyphs {
		g := &f.Glyphs[i]
		g.BitmapIndex = r.u32()
		g.AdvW = r.u16()
		g.BoxW = r.u16()
		g.BoxH = r.u16()
		g.OfsX = int8(r.u8())
		g.OfsY = int8(r.u8())
	}
	f.Ranges = make([]Range, nRanges)
	for i := range f.Ranges {
		rg := &f.Ranges[i]
		rg.Start = rune(r.u32())
		rg.Len = r.u32()
		rg.GlyphOffset = r.u32()
		n := r.u32()
		if n == 0 {
			continue
		}
		if r.err == nil && uint64(n)*2 > uint64(len(data)-r.pos) {
			return nil, ErrTruncated
		}
		rg.List = make([]uint16, n)
		for j := range rg.List {
			rg.List[j] = r.u16()
		}
	}
	f.Bitmap = r.take(int(nBitmap))
	if r.err != nil {
		return nil, r.err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}
