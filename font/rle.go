// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

// Run-length coding of glyph coverage.
//
// The stream is a bit sequence read most significant bit first. Values are
// bpp bits wide. The decoder has three states:
//
//	single:   read a value. If it equals the previous value (and is not the
//	          first value of the glyph) switch to repeated.
//	repeated: read one bit. 1 repeats the previous value; the 11th
//	          consecutive 1 is followed by a 6-bit counter. A non-zero
//	          counter switches to counter; a zero counter means a raw value
//	          follows immediately. 0 means a raw value follows; back to
//	          single.
//	counter:  emit the previous value and decrement; when the counter
//	          reaches zero a raw value is read instead; back to single.
//
// The glyph's rows are coded back to back in one stream.

type rleState uint8

const (
	rleSingle rleState = iota
	rleRepeated
	rleCounter
)

const (
	rleRepeatBits  = 11
	rleCounterBits = 6
	rleCounterMax  = 1<<rleCounterBits - 1
)

// getBits reads n ≤ 8 bits at bit position pos, most significant first.
// Bits past the end of in read as zero.
func getBits(in []byte, pos uint32, n uint8) uint8 {
	b := int(pos >> 3)
	var w uint16
	if b < len(in) {
		w = uint16(in[b]) << 8
	}
	if b+1 < len(in) {
		w |= uint16(in[b+1])
	}
	return uint8(w>>(16-pos&7-uint32(n))) & (1<<n - 1)
}

// rleDecoder decodes one glyph's coverage stream row by row.
type rleDecoder struct {
	in    []byte
	bpp   uint8
	pos   uint32
	prev  uint8
	count uint8
	state rleState
}

func newRLEDecoder(in []byte, bpp uint8) rleDecoder {
	return rleDecoder{in: in, bpp: bpp}
}

func (d *rleDecoder) raw() uint8 {
	v := getBits(d.in, d.pos, d.bpp)
	d.pos += uint32(d.bpp)
	d.prev = v
	d.state = rleSingle
	return v
}

// next returns the next coverage value.
func (d *rleDecoder) next() uint8 {
	switch d.state {
	case rleSingle:
		v := getBits(d.in, d.pos, d.bpp)
		if d.pos != 0 && d.prev == v {
			d.count = 0
			d.state = rleRepeated
		}
		d.prev = v
		d.pos += uint32(d.bpp)
		return v

	case rleRepeated:
		bit := getBits(d.in, d.pos, 1)
		d.count++
		d.pos++
		if bit == 0 {
			return d.raw()
		}
		if d.count == rleRepeatBits {
			d.count = getBits(d.in, d.pos, rleCounterBits)
			d.pos += rleCounterBits
			if d.count == 0 {
				return d.raw()
			}
			d.state = rleCounter
		}
		return d.prev

	default:
		d.count--
		if d.count == 0 {
			return d.raw()
		}
		return d.prev
	}
}

// line decodes w values into out. A nil out skips the values.
func (d *rleDecoder) line(out []uint8, w int) {
	for i := 0; i < w; i++ {
		v := d.next()
		if out != nil {
			out[i] = v
		}
	}
}

// bitWriter appends bits most significant first.
type bitWriter struct {
	buf []byte
	n   uint32
}

func (w *bitWriter) write(v uint8, bits uint8) {
	for i := int(bits) - 1; i >= 0; i-- {
		if w.n&7 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 != 0 {
			w.buf[len(w.buf)-1] |= 0x80 >> (w.n & 7)
		}
		w.n++
	}
}

// EncodeRLE compresses coverage values (each < 1<<bpp) into the stream
// format read by the glyph renderer. The encoder runs the decoder's state
// machine and emits exactly the bits the decoder will consume.
func EncodeRLE(values []uint8, bpp uint8) []byte {
	var (
		w     bitWriter
		state = rleSingle
		prev  uint8
		count int
	)
	for i, v := range values {
		switch state {
		case rleSingle:
			w.write(v, bpp)
			if i > 0 && v == prev {
				state, count = rleRepeated, 0
			}
			prev = v

		case rleRepeated:
			count++
			if v != prev {
				w.write(0, 1)
				w.write(v, bpp)
				prev, state = v, rleSingle
				continue
			}
			w.write(1, 1)
			if count == rleRepeatBits {
				run := 0
				for j := i + 1; j < len(values) && values[j] == prev && run < rleCounterMax; j++ {
					run++
				}
				count = min(run+1, rleCounterMax)
				w.write(uint8(count), rleCounterBits)
				state = rleCounter
			}

		case rleCounter:
			count--
			if count == 0 {
				w.write(v, bpp)
				prev, state = v, rleSingle
			}
		}
	}
	return w.buf
}

// packRaw packs coverage values bpp bits each, most significant first.
func packRaw(values []uint8, bpp uint8) []byte {
	var w bitWriter
	for _, v := range values {
		w.write(v, bpp)
	}
	return w.buf
}
