package pixel

// Opaque and Transparent are the two blend factors with exact results.
const (
	Transparent uint8 = 0
	Opaque      uint8 = 255
)

// Blend mixes fg over bg with opacity a.
//
// a == Opaque returns fg exactly and a == Transparent returns bg exactly;
// every other factor goes through the depth's fixed-point mixer, which
// approximates bg + (fg-bg)*a/255 per channel.
func (d Depth) Blend(fg, bg Color, a uint8) Color {
	switch a {
	case Opaque:
		return fg
	case Transparent:
		return bg
	}
	return d.Mix(fg, bg, a)
}

// Mix is the raw per-depth fixed-point mixer without the exact shortcuts
// of Blend. Channel widths differ per depth, so each depth scales the
// factor to its own precision before the shift:
//
//	RGB332:   a>>5 over 3 bits for red and green, a>>6 over 2 bits for blue
//	RGB565:   a>>3 over 5 bits, all channels at once in a spread uint32
//	RGB888:   a over 8 bits
//	ARGB8888: a over 8 bits, alpha channel included
func (d Depth) Mix(fg, bg Color, a uint8) Color {
	switch d {
	case RGB332:
		return mix332(fg, bg, a)
	case RGB565:
		return mix565(fg, bg, a)
	case RGB888:
		return mix888(fg, bg, a) & 0xFFFFFF
	case ARGB8888:
		return mix888(fg, bg, a) | mixChannel(fg>>24, bg>>24, int32(a), 8)<<24
	}
	return bg
}

// mixChannel computes bg + (fg-bg)*k >> shift on one unpacked channel.
// The arithmetic is signed so the shift floors toward the background.
func mixChannel(fg, bg Color, k int32, shift uint) Color {
	f, b := int32(fg&0xFF), int32(bg&0xFF)
	return Color(b + ((f - b) * k >> shift))
}

func mix332(fg, bg Color, a uint8) Color {
	k3, k2 := int32(a>>5), int32(a>>6)
	r := mixChannel(fg>>5&0x7, bg>>5&0x7, k3, 3)
	g := mixChannel(fg>>2&0x7, bg>>2&0x7, k3, 3)
	b := mixChannel(fg&0x3, bg&0x3, k2, 2)
	return r<<5 | g<<2 | b
}

// mix565 spreads the three fields of both colours into one uint32 with gap
// bits between them (green moves to the upper half), so one multiply blends
// every channel. Borrows from negative differences land in the gaps and are
// masked away.
func mix565(fg, bg Color, a uint8) Color {
	const spread = 0x07E0F81F
	k := uint32(a >> 3)
	f := (uint32(fg) | uint32(fg)<<16) & spread
	b := (uint32(bg) | uint32(bg)<<16) & spread
	b += (f - b) * k >> 5
	b &= spread
	return Color(uint16(b | b>>16))
}

func mix888(fg, bg Color, a uint8) Color {
	k := int32(a)
	r := mixChannel(fg>>16, bg>>16, k, 8)
	g := mixChannel(fg>>8, bg>>8, k, 8)
	b := mixChannel(fg, bg, k, 8)
	return r<<16 | g<<8 | b
}
