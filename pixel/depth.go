// Package pixel defines the packed colour formats a panel can use and the
// depth-specific arithmetic for storing and blending them.
//
// A Color is always the native value of the configured Depth. The same
// 24-bit RGB triple therefore has a different Color for each Depth; use
// Depth.RGB to build one and Depth.Channels to take it apart.
package pixel

import "fmt"

// Depth is the panel pixel depth in bits.
type Depth uint8

const (
	// RGB332 packs red:3 green:3 blue:2 into one byte.
	RGB332 Depth = 8
	// RGB565 packs red:5 green:6 blue:5 into a little-endian uint16.
	RGB565 Depth = 16
	// RGB888 stores blue, green, red bytes in that order.
	RGB888 Depth = 24
	// ARGB8888 stores blue, green, red, alpha bytes (a little-endian 0xAARRGGBB).
	ARGB8888 Depth = 32
)

// Color is a packed pixel value in the layout of some Depth.
type Color uint32

// Valid reports whether d is one of the supported depths.
func (d Depth) Valid() bool {
	switch d {
	case RGB332, RGB565, RGB888, ARGB8888:
		return true
	}
	return false
}

// String returns the format name.
func (d Depth) String() string {
	switch d {
	case RGB332:
		return "RGB332"
	case RGB565:
		return "RGB565"
	case RGB888:
		return "RGB888"
	case ARGB8888:
		return "ARGB8888"
	}
	return fmt.Sprintf("Depth(%d)", uint8(d))
}

// BytesPerPixel returns the storage size of one pixel.
func (d Depth) BytesPerPixel() int {
	return int(d) >> 3
}

// RGB packs 8-bit channels into a Color, dropping low bits the depth cannot
// hold. ARGB8888 colours are fully opaque.
func (d Depth) RGB(r, g, b uint8) Color {
	switch d {
	case RGB332:
		return Color(r>>5)<<5 | Color(g>>5)<<2 | Color(b>>6)
	case RGB565:
		return Color(r>>3)<<11 | Color(g>>2)<<5 | Color(b>>3)
	case RGB888:
		return Color(r)<<16 | Color(g)<<8 | Color(b)
	case ARGB8888:
		return 0xFF<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
	}
	return 0
}

// Channels expands c back to 8-bit red, green and blue. Low bits are
// replicated so that full-scale values map to 255.
func (d Depth) Channels(c Color) (r, g, b uint8) {
	switch d {
	case RGB332:
		r3, g3, b2 := uint8(c>>5)&0x7, uint8(c>>2)&0x7, uint8(c)&0x3
		return r3<<5 | r3<<2 | r3>>1, g3<<5 | g3<<2 | g3>>1, b2<<6 | b2<<4 | b2<<2 | b2
	case RGB565:
		r5, g6, b5 := uint8(c>>11)&0x1F, uint8(c>>5)&0x3F, uint8(c)&0x1F
		return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
	case RGB888, ARGB8888:
		return uint8(c >> 16), uint8(c >> 8), uint8(c)
	}
	return 0, 0, 0
}

// Load reads the pixel stored at byte offset i of buf.
func (d Depth) Load(buf []byte, i int) Color {
	switch d {
	case RGB332:
		return Color(buf[i])
	case RGB565:
		return Color(buf[i]) | Color(buf[i+1])<<8
	case RGB888:
		return Color(buf[i]) | Color(buf[i+1])<<8 | Color(buf[i+2])<<16
	case ARGB8888:
		return Color(buf[i]) | Color(buf[i+1])<<8 | Color(buf[i+2])<<16 | Color(buf[i+3])<<24
	}
	return 0
}

// Store writes c at byte offset i of buf.
func (d Depth) Store(buf []byte, i int, c Color) {
	switch d {
	case RGB332:
		buf[i] = byte(c)
	case RGB565:
		buf[i] = byte(c)
		buf[i+1] = byte(c >> 8)
	case RGB888:
		buf[i] = byte(c)
		buf[i+1] = byte(c >> 8)
		buf[i+2] = byte(c >> 16)
	case ARGB8888:
		buf[i] = byte(c)
		buf[i+1] = byte(c >> 8)
		buf[i+2] = byte(c >> 16)
		buf[i+3] = byte(c >> 24)
	}
}

// SwapBytes16 reverses the byte order of every 16-bit pixel in buf. Some
// SPI panels expect big-endian RGB565.
func SwapBytes16(buf []byte) {
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i], buf[i+1] = buf[i+1], buf[i]
	}
}
