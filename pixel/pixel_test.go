package pixel

import (
	"image/color"
	"math/rand"
	"testing"
)

var allDepths = []Depth{RGB332, RGB565, RGB888, ARGB8888}

// fields splits a packed colour into its raw (unscaled) channel values.
func fields(d Depth, c Color) [4]uint32 {
	v := uint32(c)
	switch d {
	case RGB332:
		return [4]uint32{v >> 5 & 7, v >> 2 & 7, v & 3}
	case RGB565:
		return [4]uint32{v >> 11 & 0x1F, v >> 5 & 0x3F, v & 0x1F}
	case RGB888:
		return [4]uint32{v >> 16 & 0xFF, v >> 8 & 0xFF, v & 0xFF}
	default:
		return [4]uint32{v >> 16 & 0xFF, v >> 8 & 0xFF, v & 0xFF, v >> 24}
	}
}

func mask(d Depth) Color {
	if d == ARGB8888 {
		return 0xFFFFFFFF
	}
	return 1<<uint(d) - 1
}

func TestBlend_Endpoints(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, d := range allDepths {
		t.Run(d.String(), func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				fg := Color(r.Uint32()) & mask(d)
				bg := Color(r.Uint32()) & mask(d)
				if got := d.Blend(fg, bg, Opaque); got != fg {
					t.Fatalf("Blend(%#x, %#x, 255) = %#x, want fg", fg, bg, got)
				}
				if got := d.Blend(fg, bg, Transparent); got != bg {
					t.Fatalf("Blend(%#x, %#x, 0) = %#x, want bg", fg, bg, got)
				}
			}
		})
	}
}

func TestBlend_ChannelsBetweenEndpoints(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, d := range allDepths {
		t.Run(d.String(), func(t *testing.T) {
			for i := 0; i < 5000; i++ {
				fg := Color(r.Uint32()) & mask(d)
				bg := Color(r.Uint32()) & mask(d)
				a := uint8(r.Intn(256))
				got := fields(d, d.Blend(fg, bg, a))
				f, b := fields(d, fg), fields(d, bg)
				for ch := range got {
					lo, hi := min(f[ch], b[ch]), max(f[ch], b[ch])
					if got[ch] < lo || got[ch] > hi {
						t.Fatalf("Blend(%#x, %#x, %d) channel %d = %d, want in [%d, %d]",
							fg, bg, a, ch, got[ch], lo, hi)
					}
				}
			}
		})
	}
}

func TestBlend_Monotonic(t *testing.T) {
	for _, d := range allDepths {
		t.Run(d.String(), func(t *testing.T) {
			white, black := d.White(), d.Black()
			prev := uint32(0)
			for a := 0; a < 256; a++ {
				g := fields(d, d.Blend(white, black, uint8(a)))[1]
				if g < prev {
					t.Fatalf("green decreased at a=%d: %d < %d", a, g, prev)
				}
				prev = g
			}
		})
	}
}

func TestBlend_Known(t *testing.T) {
	tests := []struct {
		d      Depth
		fg, bg Color
		a      uint8
		want   Color
	}{
		{RGB565, 0xFFFF, 0x0000, 128, 0x7BEF},
		{RGB888, 0xFFFFFF, 0x000000, 128, 0x7F7F7F},
		{RGB888, 0x000000, 0xFFFFFF, 128, 0x7F7F7F},
		{RGB332, 0xFF, 0x00, 128, 0x6D},
		{ARGB8888, 0xFFFFFFFF, 0x00000000, 128, 0x7F7F7F7F},
	}
	for _, tt := range tests {
		if got := tt.d.Blend(tt.fg, tt.bg, tt.a); got != tt.want {
			t.Errorf("%v.Blend(%#x, %#x, %d) = %#x, want %#x", tt.d, tt.fg, tt.bg, tt.a, got, tt.want)
		}
	}
}

func TestRGB_Channels(t *testing.T) {
	tests := []struct {
		d       Depth
		r, g, b uint8
		want    Color
	}{
		{RGB332, 0xFF, 0xFF, 0xFF, 0xFF},
		{RGB332, 0xFF, 0x00, 0x00, 0xE0},
		{RGB565, 0xFF, 0x00, 0x00, 0xF800},
		{RGB565, 0x00, 0xFF, 0x00, 0x07E0},
		{RGB565, 0x00, 0x00, 0xFF, 0x001F},
		{RGB888, 0x12, 0x34, 0x56, 0x123456},
		{ARGB8888, 0x12, 0x34, 0x56, 0xFF123456},
	}
	for _, tt := range tests {
		got := tt.d.RGB(tt.r, tt.g, tt.b)
		if got != tt.want {
			t.Errorf("%v.RGB(%#x, %#x, %#x) = %#x, want %#x", tt.d, tt.r, tt.g, tt.b, got, tt.want)
		}
	}
	for _, d := range allDepths {
		if r, g, b := d.Channels(d.White()); r != 0xFF || g != 0xFF || b != 0xFF {
			t.Errorf("%v white channels = %d,%d,%d", d, r, g, b)
		}
		if r, g, b := d.Channels(d.Black()); r != 0 || g != 0 || b != 0 {
			t.Errorf("%v black channels = %d,%d,%d", d, r, g, b)
		}
	}
}

func TestLoadStore(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, d := range allDepths {
		bpp := d.BytesPerPixel()
		buf := make([]byte, 4*bpp)
		for i := 0; i < 100; i++ {
			c := Color(r.Uint32()) & mask(d)
			off := r.Intn(4) * bpp
			d.Store(buf, off, c)
			if got := d.Load(buf, off); got != c {
				t.Fatalf("%v: Load after Store = %#x, want %#x", d, got, c)
			}
		}
	}

	buf := make([]byte, 3)
	RGB888.Store(buf, 0, 0x112233)
	if buf[0] != 0x33 || buf[1] != 0x22 || buf[2] != 0x11 {
		t.Errorf("RGB888 byte order = %x, want 332211", buf)
	}
}

func TestSwapBytes16(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	SwapBytes16(buf)
	want := []byte{2, 1, 4, 3, 5}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("SwapBytes16 = %v, want %v", buf, want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := RGB565.ParseHex("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if c != 0xF800 {
		t.Errorf("ParseHex(#ff0000) = %#x, want 0xF800", c)
	}
	if _, err := RGB565.ParseHex("nope"); err == nil {
		t.Error("ParseHex(nope) succeeded")
	}
}

func TestFromColor(t *testing.T) {
	got := ARGB8888.FromColor(color.NRGBA{R: 1, G: 2, B: 3, A: 0x80})
	if got != 0x80010203 {
		t.Errorf("FromColor = %#x, want 0x80010203", got)
	}
	if got := RGB888.NRGBA(0x010203); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 0xFF}) {
		t.Errorf("NRGBA = %v", got)
	}
}

func BenchmarkBlend565(b *testing.B) {
	var c Color
	for i := 0; i < b.N; i++ {
		c = RGB565.Blend(0xF81F, c, uint8(i))
	}
	_ = c
}
