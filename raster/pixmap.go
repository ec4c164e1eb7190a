package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
)

// Pixmap is an immutable bitmap stored in a native pixel layout.
type Pixmap struct {
	W, H  int16
	Depth pixel.Depth
	Pix   []byte
}

// NewPixmap allocates a w×h pixmap of depth d, filled with zero pixels.
func NewPixmap(w, h int16, d pixel.Depth) *Pixmap {
	return &Pixmap{W: w, H: h, Depth: d, Pix: make([]byte, int(w)*int(h)*d.BytesPerPixel())}
}

// PixmapFromImage converts img to a pixmap of depth d.
func PixmapFromImage(img image.Image, d pixel.Depth) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(int16(b.Dx()), int16(b.Dy()), d)
	bpp := d.BytesPerPixel()
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d.Store(pm.Pix, i, d.FromColor(img.At(x, y)))
			i += bpp
		}
	}
	return pm
}

// Load returns the raw pixel at (x, y). The point must be inside pm.
func (pm *Pixmap) Load(x, y int) pixel.Color {
	return pm.Depth.Load(pm.Pix, (y*int(pm.W)+x)*pm.Depth.BytesPerPixel())
}

// ToImage converts the pixmap to an opaque image.NRGBA.
func (pm *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(pm.W), int(pm.H)))
	for y := 0; y < int(pm.H); y++ {
		for x := 0; x < int(pm.W); x++ {
			img.SetNRGBA(x, y, pm.Depth.NRGBA(pm.Load(x, y)))
		}
	}
	return img
}

// SavePNG saves the pixmap to a PNG file.
func (pm *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, pm.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return f.Close()
}

// sampler maps screen pixels to source pixels of a pixmap centred on a
// target rect, converting depth when the pixmap and surface differ.
type sampler struct {
	pm     *Pixmap
	dx, dy int
	dst    pixel.Depth
}

func newSampler(pm *Pixmap, rect geom.Area, dst pixel.Depth) sampler {
	at := geom.AlignIn(rect, geom.Rect(0, 0, pm.W, pm.H), geom.AlignCenter)
	return sampler{pm: pm, dx: -int(at.X1), dy: -int(at.Y1), dst: dst}
}

// at returns the source colour for screen pixel (x, y); ok is false when
// the pixel falls outside the pixmap.
func (s sampler) at(x, y int) (c pixel.Color, ok bool) {
	px, py := x+s.dx, y+s.dy
	if px < 0 || py < 0 || px >= int(s.pm.W) || py >= int(s.pm.H) {
		return 0, false
	}
	c = s.pm.Load(px, py)
	if s.pm.Depth != s.dst {
		c = s.dst.RGB(s.pm.Depth.Channels(c))
	}
	return c, true
}

// FillPixmap blits pm centred on rect with nearest-pixel sampling and no
// scaling. Pixels of rect not covered by pm are left untouched.
func FillPixmap(s *Surface, clip, rect geom.Area, pm *Pixmap, alpha uint8) {
	if pm == nil || alpha == pixel.Transparent {
		return
	}
	a, ok := s.bounds(clip, rect)
	if !ok {
		return
	}
	src := newSampler(pm, rect, s.Depth)
	bpp := s.Depth.BytesPerPixel()
	for y := int(a.Y1); y <= int(a.Y2); y++ {
		i := s.offset(int(a.X1), y)
		for x := int(a.X1); x <= int(a.X2); x, i = x+1, i+bpp {
			if c, ok := src.at(x, y); ok {
				s.put(i, c, alpha)
			}
		}
	}
}
