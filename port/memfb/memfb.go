// Package memfb is an in-memory framebuffer for fbui.
//
// It keeps a full copy of the screen that every flushed slice is written
// into, so tests and offline tools can inspect or save the frame.
//
// Example:
//
//	fb := memfb.New(240, 284, pixel.RGB565, memfb.WithCapacity(240*20))
//	e, err := fbui.New(fb.Device())
//	...
//	e.Refresh()
//	err = fb.SavePNG("frame.png")
package memfb

import (
	"image"
	"image/color"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/raster"
)

// Option configures a Framebuffer.
type Option func(*Framebuffer)

// WithCapacity sets the scratch capacity in pixels. The default is the
// whole screen.
func WithCapacity(px int) Option {
	return func(f *Framebuffer) {
		f.capacity = px
	}
}

// WithDoubleBuffer gives the device two scratch buffers.
func WithDoubleBuffer() Option {
	return func(f *Framebuffer) {
		f.buffers = 2
	}
}

// WithSwapBytes makes the device deliver byte-swapped RGB565 slices, which
// the framebuffer swaps back when storing them.
func WithSwapBytes() Option {
	return func(f *Framebuffer) {
		f.swap = true
	}
}

// WithFlushHook calls fn after every stored slice.
func WithFlushHook(fn func(x, y, w, h int)) Option {
	return func(f *Framebuffer) {
		f.hook = fn
	}
}

// Framebuffer is a screen held in memory.
type Framebuffer struct {
	frame    *raster.Pixmap
	capacity int
	buffers  int
	swap     bool
	hook     func(x, y, w, h int)
	flushes  int
}

// New returns a w×h framebuffer of depth d, cleared to zero.
func New(w, h int, d pixel.Depth, opts ...Option) *Framebuffer {
	f := &Framebuffer{
		frame:    raster.NewPixmap(int16(w), int16(h), d),
		capacity: w * h,
		buffers:  1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Device returns a device description that flushes into f. Each call
// allocates fresh scratch buffers.
func (f *Framebuffer) Device() fbui.Device {
	d := f.frame.Depth
	bufs := make([][]byte, f.buffers)
	for i := range bufs {
		bufs[i] = make([]byte, f.capacity*d.BytesPerPixel())
	}
	return fbui.Device{
		Buffers:   bufs,
		Capacity:  f.capacity,
		XRes:      int(f.frame.W),
		YRes:      int(f.frame.H),
		Depth:     d,
		Flush:     f.flush,
		SwapBytes: f.swap,
	}
}

func (f *Framebuffer) flush(x, y, w, h int, pix []byte) {
	bpp := f.frame.Depth.BytesPerPixel()
	stride := int(f.frame.W) * bpp
	for row := 0; row < h; row++ {
		src := pix[row*w*bpp : (row+1)*w*bpp]
		dst := f.frame.Pix[(y+row)*stride+x*bpp:]
		copy(dst, src)
		if f.swap && f.frame.Depth == pixel.RGB565 {
			pixel.SwapBytes16(dst[:len(src)])
		}
	}
	f.flushes++
	if f.hook != nil {
		f.hook(x, y, w, h)
	}
}

// Width returns the screen width.
func (f *Framebuffer) Width() int { return int(f.frame.W) }

// Height returns the screen height.
func (f *Framebuffer) Height() int { return int(f.frame.H) }

// Depth returns the pixel depth.
func (f *Framebuffer) Depth() pixel.Depth { return f.frame.Depth }

// Flushes returns the number of slices received.
func (f *Framebuffer) Flushes() int { return f.flushes }

// Pixmap returns the screen contents. The pixmap aliases f.
func (f *Framebuffer) Pixmap() *raster.Pixmap { return f.frame }

// At returns the pixel at (x, y).
func (f *Framebuffer) At(x, y int) pixel.Color {
	return f.frame.Load(x, y)
}

// ColorAt returns the pixel at (x, y) as a colour.
func (f *Framebuffer) ColorAt(x, y int) color.NRGBA {
	return f.frame.Depth.NRGBA(f.At(x, y))
}

// Image returns a copy of the screen.
func (f *Framebuffer) Image() *image.NRGBA {
	return f.frame.ToImage()
}

// SavePNG saves the screen to a PNG file.
func (f *Framebuffer) SavePNG(path string) error {
	return f.frame.SavePNG(path)
}
