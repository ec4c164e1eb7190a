package fbui

import (
	"github.com/gogpu/fbui/pixel"
)

// FlushFunc receives a finished slice: w×h pixels at screen position (x, y),
// packed row by row in the device's depth. pix aliases one of the device
// buffers and may be reused once the buffer is marked ready again.
type FlushFunc func(x, y, w, h int, pix []byte)

// Device describes a framebuffer the engine draws into.
//
// Buffers holds one or two scratch buffers of at least Capacity pixels
// each. With two buffers the engine alternates between them so that one can
// be flushed while the other is drawn.
//
// When AsyncFlush is false the buffer is considered free as soon as Flush
// returns. When it is true the engine waits, before reusing a buffer, until
// the consumer calls Engine.FlushReady for it.
type Device struct {
	Buffers  [][]byte
	Capacity int
	XRes     int
	YRes     int
	Depth    pixel.Depth
	Flush    FlushFunc

	AsyncFlush bool

	// SwapBytes swaps the two bytes of every RGB565 pixel before Flush,
	// for panels that expect big-endian pixels. Ignored at other depths.
	SwapBytes bool
}

// validate checks d and returns a *ConfigError for the first bad field.
func (d *Device) validate() error {
	switch {
	case len(d.Buffers) == 0:
		return &ConfigError{Field: "Buffers", Err: ErrNoBuffer}
	case len(d.Buffers) > 2:
		return &ConfigError{Field: "Buffers", Err: ErrTooManyBuffers}
	case d.XRes <= 0 || d.YRes <= 0 || d.XRes > 1<<14 || d.YRes > 1<<14:
		return &ConfigError{Field: "Resolution", Err: ErrResolution}
	case !d.Depth.Valid():
		return &ConfigError{Field: "Depth", Err: ErrDepth}
	case d.Capacity < d.XRes:
		return &ConfigError{Field: "Capacity", Err: ErrCapacity}
	case d.Flush == nil:
		return &ConfigError{Field: "Flush", Err: ErrNoFlush}
	}
	need := d.Capacity * d.Depth.BytesPerPixel()
	for _, b := range d.Buffers {
		if len(b) < need {
			return &ConfigError{Field: "Buffers", Err: ErrBufferSize}
		}
	}
	return nil
}
