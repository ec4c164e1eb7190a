// Package fbui is a retained-mode 2D UI engine for small framebuffers.
//
// # Overview
//
// fbui keeps a tree of rectangular nodes (the scene), tracks which part of
// the screen changed since the last frame and recomposes only that region.
// The region is drawn in horizontal slices that fit a bounded scratch
// buffer, so a 240×284 RGB565 display can be driven with a few kilobytes of
// pixel memory. All drawing is integer arithmetic.
//
// # Quick Start
//
//	fb := memfb.New(240, 284, pixel.RGB565, 240*20)
//	e, err := fbui.New(fb.Device(), fbui.WithTickInterval(10))
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	page := e.Active()
//	r := widget.NewRect(e, page.ID())
//	...
//
//	for range time.Tick(10 * time.Millisecond) {
//	    e.TickInc(10)
//	    e.Handle()
//	}
//
// # Architecture
//
// The engine is organized into:
//   - geom: inclusive int16 rectangles, clipping and alignment
//   - pixel: packed colours and depth-specific blending
//   - raster: clipped fill primitives on a Surface
//   - font: bitmap fonts, UTF-8 decoding and glyph blits
//   - scene: the node tree and its damage accumulator
//   - fbui (this package): pages, the tick gate and the sliced draw pass
//
// A Device describes the framebuffer: one or two scratch buffers, their
// capacity in pixels, the screen resolution, the pixel depth and a Flush
// callback that receives each finished slice.
//
// # Concurrency
//
// An Engine is single-writer: the tree and the draw pass belong to one
// goroutine. TickInc and FlushReady are the only methods that may be
// called from elsewhere, such as a timer or a DMA completion handler.
package fbui
