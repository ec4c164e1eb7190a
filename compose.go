// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fbui

import (
	"runtime"

	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/raster"
)

// draw repaints the accumulated damage of the active page in row slices
// and resets the accumulator.
//
// Each slice is as tall as the scratch capacity allows for the damage
// width. Before a buffer is reused the engine waits for its ready flag;
// the wait has no timeout, so an async device that never calls FlushReady
// stalls drawing.
func (e *Engine) draw() {
	defer e.tree.ResetDamage()

	root := e.tree.Node(e.active.id)
	dirty := e.tree.Damage()
	if !dirty.SelfClip(root.Rect()) || !dirty.SelfClip(e.screen) {
		return
	}
	w := int(dirty.Width())
	rows := e.dev.Capacity / w
	bpp := e.dev.Depth.BytesPerPixel()
	slices := 0

	for y := int(dirty.Y1); y <= int(dirty.Y2); y += rows {
		h := min(rows, int(dirty.Y2)-y+1)
		e.waitReady(e.swap)
		e.ready[e.swap].Store(false)

		pix := e.dev.Buffers[e.swap][:w*h*bpp]
		s := raster.NewSurface(pix, e.dev.Depth, dirty.X1, int16(y), int16(w), int16(h))
		e.tree.Paint(e.active.id, s, dirty)

		if e.dev.SwapBytes && e.dev.Depth == pixel.RGB565 {
			pixel.SwapBytes16(pix)
		}
		e.dev.Flush(int(dirty.X1), y, w, h, pix)
		if !e.dev.AsyncFlush {
			e.ready[e.swap].Store(true)
		}
		if len(e.dev.Buffers) == 2 {
			e.swap ^= 1
		}
		slices++
	}

	e.stats.Frames++
	e.stats.Slices += uint64(slices)
	Logger().Debug("fbui: frame drawn",
		"x1", dirty.X1, "y1", dirty.Y1, "x2", dirty.X2, "y2", dirty.Y2,
		"slices", slices)
}

// waitReady spins until buffer i is released by the device.
func (e *Engine) waitReady(i int) {
	for !e.ready[i].Load() {
		runtime.Gosched()
	}
}
