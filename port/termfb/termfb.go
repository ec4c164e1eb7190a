// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termfb shows an fbui framebuffer in a terminal.
//
// Every terminal cell displays two vertically stacked pixels with the
// upper half block character: the foreground colour is the upper pixel and
// the background colour the lower one. A 240×284 screen needs a 240×142
// cell terminal with true-colour support.
package termfb

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/port/memfb"
)

const upperHalf = '▀'

// Terminal mirrors a framebuffer into a tcell screen.
type Terminal struct {
	screen tcell.Screen
	fb     *memfb.Framebuffer
}

// New returns a w×h framebuffer of depth d that paints into screen, which
// must already be initialized. opts configure the underlying memfb.
func New(screen tcell.Screen, w, h int, d pixel.Depth, opts ...memfb.Option) *Terminal {
	t := &Terminal{screen: screen}
	opts = append(opts, memfb.WithFlushHook(t.paint))
	t.fb = memfb.New(w, h, d, opts...)
	return t
}

// Device returns the device to pass to fbui.New.
func (t *Terminal) Device() fbui.Device { return t.fb.Device() }

// Framebuffer returns the in-memory copy of the screen.
func (t *Terminal) Framebuffer() *memfb.Framebuffer { return t.fb }

// paint redraws the cells covering the flushed rows.
func (t *Terminal) paint(x, y, w, h int) {
	d := t.fb.Depth()
	for cy := y / 2; cy <= (y+h-1)/2; cy++ {
		for cx := x; cx < x+w; cx++ {
			top := t.cellColor(d, cx, cy*2)
			bot := tcell.ColorReset
			if cy*2+1 < t.fb.Height() {
				bot = t.cellColor(d, cx, cy*2+1)
			}
			st := tcell.StyleDefault.Foreground(top).Background(bot)
			t.screen.SetContent(cx, cy, upperHalf, nil, st)
		}
	}
	t.screen.Show()
}

func (t *Terminal) cellColor(d pixel.Depth, x, y int) tcell.Color {
	r, g, b := d.Channels(t.fb.At(x, y))
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Run drives e every tick until ctx is done or the user presses Escape,
// q or Ctrl-C.
func (t *Terminal) Run(ctx context.Context, e *fbui.Engine, tick time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	quit := make(chan struct{})
	go func() {
		defer close(quit)
		for {
			switch ev := t.screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		}
	}()

	ms := uint32(tick / time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-quit:
			return nil
		case <-ticker.C:
			e.TickInc(ms)
			e.Handle()
		}
	}
}
