// Package ebitenfb shows an fbui framebuffer in a desktop window using
// Ebitengine.
package ebitenfb

import (
	"context"
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/port/memfb"
)

// ErrWindowClosed is returned by Run when ctx ends the game loop.
var ErrWindowClosed = errors.New("ebitenfb: window closed")

// Window is an ebiten.Game that drives an engine and displays its frame.
type Window struct {
	mu     sync.Mutex
	fb     *memfb.Framebuffer
	engine *fbui.Engine
	ctx    context.Context
	rgba   []byte
	dirty  bool
	title  string
	scale  int
}

// New returns a w×h framebuffer of depth d backed by a window. Pixels are
// shown scale times larger. opts configure the underlying memfb.
func New(w, h int, d pixel.Depth, title string, scale int, opts ...memfb.Option) *Window {
	win := &Window{
		rgba:  make([]byte, w*h*4),
		title: title,
		scale: max(scale, 1),
	}
	opts = append(opts, memfb.WithFlushHook(win.copyRect))
	win.fb = memfb.New(w, h, d, opts...)
	return win
}

// Device returns the device to pass to fbui.New.
func (w *Window) Device() fbui.Device { return w.fb.Device() }

// Framebuffer returns the in-memory copy of the screen.
func (w *Window) Framebuffer() *memfb.Framebuffer { return w.fb }

// copyRect converts the flushed rows to RGBA for the next Draw.
func (w *Window) copyRect(x, y, rw, rh int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.fb.Depth()
	stride := w.fb.Width() * 4
	for py := y; py < y+rh; py++ {
		i := py*stride + x*4
		for px := x; px < x+rw; px++ {
			r, g, b := d.Channels(w.fb.At(px, py))
			w.rgba[i], w.rgba[i+1], w.rgba[i+2], w.rgba[i+3] = r, g, b, 0xFF
			i += 4
		}
	}
	w.dirty = true
}

// Update implements ebiten.Game. Each game tick advances the engine by one
// tick period.
func (w *Window) Update() error {
	if w.ctx != nil {
		select {
		case <-w.ctx.Done():
			return ErrWindowClosed
		default:
		}
	}
	w.engine.TickInc(uint32(1000 / ebiten.TPS()))
	w.engine.Handle()
	return nil
}

// Draw implements ebiten.Game. The screen is not cleared between frames,
// so an unchanged frame is not uploaded again.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if pix := w.pending(); pix != nil {
		screen.WritePixels(pix)
	}
}

// pending returns the frame if a flush changed it since the last call, and
// nil otherwise. w.mu must be held.
func (w *Window) pending() []byte {
	if !w.dirty {
		return nil
	}
	w.dirty = false
	return w.rgba
}

// Layout implements ebiten.Game.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.fb.Width(), w.fb.Height()
}

// Run opens the window and drives e until the window is closed or ctx is
// done. It must be called from the main goroutine.
func (w *Window) Run(ctx context.Context, e *fbui.Engine) error {
	w.engine = e
	w.ctx = ctx
	ebiten.SetWindowSize(w.fb.Width()*w.scale, w.fb.Height()*w.scale)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetScreenClearedEveryFrame(false)
	err := ebiten.RunGame(w)
	if errors.Is(err, ErrWindowClosed) {
		return nil
	}
	return err
}
