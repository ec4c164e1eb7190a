package fbui

import (
	"sync/atomic"

	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/scene"
)

// Engine drives one framebuffer device: it owns the node tree, the pages
// and the sliced draw pass.
//
// Except for TickInc and FlushReady, an Engine must be used from a single
// goroutine.
type Engine struct {
	dev    Device
	screen geom.Area
	tree   *scene.Tree
	opts   options

	pages  map[scene.ID]*Page
	active *Page

	tick  atomic.Uint32
	ready [2]atomic.Bool
	swap  int

	stats  Stats
	closed bool
}

// Stats counts the work done by an Engine.
type Stats struct {
	// Frames is the number of draw passes.
	Frames uint64
	// Slices is the number of slices handed to the device.
	Slices uint64
	// Idle is the number of passes that found nothing to draw.
	Idle uint64
	// Elapsed is the total of ticks consumed by Handle.
	Elapsed uint64
}

// New validates dev and returns an engine with one empty, active page.
//
// An invalid device is logged and reported as a *ConfigError; no engine is
// returned. The page fails only if the node limit is below one.
func New(dev Device, opts ...Option) (*Engine, error) {
	if err := dev.validate(); err != nil {
		Logger().Error("fbui: device rejected", "err", err)
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{
		dev:    dev,
		screen: geom.Rect(0, 0, int16(dev.XRes), int16(dev.YRes)),
		tree:   scene.NewTree(o.maxDepth, o.maxNodes),
		opts:   o,
		pages:  make(map[scene.ID]*Page),
	}
	for i := range e.ready {
		e.ready[i].Store(true)
	}
	if _, err := e.NewPage(); err != nil {
		return nil, err
	}
	Logger().Debug("fbui: engine ready",
		"xres", dev.XRes, "yres", dev.YRes, "depth", dev.Depth.String(),
		"buffers", len(dev.Buffers), "capacity", dev.Capacity)
	return e, nil
}

// Close waits until the device has released every buffer and frees all
// nodes. The engine must not be used afterwards.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	for i := range e.dev.Buffers {
		e.waitReady(i)
	}
	for id := range e.pages {
		e.tree.Release(id)
	}
	e.pages = nil
	e.active = nil
	e.closed = true
	return nil
}

// Tree returns the node tree. Widgets use it to position and restyle their
// nodes.
func (e *Engine) Tree() *scene.Tree { return e.tree }

// Depth returns the pixel depth of the device.
func (e *Engine) Depth() pixel.Depth { return e.dev.Depth }

// Screen returns the screen rectangle.
func (e *Engine) Screen() geom.Area { return e.screen }

// NewPage allocates a page covering the screen. The first page becomes the
// active one.
func (e *Engine) NewPage() (*Page, error) {
	p := &Page{e: e, color: e.dev.Depth.White()}
	if e.opts.pageColor != nil {
		p.color = *e.opts.pageColor
	}
	id, err := e.tree.NewRoot(e.screen, p)
	if err != nil {
		Logger().Error("fbui: page creation failed", "err", err)
		return nil, err
	}
	p.id = id
	e.pages[id] = p
	if e.active == nil {
		e.active = p
	}
	return p, nil
}

// Create allocates a node under parent with drawer d. With parent set to
// scene.None it creates a page instead, ignoring d, and returns the page's
// ID.
func (e *Engine) Create(parent scene.ID, d scene.Drawer) (scene.ID, error) {
	if parent.IsNone() {
		p, err := e.NewPage()
		if err != nil {
			return scene.None, err
		}
		return p.id, nil
	}
	return e.tree.Create(parent, d)
}

// Page returns the page whose root node is id.
func (e *Engine) Page(id scene.ID) (*Page, bool) {
	p, ok := e.pages[id]
	return p, ok
}

// Active returns the page being displayed.
func (e *Engine) Active() *Page { return e.active }

// Load makes the page id the active one and schedules a full redraw.
func (e *Engine) Load(id scene.ID) error {
	p, ok := e.pages[id]
	if !ok {
		return ErrNotPage
	}
	e.active = p
	e.swap = 0
	e.tree.ResetDamage()
	e.tree.Invalidate(id)
	return nil
}

// Delete removes a node.
//
// Ordinary nodes are swept on the next pass. Deleting the active page (or
// passing scene.None) removes all of its children at once but keeps the
// page. Deleting another page frees it with its whole subtree immediately.
func (e *Engine) Delete(id scene.ID) {
	if id.IsNone() {
		id = e.active.id
	}
	if p, ok := e.pages[id]; ok && p != e.active {
		e.tree.Release(id)
		delete(e.pages, id)
		return
	}
	e.tree.Delete(id)
}

// TickInc adds ms to the elapsed-tick counter. It is safe to call from any
// goroutine.
func (e *Engine) TickInc(ms uint32) {
	e.tick.Add(ms)
}

// Handle runs one pass if at least the tick interval has elapsed since the
// last one, and reports whether anything was drawn. Calling it more often
// than the interval is cheap.
func (e *Engine) Handle() bool {
	for {
		t := e.tick.Load()
		if t < e.opts.interval {
			return false
		}
		// A TickInc between Load and here fails the swap; retry with it.
		if e.tick.CompareAndSwap(t, 0) {
			e.stats.Elapsed += uint64(t)
			break
		}
	}
	return e.pass()
}

// Refresh runs one pass regardless of the tick counter and reports whether
// anything was drawn.
func (e *Engine) Refresh() bool {
	return e.pass()
}

// FlushReady tells the engine that the device has finished with buffer
// buf, for devices with AsyncFlush set. It is safe to call from any
// goroutine.
func (e *Engine) FlushReady(buf int) {
	e.ready[buf&1].Store(true)
}

// Stats returns the engine's counters.
func (e *Engine) Stats() Stats { return e.stats }

// pass runs the animation hook, collects damage and draws it.
func (e *Engine) pass() bool {
	if e.opts.animate != nil {
		e.opts.animate()
	}
	if !e.tree.Collect(e.active.id) {
		e.stats.Idle++
		return false
	}
	e.draw()
	return true
}
