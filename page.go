package fbui

import (
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/raster"
	"github.com/gogpu/fbui/scene"
)

// Page is a root node covering the whole screen. It paints a background
// colour and, optionally, a pixmap centred on the screen.
type Page struct {
	id     scene.ID
	e      *Engine
	color  pixel.Color
	pixmap *raster.Pixmap
}

// ID returns the page's node, the parent for its top-level widgets.
func (p *Page) ID() scene.ID { return p.id }

// Color returns the background colour.
func (p *Page) Color() pixel.Color { return p.color }

// SetColor changes the background colour and marks the page dirty.
func (p *Page) SetColor(c pixel.Color) {
	p.color = c
	p.e.tree.Invalidate(p.id)
}

// Pixmap returns the background pixmap, or nil.
func (p *Page) Pixmap() *raster.Pixmap { return p.pixmap }

// SetPixmap sets the background pixmap, nil for none, and marks the page
// dirty. Screen pixels outside the pixmap keep the background colour.
func (p *Page) SetPixmap(pm *raster.Pixmap) {
	p.pixmap = pm
	p.e.tree.Invalidate(p.id)
}

// Draw implements scene.Drawer.
func (p *Page) Draw(s *raster.Surface, n *scene.Node, clip geom.Area) {
	raster.FillRect(s, clip, n.Rect(), p.color, pixel.Opaque)
	if p.pixmap != nil {
		raster.FillPixmap(s, clip, n.Rect(), p.pixmap, pixel.Opaque)
	}
}
