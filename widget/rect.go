package widget

import (
	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/raster"
	"github.com/gogpu/fbui/scene"
)

// Rect is a filled rectangle with an optional border, rounded corners and
// pixmap fill.
type Rect struct {
	id    scene.ID
	tree  *scene.Tree
	style raster.RectStyle
}

// NewRect creates an opaque black rectangle under parent, initially
// covering the parent.
func NewRect(e *fbui.Engine, parent scene.ID) (*Rect, error) {
	r := &Rect{
		tree: e.Tree(),
		style: raster.RectStyle{
			Color:       e.Depth().Black(),
			BorderColor: e.Depth().White(),
			Alpha:       pixel.Opaque,
		},
	}
	id, err := e.Create(parent, r)
	if err != nil {
		return nil, err
	}
	r.id = id
	return r, nil
}

// ID returns the rectangle's node.
func (r *Rect) ID() scene.ID { return r.id }

// Style returns the current style. Radius is the clamped node radius.
func (r *Rect) Style() raster.RectStyle {
	st := r.style
	st.Radius = r.tree.Node(r.id).Radius()
	return st
}

// SetColor sets the fill colour.
func (r *Rect) SetColor(c pixel.Color) {
	r.style.Color = c
	r.tree.Invalidate(r.id)
}

// SetBorder sets the border width and colour. A width of 0 removes it.
func (r *Rect) SetBorder(width int16, c pixel.Color) {
	r.style.Border = max(width, 0)
	r.style.BorderColor = c
	r.tree.Invalidate(r.id)
}

// SetRadius sets the corner radius. It is clamped to the node size.
func (r *Rect) SetRadius(radius int16) {
	r.tree.SetRadius(r.id, radius)
}

// SetAlpha sets the opacity of the whole rectangle.
func (r *Rect) SetAlpha(a uint8) {
	r.style.Alpha = a
	r.tree.Invalidate(r.id)
}

// SetPixmap fills the rectangle with pm instead of the colour; nil restores
// the colour fill.
func (r *Rect) SetPixmap(pm *raster.Pixmap) {
	r.style.Pixmap = pm
	r.tree.Invalidate(r.id)
}

// Draw implements scene.Drawer.
func (r *Rect) Draw(s *raster.Surface, n *scene.Node, clip geom.Area) {
	st := r.style
	st.Radius = n.Radius()
	raster.DrawRect(s, clip, n.Rect(), st)
}
