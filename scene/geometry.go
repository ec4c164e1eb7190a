package scene

import (
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/internal/logging"
)

// Translate moves id and its whole subtree by (dx, dy).
//
// The subtree's depth is checked before any coordinate changes, so on
// ErrDepthExceeded the tree is untouched. Every moved node pushes its old
// rectangle and is marked dirty.
func (t *Tree) Translate(id ID, dx, dy int16) error {
	i := t.idx(id)
	if dx == 0 && dy == 0 {
		return nil
	}
	if _, ok := t.height(i); !ok {
		return ErrDepthExceeded
	}
	stack := append(t.stack[:0], i)
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[j]
		if j != i && n.sibling != nilIndex {
			stack = append(stack, n.sibling)
		}
		if n.child != nilIndex {
			stack = append(stack, n.child)
		}
		if !n.hidden {
			t.Push(n.rect)
		}
		n.rect = n.rect.Translate(dx, dy)
		n.dirty = true
	}
	t.stack = stack[:0]
	return nil
}

// SetAbsPos moves the top-left corner of id to screen position (x, y),
// taking the subtree along.
func (t *Tree) SetAbsPos(id ID, x, y int16) error {
	r := t.Node(id).rect
	return t.Translate(id, x-r.X1, y-r.Y1)
}

// SetPos moves the top-left corner of id to (x, y) relative to its parent's
// top-left corner. For a root the position is absolute.
func (t *Tree) SetPos(id ID, x, y int16) error {
	n := t.Node(id)
	if n.parent != nilIndex {
		p := t.nodes[n.parent].rect
		x += p.X1
		y += p.Y1
	}
	return t.SetAbsPos(id, x, y)
}

// Pos returns the top-left corner of id relative to its parent.
func (t *Tree) Pos(id ID) geom.Pos {
	n := t.Node(id)
	p := n.rect.Pos()
	if n.parent != nilIndex {
		pr := t.nodes[n.parent].rect
		p.X -= pr.X1
		p.Y -= pr.Y1
	}
	return p
}

// Align places id at one of the nine parent anchors. A reference anchor is
// logged and ignored.
func (t *Tree) Align(id ID, a geom.Align) error {
	n := t.Node(id)
	if n.parent == nilIndex || !a.IsParent() {
		logging.Get().Warn("scene: invalid align type", "node", id.String(), "align", a.String())
		return nil
	}
	to := geom.AlignIn(t.nodes[n.parent].rect, n.rect, a)
	return t.Translate(id, to.X1-n.rect.X1, to.Y1-n.rect.Y1)
}

// AlignTo lines id up with the rectangle of ref along one axis using one of
// the six reference anchors. When ref is the parent of id and a is a parent
// anchor, AlignTo is Align.
func (t *Tree) AlignTo(id, ref ID, a geom.Align) error {
	n := t.Node(id)
	r := t.Node(ref)
	if n.parent == int32(r.index) && a.IsParent() {
		return t.Align(id, a)
	}
	to, ok := geom.AlignRef(r.rect, n.rect, a)
	if !ok {
		logging.Get().Warn("scene: invalid align type", "node", id.String(), "align", a.String())
		return nil
	}
	return t.Translate(id, to.X1-n.rect.X1, to.Y1-n.rect.Y1)
}

// resize replaces the rectangle of a single node, pushing the old one.
// Children keep their positions.
func (t *Tree) resize(n *Node, r geom.Area) {
	if r == n.rect {
		return
	}
	if !n.hidden {
		t.Push(n.rect)
	}
	n.rect = r
	n.radius = geom.FixRadius(r.Width(), r.Height(), n.radius)
	n.dirty = true
}

// SetRect sets the screen rectangle of id without moving its children.
func (t *Tree) SetRect(id ID, r geom.Area) {
	t.resize(t.Node(id), r)
}

// SetSize keeps the top-left corner of id and sets its width and height.
func (t *Tree) SetSize(id ID, w, h int16) {
	n := t.Node(id)
	t.resize(n, geom.Rect(n.rect.X1, n.rect.Y1, w, h))
}

// SetWidth keeps the height of id and sets its width.
func (t *Tree) SetWidth(id ID, w int16) {
	n := t.Node(id)
	t.resize(n, geom.Rect(n.rect.X1, n.rect.Y1, w, n.rect.Height()))
}

// SetHeight keeps the width of id and sets its height.
func (t *Tree) SetHeight(id ID, h int16) {
	n := t.Node(id)
	t.resize(n, geom.Rect(n.rect.X1, n.rect.Y1, n.rect.Width(), h))
}

// Grow enlarges id by d pixels on every side; a negative d shrinks it.
func (t *Tree) Grow(id ID, d int16) {
	n := t.Node(id)
	t.resize(n, n.rect.Grow(d))
}

// SetRadius sets the corner radius of id, clamped with geom.FixRadius.
func (t *Tree) SetRadius(id ID, r int16) {
	n := t.Node(id)
	r = geom.FixRadius(n.rect.Width(), n.rect.Height(), r)
	if r == n.radius {
		return
	}
	n.radius = r
	n.dirty = true
}
