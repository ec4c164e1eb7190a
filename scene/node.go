package scene

import (
	"fmt"

	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/raster"
)

// ID is a handle to a node in a Tree. The zero value is None.
//
// An ID stays valid until its node is freed. A freed slot is reused with a
// new generation, so an old ID never aliases the node that replaced it.
type ID struct {
	index uint32
	gen   uint32
}

// None is the ID that refers to no node.
var None ID

// IsNone reports whether id is None.
func (id ID) IsNone() bool {
	return id.gen == 0
}

// String returns "#index.gen", or "none".
func (id ID) String() string {
	if id.IsNone() {
		return "none"
	}
	return fmt.Sprintf("#%d.%d", id.index, id.gen)
}

// Drawer paints one node. Draw must write only inside clip ∩ n.Rect() and
// must not mutate the tree.
type Drawer interface {
	Draw(s *raster.Surface, n *Node, clip geom.Area)
}

// DrawerFunc adapts an ordinary function to the Drawer interface.
type DrawerFunc func(s *raster.Surface, n *Node, clip geom.Area)

// Draw calls f(s, n, clip).
func (f DrawerFunc) Draw(s *raster.Surface, n *Node, clip geom.Area) {
	f(s, n, clip)
}

// nilIndex terminates parent, child and sibling links.
const nilIndex int32 = -1

// Node is one element of the tree. Nodes live in the Tree's arena; the
// pointers handed to Drawers are valid only for the duration of the call.
type Node struct {
	rect    geom.Area
	parent  int32
	child   int32
	sibling int32
	radius  int16

	dirty     bool
	hidden    bool
	destroyed bool
	used      bool

	drawer Drawer
	gen    uint32
	index  uint32
}

// ID returns the node's handle.
func (n *Node) ID() ID { return ID{index: n.index, gen: n.gen} }

// Rect returns the node's screen rectangle.
func (n *Node) Rect() geom.Area { return n.rect }

// Radius returns the node's corner radius, already clamped to its size.
func (n *Node) Radius() int16 { return n.radius }

// Hidden reports whether the node and its subtree are skipped when drawing.
func (n *Node) Hidden() bool { return n.hidden }

// Dirty reports whether the node changed since the last Collect.
func (n *Node) Dirty() bool { return n.dirty }

// Destroyed reports whether the node is waiting to be swept.
func (n *Node) Destroyed() bool { return n.destroyed }

// Drawer returns the node's draw callback, which may be nil.
func (n *Node) Drawer() Drawer { return n.drawer }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == nilIndex }
