package scene

import (
	"fmt"

	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/internal/logging"
)

// Default limits used when NewTree is given a non-positive value.
const (
	DefaultMaxDepth = 16
	DefaultMaxNodes = 256
)

// Tree is a fixed-capacity arena of nodes plus the damage accumulator for
// the display it belongs to.
//
// A Tree is not safe for concurrent use; mutation and drawing must happen
// on one goroutine.
type Tree struct {
	nodes    []Node
	free     []int32
	maxDepth int
	live     int

	damage geom.Area

	// Preallocated worklists. stack serves every bounded walk; toFree
	// collects the nodes swept by Collect.
	stack  []int32
	levels []level
	paint  []paintItem
	toFree []int32
}

// level is a worklist entry that remembers its depth below the walk start.
type level struct {
	i int32
	d int
}

// NewTree returns an empty tree that holds at most maxNodes nodes with at
// most maxDepth levels (a root alone has depth 1).
func NewTree(maxDepth, maxNodes int) *Tree {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	t := &Tree{
		nodes:    make([]Node, maxNodes),
		free:     make([]int32, maxNodes),
		maxDepth: maxDepth,
		damage:   geom.Invalid,
		stack:    make([]int32, 0, maxDepth+1),
		levels:   make([]level, 0, maxDepth+2),
		paint:    make([]paintItem, 0, maxDepth+1),
		toFree:   make([]int32, 0, maxNodes),
	}
	for i := range t.nodes {
		t.nodes[i].index = uint32(i)
		t.free[maxNodes-1-i] = int32(i)
	}
	return t
}

// MaxDepth returns the depth bound of the tree.
func (t *Tree) MaxDepth() int { return t.maxDepth }

// Cap returns the node capacity of the tree.
func (t *Tree) Cap() int { return len(t.nodes) }

// Len returns the number of allocated nodes, including destroyed nodes that
// have not been swept yet.
func (t *Tree) Len() int { return t.live }

// Valid reports whether id refers to an allocated node.
func (t *Tree) Valid(id ID) bool {
	_, ok := t.Lookup(id)
	return ok
}

// Lookup returns the node for id, or false if id is None or stale.
func (t *Tree) Lookup(id ID) (*Node, bool) {
	if id.IsNone() || int(id.index) >= len(t.nodes) {
		return nil, false
	}
	n := &t.nodes[id.index]
	if !n.used || n.gen != id.gen {
		return nil, false
	}
	return n, true
}

// Node returns the node for id. It panics if id is None or stale.
func (t *Tree) Node(id ID) *Node {
	n, ok := t.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("scene: invalid node %v", id))
	}
	return n
}

func (t *Tree) idx(id ID) int32 {
	return int32(t.Node(id).index)
}

func (t *Tree) id(i int32) ID {
	if i == nilIndex {
		return None
	}
	return t.nodes[i].ID()
}

// Parent returns the parent of id, or None for a root.
func (t *Tree) Parent(id ID) ID {
	return t.id(t.Node(id).parent)
}

// alloc takes a slot off the free list.
func (t *Tree) alloc(rect geom.Area, d Drawer) (int32, error) {
	if len(t.free) == 0 {
		logging.Get().Error("scene: node allocation failed", "limit", len(t.nodes))
		return nilIndex, ErrAllocFailed
	}
	i := t.free[len(t.free)-1]
	t.free = t.free[:len(t.free)-1]
	n := &t.nodes[i]
	gen := n.gen + 1
	if gen == 0 {
		gen = 1
	}
	*n = Node{
		rect:    rect,
		parent:  nilIndex,
		child:   nilIndex,
		sibling: nilIndex,
		dirty:   true,
		used:    true,
		drawer:  d,
		gen:     gen,
		index:   uint32(i),
	}
	t.live++
	return i, nil
}

// release returns a slot to the free list. The generation is kept so the
// next alloc bumps it.
func (t *Tree) release(i int32) {
	n := &t.nodes[i]
	gen, index := n.gen, n.index
	*n = Node{gen: gen, index: index, parent: nilIndex, child: nilIndex, sibling: nilIndex}
	t.free = append(t.free, i)
	t.live--
}

// NewRoot allocates a parentless node covering rect, typically a page.
func (t *Tree) NewRoot(rect geom.Area, d Drawer) (ID, error) {
	i, err := t.alloc(rect, d)
	if err != nil {
		return None, err
	}
	return t.id(i), nil
}

// Create allocates a node as the front-most child of parent. The new node
// starts with the parent's rectangle and is dirty.
func (t *Tree) Create(parent ID, d Drawer) (ID, error) {
	p := t.idx(parent)
	if t.depth(p)+1 > t.maxDepth {
		return None, ErrDepthExceeded
	}
	i, err := t.alloc(t.nodes[p].rect, d)
	if err != nil {
		return None, err
	}
	t.addChild(p, i)
	return t.id(i), nil
}

// SetDrawer replaces the draw callback of id and marks it dirty.
func (t *Tree) SetDrawer(id ID, d Drawer) {
	n := t.Node(id)
	n.drawer = d
	n.dirty = true
}

// depth returns the number of nodes on the path from the root to i.
func (t *Tree) depth(i int32) int {
	d := 0
	for ; i != nilIndex; i = t.nodes[i].parent {
		d++
	}
	return d
}

// height returns the number of levels in the subtree rooted at i, or false
// if walking it needs more than maxDepth worklist entries.
func (t *Tree) height(i int32) (int, bool) {
	stack := append(t.levels[:0], level{i, 1})
	h := 0
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		h = max(h, it.d)
		n := &t.nodes[it.i]
		if it.i != i && n.sibling != nilIndex {
			stack = append(stack, level{n.sibling, it.d})
		}
		if n.child != nilIndex {
			stack = append(stack, level{n.child, it.d + 1})
		}
		if len(stack) > t.maxDepth {
			return 0, false
		}
	}
	return h, true
}

// isAncestor reports whether a is i or one of its ancestors.
func (t *Tree) isAncestor(a, i int32) bool {
	for ; i != nilIndex; i = t.nodes[i].parent {
		if i == a {
			return true
		}
	}
	return false
}

// addChild appends c to the end of p's child list, making it front-most.
func (t *Tree) addChild(p, c int32) {
	n := &t.nodes[c]
	n.parent = p
	n.sibling = nilIndex
	pn := &t.nodes[p]
	if pn.child == nilIndex {
		pn.child = c
		return
	}
	last := pn.child
	for t.nodes[last].sibling != nilIndex {
		last = t.nodes[last].sibling
	}
	t.nodes[last].sibling = c
}

// unlink removes c from its parent's child list. c keeps its own subtree.
func (t *Tree) unlink(c int32) {
	n := &t.nodes[c]
	if n.parent == nilIndex {
		return
	}
	pn := &t.nodes[n.parent]
	if pn.child == c {
		pn.child = n.sibling
	} else {
		prev := pn.child
		for prev != nilIndex && t.nodes[prev].sibling != c {
			prev = t.nodes[prev].sibling
		}
		if prev == nilIndex {
			panic(fmt.Sprintf("scene: node %v missing from its parent's child list", n.ID()))
		}
		t.nodes[prev].sibling = n.sibling
	}
	n.parent = nilIndex
	n.sibling = nilIndex
}

// Reparent moves id and its subtree to the front of parent's children.
// Screen coordinates are unchanged.
func (t *Tree) Reparent(id, parent ID) error {
	i, p := t.idx(id), t.idx(parent)
	if t.isAncestor(i, p) {
		return ErrCycle
	}
	h, ok := t.height(i)
	if !ok || t.depth(p)+h > t.maxDepth {
		return ErrDepthExceeded
	}
	t.Push(t.nodes[i].rect)
	t.unlink(i)
	t.addChild(p, i)
	t.nodes[i].dirty = true
	return nil
}

// ChildCount returns the number of direct children of id.
func (t *Tree) ChildCount(id ID) int {
	c := 0
	for i := t.Node(id).child; i != nilIndex; i = t.nodes[i].sibling {
		c++
	}
	return c
}

// ForEachChild calls fn for each direct child of id in back-to-front order
// until fn returns false. fn must not change the child list.
func (t *Tree) ForEachChild(id ID, fn func(ID) bool) {
	for i := t.Node(id).child; i != nilIndex; i = t.nodes[i].sibling {
		if !fn(t.id(i)) {
			return
		}
	}
}

// Invalidate marks id dirty so it is redrawn on the next pass.
func (t *Tree) Invalidate(id ID) {
	t.Node(id).dirty = true
}

// SetHidden shows or hides id with its subtree. Hiding pushes the node's
// rectangle at once, since no later walk visits a hidden node.
func (t *Tree) SetHidden(id ID, hidden bool) {
	n := t.Node(id)
	if n.hidden == hidden {
		return
	}
	n.hidden = hidden
	if hidden {
		t.Push(n.rect)
		return
	}
	n.dirty = true
}

// Delete schedules id for destruction on the next Collect.
//
// Deleting a root instead frees all of its children at once and marks the
// root dirty; the root itself stays allocated.
func (t *Tree) Delete(id ID) {
	n := t.Node(id)
	if n.parent == nilIndex {
		t.Push(n.rect)
		for c := n.child; c != nilIndex; {
			next := t.nodes[c].sibling
			t.freeSubtree(c)
			c = next
		}
		n.child = nilIndex
		n.dirty = true
		return
	}
	n.destroyed = true
	n.dirty = true
}

// Release frees the root id and its whole subtree immediately.
// It panics if id has a parent.
func (t *Tree) Release(id ID) {
	i := t.idx(id)
	if t.nodes[i].parent != nilIndex {
		panic(fmt.Sprintf("scene: release of attached node %v", id))
	}
	t.freeSubtree(i)
}

// freeSubtree releases i and every descendant. i must already be detached
// or be about to be forgotten by its parent.
func (t *Tree) freeSubtree(i int32) {
	base := len(t.toFree)
	t.toFree = append(t.toFree, i)
	for k := base; k < len(t.toFree); k++ {
		for c := t.nodes[t.toFree[k]].child; c != nilIndex; c = t.nodes[c].sibling {
			t.toFree = append(t.toFree, c)
		}
	}
	for _, j := range t.toFree[base:] {
		t.release(j)
	}
	t.toFree = t.toFree[:base]
}
