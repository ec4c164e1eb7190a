package scene

// Z-order operations. Siblings are stored back to front, so "up" means one
// step closer to the end of the list.

// MoveUp swaps id with its next sibling. It is a no-op for the front-most
// child and for roots.
func (t *Tree) MoveUp(id ID) {
	i := t.idx(id)
	n := &t.nodes[i]
	if n.parent == nilIndex || n.sibling == nilIndex {
		return
	}
	next := n.sibling
	prev := t.prevSibling(i)
	n.sibling = t.nodes[next].sibling
	t.nodes[next].sibling = i
	t.relink(n.parent, prev, next)
	n.dirty = true
}

// MoveDown swaps id with its previous sibling. It is a no-op for the
// back-most child and for roots.
func (t *Tree) MoveDown(id ID) {
	i := t.idx(id)
	n := &t.nodes[i]
	if n.parent == nilIndex || t.nodes[n.parent].child == i {
		return
	}
	prev := t.prevSibling(i)
	t.nodes[prev].sibling = n.sibling
	n.sibling = prev
	t.relink(n.parent, t.prevSibling(prev), i)
	n.dirty = true
}

// MoveToFront makes id the last, top-most child of its parent.
func (t *Tree) MoveToFront(id ID) {
	i := t.idx(id)
	n := &t.nodes[i]
	if n.parent == nilIndex || n.sibling == nilIndex {
		return
	}
	p := n.parent
	t.unlink(i)
	t.addChild(p, i)
	n.dirty = true
}

// MoveToBack makes id the first, bottom-most child of its parent.
func (t *Tree) MoveToBack(id ID) {
	i := t.idx(id)
	n := &t.nodes[i]
	if n.parent == nilIndex || t.nodes[n.parent].child == i {
		return
	}
	p := n.parent
	t.unlink(i)
	n.parent = p
	n.sibling = t.nodes[p].child
	t.nodes[p].child = i
	n.dirty = true
}

// prevSibling returns the sibling linking to i, or nilIndex if i is the
// first child. The scan stops early once it reaches i.
func (t *Tree) prevSibling(i int32) int32 {
	prev := nilIndex
	for c := t.nodes[t.nodes[i].parent].child; c != i; c = t.nodes[c].sibling {
		prev = c
	}
	return prev
}

// relink points prev's sibling link, or the parent's child link when prev
// is nilIndex, at c.
func (t *Tree) relink(parent, prev, c int32) {
	if prev == nilIndex {
		t.nodes[parent].child = c
		return
	}
	t.nodes[prev].sibling = c
}
