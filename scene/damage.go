// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/raster"
)

// Push folds a into the damage accumulator. Empty areas are ignored.
func (t *Tree) Push(a geom.Area) {
	if a.Empty() {
		return
	}
	t.damage.SelfMerge(a)
}

// Damage returns the bounding box of every area pushed since the last
// ResetDamage, or geom.Invalid if there is none.
func (t *Tree) Damage() geom.Area {
	return t.damage
}

// ResetDamage empties the damage accumulator.
func (t *Tree) ResetDamage() {
	t.damage = geom.Invalid
}

// Collect walks the tree below root and folds every change into the damage
// accumulator.
//
// Destroyed nodes push their rectangle and are unlinked during the walk; they
// and their subtrees are freed once the walk is over. Dirty visible nodes
// push their rectangle and become clean. Hidden subtrees are skipped.
// Collect reports whether the accumulator holds anything to redraw, which
// includes areas pushed directly since the last ResetDamage.
func (t *Tree) Collect(root ID) bool {
	r := t.idx(root)
	changed := false
	stack := append(t.stack[:0], r)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[i]
		if i != r && n.sibling != nilIndex {
			stack = append(stack, n.sibling)
		}
		if n.destroyed {
			t.Push(n.rect)
			t.unlink(i)
			t.toFree = append(t.toFree, i)
			changed = true
			continue
		}
		if n.hidden {
			continue
		}
		if n.dirty {
			t.Push(n.rect)
			n.dirty = false
			changed = true
		}
		if n.child != nilIndex {
			stack = append(stack, n.child)
		}
	}
	t.stack = stack[:0]
	t.sweep()
	return changed || !t.damage.Empty()
}

// sweep frees the nodes queued by Collect together with their subtrees.
func (t *Tree) sweep() {
	if len(t.toFree) == 0 {
		return
	}
	for k := 0; k < len(t.toFree); k++ {
		for c := t.nodes[t.toFree[k]].child; c != nilIndex; c = t.nodes[c].sibling {
			t.toFree = append(t.toFree, c)
		}
	}
	for _, i := range t.toFree {
		t.release(i)
	}
	t.toFree = t.toFree[:0]
}

// paintItem is a pending node together with its draw clip.
type paintItem struct {
	i    int32
	clip geom.Area
}

// Paint draws the tree below root into s, restricted to dirty.
//
// Nodes are visited depth-first in back-to-front sibling order. A node is
// drawn when it is visible and overlaps s; its Drawer gets the clip
// parent.Rect() ∩ dirty (dirty itself for the root). Children of a node that
// is hidden, does not overlap s or does not overlap dirty are skipped.
func (t *Tree) Paint(root ID, s *raster.Surface, dirty geom.Area) {
	r := t.idx(root)
	sa := s.Area()
	stack := append(t.paint[:0], paintItem{r, dirty})
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[it.i]
		if it.i != r && n.sibling != nilIndex {
			stack = append(stack, paintItem{n.sibling, it.clip})
		}
		if n.hidden || n.destroyed || !n.rect.Overlaps(sa) {
			continue
		}
		if n.drawer != nil {
			n.drawer.Draw(s, n, it.clip)
		}
		if n.child == nilIndex {
			continue
		}
		if clip, ok := n.rect.Clip(dirty); ok {
			stack = append(stack, paintItem{n.child, clip})
		}
	}
	t.paint = stack[:0]
}
