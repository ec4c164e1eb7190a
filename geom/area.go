// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the integer rectangle arithmetic shared by every
// other package: intersection, self-clip, union and alignment.
//
// All coordinates are inclusive and 16-bit signed, matching the panel sizes
// the engine targets. An Area whose minimum exceeds its maximum on either
// axis is empty; Invalid is the canonical empty value.
package geom

import "math"

// Pos is a point in screen space.
type Pos struct {
	X, Y int16
}

// Size is a width and height in pixels.
type Size struct {
	W, H int16
}

// Area is an inclusive rectangle: both (X1,Y1) and (X2,Y2) are inside it.
type Area struct {
	X1, Y1 int16
	X2, Y2 int16
}

// Invalid is the empty sentinel. Merging anything into it yields that thing.
var Invalid = Area{X1: math.MaxInt16, Y1: math.MaxInt16, X2: math.MinInt16, Y2: math.MinInt16}

// Rect creates an Area from a top-left corner and a size.
func Rect(x, y, w, h int16) Area {
	return Area{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}
}

// Empty reports whether a covers no pixel.
func (a Area) Empty() bool {
	return a.X1 > a.X2 || a.Y1 > a.Y2
}

// Width returns the number of columns covered by a.
func (a Area) Width() int16 {
	return a.X2 - a.X1 + 1
}

// Height returns the number of rows covered by a.
func (a Area) Height() int16 {
	return a.Y2 - a.Y1 + 1
}

// Size returns the width and height of a.
func (a Area) Size() Size {
	return Size{W: a.Width(), H: a.Height()}
}

// Pos returns the top-left corner of a.
func (a Area) Pos() Pos {
	return Pos{X: a.X1, Y: a.Y1}
}

// Overlaps reports whether a and b share at least one pixel.
func (a Area) Overlaps(b Area) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return !(b.Y1 > a.Y2 || b.Y2 < a.Y1 || b.X1 > a.X2 || b.X2 < a.X1)
}

// Contains reports whether the point (x, y) lies inside a.
func (a Area) Contains(x, y int16) bool {
	return x >= a.X1 && x <= a.X2 && y >= a.Y1 && y <= a.Y2
}

// Translate returns a moved by (dx, dy).
func (a Area) Translate(dx, dy int16) Area {
	return Area{X1: a.X1 + dx, Y1: a.Y1 + dy, X2: a.X2 + dx, Y2: a.Y2 + dy}
}

// Grow returns a expanded by d pixels on every side. Negative d shrinks.
func (a Area) Grow(d int16) Area {
	return Area{X1: a.X1 - d, Y1: a.Y1 - d, X2: a.X2 + d, Y2: a.Y2 + d}
}

// Clip returns the intersection of a and b. The boolean is false when they
// do not overlap, in which case the returned Area is Invalid.
func (a Area) Clip(b Area) (Area, bool) {
	if !a.Overlaps(b) {
		return Invalid, false
	}
	return Area{
		X1: max(a.X1, b.X1),
		Y1: max(a.Y1, b.Y1),
		X2: min(a.X2, b.X2),
		Y2: min(a.Y2, b.Y2),
	}, true
}

// SelfClip narrows *a to its intersection with b. It reports false and
// leaves *a unchanged when they do not overlap.
func (a *Area) SelfClip(b Area) bool {
	c, ok := a.Clip(b)
	if !ok {
		return false
	}
	*a = c
	return true
}

// Merge returns the smallest Area containing both a and b. Empty inputs
// contribute nothing; merging two empty areas yields Invalid.
func (a Area) Merge(b Area) Area {
	if a.Empty() && b.Empty() {
		return Invalid
	}
	if b.Empty() {
		return a
	}
	if a.Empty() {
		return b
	}
	return Area{
		X1: min(a.X1, b.X1),
		Y1: min(a.Y1, b.Y1),
		X2: max(a.X2, b.X2),
		Y2: max(a.Y2, b.Y2),
	}
}

// SelfMerge grows *a to also contain b.
func (a *Area) SelfMerge(b Area) {
	*a = a.Merge(b)
}

// FixRadius clamps a corner radius for a w×h rectangle so that the two
// corner centres on each axis never cross: the result is at most
// (min(w,h)-1)/2 and never negative.
func FixRadius(w, h, r int16) int16 {
	limit := (min(w, h) - 1) / 2
	if limit < 0 {
		limit = 0
	}
	return max(min(r, limit), 0)
}
