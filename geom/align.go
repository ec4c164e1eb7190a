package geom

import (
	"fmt"
	"strings"
)

// Align selects an anchor used to position one rectangle relative to another.
//
// The first nine values place a child inside its parent. The last six align
// an object against an arbitrary reference rectangle along one axis only.
type Align uint8

const (
	AlignCenter Align = iota
	AlignTopMid
	AlignTopLeft
	AlignTopRight
	AlignBotMid
	AlignBotLeft
	AlignBotRight
	AlignLeftMid
	AlignRightMid

	AlignVertLeft
	AlignVertRight
	AlignVertMid
	AlignHorizTop
	AlignHorizBot
	AlignHorizMid

	alignCount
)

var alignNames = [alignCount]string{
	"center", "top-mid", "top-left", "top-right",
	"bot-mid", "bot-left", "bot-right", "left-mid", "right-mid",
	"vert-left", "vert-right", "vert-mid",
	"horiz-top", "horiz-bot", "horiz-mid",
}

// String returns the lower-case name of the anchor.
func (a Align) String() string {
	if a < alignCount {
		return alignNames[a]
	}
	return fmt.Sprintf("Align(%d)", uint8(a))
}

// IsParent reports whether a is one of the nine parent anchors.
func (a Align) IsParent() bool {
	return a <= AlignRightMid
}

// IsRef reports whether a is one of the six reference anchors.
func (a Align) IsRef() bool {
	return a >= AlignVertLeft && a < alignCount
}

// ParseAlign converts a name produced by String back into an Align.
func ParseAlign(s string) (Align, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range alignNames {
		if n == s {
			return Align(i), nil
		}
	}
	return 0, fmt.Errorf("geom: unknown align %q", s)
}

// AlignPos returns the offset of an object of the given size inside a
// parent of size parent, relative to the parent's top-left corner.
// Reference anchors are not meaningful here and yield (0, 0).
func AlignPos(parent, size Size, a Align) Pos {
	var p Pos
	switch a {
	case AlignCenter:
		p.X = (parent.W - size.W) / 2
		p.Y = (parent.H - size.H) / 2
	case AlignTopMid:
		p.X = (parent.W - size.W) / 2
	case AlignTopLeft:
	case AlignTopRight:
		p.X = parent.W - size.W
	case AlignBotMid:
		p.X = (parent.W - size.W) / 2
		p.Y = parent.H - size.H
	case AlignBotLeft:
		p.Y = parent.H - size.H
	case AlignBotRight:
		p.X = parent.W - size.W
		p.Y = parent.H - size.H
	case AlignLeftMid:
		p.Y = (parent.H - size.H) / 2
	case AlignRightMid:
		p.X = parent.W - size.W
		p.Y = (parent.H - size.H) / 2
	}
	return p
}

// AlignIn returns obj moved so that it sits at anchor a inside parent.
func AlignIn(parent, obj Area, a Align) Area {
	off := AlignPos(parent.Size(), obj.Size(), a)
	return Rect(parent.X1+off.X, parent.Y1+off.Y, obj.Width(), obj.Height())
}

// AlignRef returns obj moved along one axis so that it lines up with ref.
// The vertical anchors move obj horizontally so that a vertical edge or the
// vertical midline matches; the horizontal anchors do the same along y.
// The boolean is false for parent anchors, leaving obj unchanged.
func AlignRef(ref, obj Area, a Align) (Area, bool) {
	w, h := obj.Width(), obj.Height()
	switch a {
	case AlignVertMid:
		obj.X1 = ref.X1 + (ref.Width()-w)/2
	case AlignVertLeft:
		obj.X1 = ref.X1
	case AlignVertRight:
		obj.X1 = ref.X2 - w + 1
	case AlignHorizMid:
		obj.Y1 = ref.Y1 + (ref.Height()-h)/2
	case AlignHorizTop:
		obj.Y1 = ref.Y1
	case AlignHorizBot:
		obj.Y1 = ref.Y2 - h + 1
	default:
		return obj, false
	}
	obj.X2 = obj.X1 + w - 1
	obj.Y2 = obj.Y1 + h - 1
	return obj, true
}
