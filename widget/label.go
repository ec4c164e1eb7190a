package widget

import (
	"strings"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/font"
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/raster"
	"github.com/gogpu/fbui/scene"
)

// Label draws text in one font, aligned inside its node. Multi-line text
// wraps at newlines and at the node's right edge.
type Label struct {
	id     scene.ID
	tree   *scene.Tree
	font   *font.Font
	text   string
	color  pixel.Color
	align  geom.Align
	alpha  uint8
	margin int16
}

// NewLabel creates an empty, centred black label under parent.
func NewLabel(e *fbui.Engine, parent scene.ID, f *font.Font) (*Label, error) {
	l := &Label{
		tree:  e.Tree(),
		font:  f,
		color: e.Depth().Black(),
		align: geom.AlignCenter,
		alpha: pixel.Opaque,
	}
	id, err := e.Create(parent, l)
	if err != nil {
		return nil, err
	}
	l.id = id
	return l, nil
}

// ID returns the label's node.
func (l *Label) ID() scene.ID { return l.id }

// Text returns the label's text.
func (l *Label) Text() string { return l.text }

// SetText replaces the text.
func (l *Label) SetText(s string) {
	if s == l.text {
		return
	}
	l.text = s
	l.tree.Invalidate(l.id)
}

// SetFont replaces the font.
func (l *Label) SetFont(f *font.Font) {
	l.font = f
	l.tree.Invalidate(l.id)
}

// SetColor sets the text colour.
func (l *Label) SetColor(c pixel.Color) {
	l.color = c
	l.tree.Invalidate(l.id)
}

// SetAlign places the text block at one of the parent anchors of the node.
func (l *Label) SetAlign(a geom.Align) {
	l.align = a
	l.tree.Invalidate(l.id)
}

// SetAlpha sets the opacity of the text.
func (l *Label) SetAlpha(a uint8) {
	l.alpha = a
	l.tree.Invalidate(l.id)
}

// SetLineMargin sets the extra space between wrapped lines.
func (l *Label) SetLineMargin(m int16) {
	l.margin = m
	l.tree.Invalidate(l.id)
}

// Draw implements scene.Drawer.
func (l *Label) Draw(s *raster.Surface, n *scene.Node, clip geom.Area) {
	if l.font == nil || l.text == "" {
		return
	}
	rect := n.Rect()
	if !rect.Overlaps(clip) {
		return
	}
	var p geom.Pos
	if l.multiline(rect.Width()) {
		h := l.font.StringHeight(rect.Width(), l.text, l.margin)
		off := geom.AlignPos(rect.Size(), geom.Size{W: rect.Width(), H: h}, l.align)
		p = geom.Pos{X: rect.X1, Y: rect.Y1 + off.Y}
	} else {
		p = l.font.TextPos(rect, l.text, 0, l.align)
	}
	l.font.DrawText(s, clip, rect, p.X, p.Y, l.text, l.color, l.alpha, l.margin)
}

// multiline reports whether the text needs more than one line in a box
// width pixels wide.
func (l *Label) multiline(width int16) bool {
	return strings.ContainsRune(l.text, '\n') || l.font.StringWidth(l.text) > width
}
