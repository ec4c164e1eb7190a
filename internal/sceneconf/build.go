package sceneconf

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/font"
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/internal/fontcache"
	"github.com/gogpu/fbui/internal/logging"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/port/memfb"
	"github.com/gogpu/fbui/scene"
	"github.com/gogpu/fbui/widget"
)

func logger() *slog.Logger { return logging.Get() }

// Options returns the engine options the display asks for.
func (d Display) Options() []fbui.Option {
	var opts []fbui.Option
	if d.Tick > 0 {
		opts = append(opts, fbui.WithTickInterval(d.Tick))
	}
	if d.MaxDepth > 0 {
		opts = append(opts, fbui.WithMaxDepth(d.MaxDepth))
	}
	if d.MaxNodes > 0 {
		opts = append(opts, fbui.WithMaxNodes(d.MaxNodes))
	}
	return opts
}

// Built holds the objects created from a scene, by name.
type Built struct {
	Pages  map[string]*fbui.Page
	Rects  map[string]*widget.Rect
	Labels map[string]*widget.Label
}

// Node returns the node of a named rectangle or label.
func (b *Built) Node(name string) (scene.ID, bool) {
	if r, ok := b.Rects[name]; ok {
		return r.ID(), true
	}
	if l, ok := b.Labels[name]; ok {
		return l.ID(), true
	}
	return scene.None, false
}

type builder struct {
	e     *fbui.Engine
	s     *Scene
	fonts *fontcache.Cache
	depth pixel.Depth
	out   *Built
}

// Build creates the pages and nodes of s on e and loads the active page:
// the first page marked active, else the first page. The engine's initial
// page is reused for the first scene page.
func Build(e *fbui.Engine, s *Scene, fonts *fontcache.Cache) (*Built, error) {
	b := &builder{
		e:     e,
		s:     s,
		fonts: fonts,
		depth: e.Depth(),
		out: &Built{
			Pages:  make(map[string]*fbui.Page),
			Rects:  make(map[string]*widget.Rect),
			Labels: make(map[string]*widget.Label),
		},
	}
	var active *fbui.Page
	for i := range s.Pages {
		p, err := b.page(i)
		if err != nil {
			return nil, err
		}
		if active == nil && s.Pages[i].Active {
			active = p
		}
	}
	if active == nil {
		active = b.out.Pages[s.Pages[0].Name]
	}
	if err := e.Load(active.ID()); err != nil {
		return nil, err
	}
	return b.out, nil
}

func (b *builder) page(i int) (*fbui.Page, error) {
	pg := &b.s.Pages[i]
	var p *fbui.Page
	if i == 0 {
		p = b.e.Active()
	} else {
		var err error
		if p, err = b.e.NewPage(); err != nil {
			return nil, err
		}
	}
	if pg.Name == "" {
		pg.Name = fmt.Sprintf("page%d", i)
	}
	b.out.Pages[pg.Name] = p

	if pg.Color != "" {
		c, err := b.depth.ParseHex(pg.Color)
		if err != nil {
			return nil, fmt.Errorf("sceneconf: page %q: %w", pg.Name, err)
		}
		p.SetColor(c)
	}
	if pg.Image != "" {
		scr := b.e.Screen()
		pm, err := LoadPixmap(b.path(pg.Image), int(scr.Width()), int(scr.Height()), b.depth)
		if err != nil {
			return nil, err
		}
		p.SetPixmap(pm)
	}
	for j := range pg.Nodes {
		if err := b.node(p.ID(), &pg.Nodes[j]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (b *builder) node(parent scene.ID, n *Node) error {
	var id scene.ID
	switch n.Type {
	case TypeLabel:
		l, err := b.label(parent, n)
		if err != nil {
			return err
		}
		id = l.ID()
	default:
		r, err := b.rect(parent, n)
		if err != nil {
			return err
		}
		id = r.ID()
	}

	tree := b.e.Tree()
	pr := tree.Node(parent).Rect()
	w, h := n.W, n.H
	if w <= 0 {
		w = pr.Width()
	}
	if h <= 0 {
		h = pr.Height()
	}
	tree.SetSize(id, w, h)
	if n.Align != "" {
		a, _ := geom.ParseAlign(n.Align)
		if err := tree.Align(id, a); err != nil {
			return err
		}
		if err := tree.Translate(id, n.X, n.Y); err != nil {
			return err
		}
	} else if err := tree.SetPos(id, n.X, n.Y); err != nil {
		return err
	}
	if n.Radius != 0 {
		tree.SetRadius(id, n.Radius)
	}
	if n.Hidden {
		tree.SetHidden(id, true)
	}
	for i := range n.Children {
		if err := b.node(id, &n.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) rect(parent scene.ID, n *Node) (*widget.Rect, error) {
	r, err := widget.NewRect(b.e, parent)
	if err != nil {
		return nil, fmt.Errorf("sceneconf: node %q: %w", n.Name, err)
	}
	if n.Color != "" {
		c, err := b.depth.ParseHex(n.Color)
		if err != nil {
			return nil, fmt.Errorf("sceneconf: node %q: %w", n.Name, err)
		}
		r.SetColor(c)
	}
	if n.Border > 0 {
		bc := b.depth.Black()
		if n.BorderColor != "" {
			if bc, err = b.depth.ParseHex(n.BorderColor); err != nil {
				return nil, fmt.Errorf("sceneconf: node %q: %w", n.Name, err)
			}
		}
		r.SetBorder(n.Border, bc)
	}
	if n.Alpha != nil {
		r.SetAlpha(*n.Alpha)
	}
	if n.Image != "" {
		pm, err := LoadPixmap(b.path(n.Image), int(n.W), int(n.H), b.depth)
		if err != nil {
			return nil, err
		}
		r.SetPixmap(pm)
	}
	if n.Name != "" {
		b.out.Rects[n.Name] = r
	}
	return r, nil
}

func (b *builder) label(parent scene.ID, n *Node) (*widget.Label, error) {
	f, err := b.font(n.Font)
	if err != nil {
		return nil, fmt.Errorf("sceneconf: node %q: %w", n.Name, err)
	}
	l, err := widget.NewLabel(b.e, parent, f)
	if err != nil {
		return nil, fmt.Errorf("sceneconf: node %q: %w", n.Name, err)
	}
	l.SetText(n.Text)
	if n.TextColor != "" {
		c, err := b.depth.ParseHex(n.TextColor)
		if err != nil {
			return nil, fmt.Errorf("sceneconf: node %q: %w", n.Name, err)
		}
		l.SetColor(c)
	}
	if n.TextAlign != "" {
		a, _ := geom.ParseAlign(n.TextAlign)
		l.SetAlign(a)
	}
	if n.Alpha != nil {
		l.SetAlpha(*n.Alpha)
	}
	l.SetLineMargin(n.Margin)
	if n.Name != "" {
		b.out.Labels[n.Name] = l
	}
	return l, nil
}

func (b *builder) font(name string) (*font.Font, error) {
	fs, ok := b.s.Fonts[name]
	if !ok {
		fs = Font{Face: fontcache.FaceBasic, BPP: 4, Charset: "ascii"}
	}
	return b.fonts.Get(fs.Key(b.s.Dir))
}

func (b *builder) path(p string) string {
	if filepath.IsAbs(p) || b.s.Dir == "" {
		return p
	}
	return filepath.Join(b.s.Dir, p)
}

// FramebufferOptions returns the memfb options matching the display's
// scratch buffer layout.
func (d Display) FramebufferOptions() []memfb.Option {
	opts := []memfb.Option{memfb.WithCapacity(d.Capacity)}
	if d.Buffers == 2 {
		opts = append(opts, memfb.WithDoubleBuffer())
	}
	if d.SwapBytes {
		opts = append(opts, memfb.WithSwapBytes())
	}
	return opts
}
