package ebitenfb

import (
	"testing"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/widget"
)

func TestWindow_CopiesFlushedRows(t *testing.T) {
	win := New(8, 6, pixel.RGB565, "test", 0)
	e, err := fbui.New(win.Device(), fbui.WithPageColor(pixel.RGB565.Black()))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	r, _ := widget.NewRect(e, e.Active().ID())
	e.Tree().SetRect(r.ID(), geom.Rect(2, 1, 3, 2))
	r.SetColor(pixel.RGB565.White())
	e.Refresh()

	if !win.dirty {
		t.Fatal("flush did not mark the window dirty")
	}
	px := func(x, y int) [4]byte {
		i := (y*8 + x) * 4
		return [4]byte(win.rgba[i : i+4])
	}
	if got := px(3, 2); got != [4]byte{0xFF, 0xFF, 0xFF, 0xFF} {
		t.Errorf("inside = %v, want white", got)
	}
	if got := px(0, 0); got != [4]byte{0, 0, 0, 0xFF} {
		t.Errorf("outside = %v, want opaque black", got)
	}
}

func TestWindow_PendingOnlyAfterFlush(t *testing.T) {
	win := New(8, 6, pixel.RGB565, "test", 1)
	e, err := fbui.New(win.Device(), fbui.WithPageColor(pixel.RGB565.Black()))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	r, _ := widget.NewRect(e, e.Active().ID())
	e.Tree().SetRect(r.ID(), geom.Rect(2, 1, 3, 2))

	steps := []struct {
		name  string
		act   func()
		fresh bool
	}{
		{"before any flush", func() {}, false},
		{"after first pass", func() { e.Refresh() }, true},
		{"second read", func() {}, false},
		{"idle pass", func() { e.Refresh() }, false},
		{"after change", func() { r.SetColor(pixel.RGB565.White()); e.Refresh() }, true},
	}
	for _, st := range steps {
		st.act()
		win.mu.Lock()
		pix := win.pending()
		win.mu.Unlock()
		if (pix != nil) != st.fresh {
			t.Errorf("%s: pending frame = %v, want %v", st.name, pix != nil, st.fresh)
		}
	}
}

func TestWindow_Layout(t *testing.T) {
	win := New(240, 284, pixel.RGB565, "test", 2)
	if w, h := win.Layout(1000, 1000); w != 240 || h != 284 {
		t.Errorf("Layout = %dx%d, want 240x284", w, h)
	}
	if win.scale != 2 {
		t.Errorf("scale = %d", win.scale)
	}
}
