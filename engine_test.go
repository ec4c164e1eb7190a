package fbui_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/font"
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/port/memfb"
	"github.com/gogpu/fbui/scene"
	"github.com/gogpu/fbui/widget"
)

func validDevice() fbui.Device {
	return fbui.Device{
		Buffers:  [][]byte{make([]byte, 240*10*2)},
		Capacity: 240 * 10,
		XRes:     240,
		YRes:     284,
		Depth:    pixel.RGB565,
		Flush:    func(x, y, w, h int, pix []byte) {},
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(d *fbui.Device)
		field string
		want  error
	}{
		{"no buffers", func(d *fbui.Device) { d.Buffers = nil }, "Buffers", fbui.ErrNoBuffer},
		{"three buffers", func(d *fbui.Device) { d.Buffers = append(d.Buffers, d.Buffers[0], d.Buffers[0]) }, "Buffers", fbui.ErrTooManyBuffers},
		{"zero width", func(d *fbui.Device) { d.XRes = 0 }, "Resolution", fbui.ErrResolution},
		{"bad depth", func(d *fbui.Device) { d.Depth = 12 }, "Depth", fbui.ErrDepth},
		{"capacity below a row", func(d *fbui.Device) { d.Capacity = 239 }, "Capacity", fbui.ErrCapacity},
		{"no flush", func(d *fbui.Device) { d.Flush = nil }, "Flush", fbui.ErrNoFlush},
		{"short buffer", func(d *fbui.Device) { d.Buffers[0] = d.Buffers[0][:100] }, "Buffers", fbui.ErrBufferSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			fbui.SetLogger(fbui.SinkLogger(func(s string) { log.WriteString(s) }))
			t.Cleanup(func() { fbui.SetLogger(nil) })

			d := validDevice()
			tt.edit(&d)
			e, err := fbui.New(d)
			if e != nil {
				t.Error("New returned an engine for an invalid device")
			}
			var ce *fbui.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field || !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want field %s wrapping %v", err, tt.field, tt.want)
			}
			if !strings.HasPrefix(log.String(), "[ERROR] fbui: device rejected") {
				t.Errorf("log = %q", log.String())
			}
		})
	}
}

func TestHandle_TickGate(t *testing.T) {
	fb := memfb.New(32, 32, pixel.RGB565)
	calls := 0
	e, err := fbui.New(fb.Device(), fbui.WithTickInterval(10), fbui.WithAnimation(func() { calls++ }))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if e.Handle() {
		t.Fatal("Handle drew before the interval elapsed")
	}
	e.TickInc(4)
	if e.Handle() || calls != 0 {
		t.Fatal("Handle ran before the interval elapsed")
	}
	e.TickInc(6)
	if !e.Handle() {
		t.Fatal("first pass drew nothing")
	}
	if calls != 1 {
		t.Errorf("animation calls = %d, want 1", calls)
	}

	e.TickInc(10)
	if e.Handle() {
		t.Error("idle pass drew")
	}
	st := e.Stats()
	if st.Frames != 1 || st.Idle != 1 || st.Slices != 1 {
		t.Errorf("stats = %+v", st)
	}
	if fb.Flushes() != 1 {
		t.Errorf("flushes = %d, want 1", fb.Flushes())
	}
}

func TestTickInc_Concurrent(t *testing.T) {
	fb := memfb.New(16, 16, pixel.RGB332)
	e, err := fbui.New(fb.Device(), fbui.WithTickInterval(1000))
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 125; k++ {
				e.TickInc(1)
			}
		}()
	}
	wg.Wait()
	if !e.Handle() {
		t.Error("Handle did not run after 1000 ticks")
	}
}

func TestHandle_ConcurrentTicksConserved(t *testing.T) {
	fb := memfb.New(16, 16, pixel.RGB332)
	e, err := fbui.New(fb.Device(), fbui.WithTickInterval(1))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	const workers, per = 8, 2000
	var wg sync.WaitGroup
	done := make(chan struct{})
	handled := make(chan struct{})
	go func() {
		defer close(handled)
		for {
			select {
			case <-done:
				return
			default:
				e.Handle()
			}
		}
	}()
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < per; k++ {
				e.TickInc(1)
			}
		}()
	}
	wg.Wait()
	close(done)
	<-handled
	e.Handle()

	if got := e.Stats().Elapsed; got != workers*per {
		t.Errorf("elapsed = %d, want %d", got, workers*per)
	}
}

// buildScene populates the active page with overlapping widgets.
func buildScene(t testing.TB, e *fbui.Engine) {
	t.Helper()
	d := e.Depth()
	tr := e.Tree()
	page := e.Active()
	page.SetColor(d.RGB(0x20, 0x40, 0x80))

	card, err := widget.NewRect(e, page.ID())
	if err != nil {
		t.Fatal(err)
	}
	tr.SetRect(card.ID(), geom.Rect(10, 12, 200, 150))
	card.SetColor(d.RGB(0xF0, 0xF0, 0xE0))
	card.SetBorder(4, d.RGB(0xC0, 0x20, 0x20))
	card.SetRadius(18)

	glass, err := widget.NewRect(e, card.ID())
	if err != nil {
		t.Fatal(err)
	}
	tr.SetRect(glass.ID(), geom.Rect(60, 40, 170, 90))
	glass.SetColor(d.RGB(0x10, 0xA0, 0x30))
	glass.SetAlpha(120)
	glass.SetRadius(30)

	charset, err := font.Charset("ascii")
	if err != nil {
		t.Fatal(err)
	}
	f, err := font.FromFace(basicfont.Face7x13, charset, font.Options{BPP: 4, Compress: true})
	if err != nil {
		t.Fatal(err)
	}
	label, err := widget.NewLabel(e, card.ID(), f)
	if err != nil {
		t.Fatal(err)
	}
	tr.SetRect(label.ID(), geom.Rect(20, 20, 120, 60))
	label.SetText("Hello, fbui!\nslices must not show")
	label.SetAlign(geom.AlignTopLeft)
}

func TestDraw_SliceIndependent(t *testing.T) {
	render := func(t testing.TB, opts ...memfb.Option) []byte {
		fb := memfb.New(240, 180, pixel.RGB565, opts...)
		e, err := fbui.New(fb.Device())
		if err != nil {
			t.Fatal(err)
		}
		defer e.Close()
		buildScene(t, e)
		if !e.Refresh() {
			t.Fatal("Refresh drew nothing")
		}
		return fb.Pixmap().Pix
	}

	want := render(t)
	for _, tc := range []struct {
		name string
		opts []memfb.Option
	}{
		{"one row", []memfb.Option{memfb.WithCapacity(240)}},
		{"seven rows", []memfb.Option{memfb.WithCapacity(240 * 7)}},
		{"double buffer", []memfb.Option{memfb.WithCapacity(240*13 + 5), memfb.WithDoubleBuffer()}},
		{"swap bytes", []memfb.Option{memfb.WithCapacity(240 * 3), memfb.WithSwapBytes()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := render(t, tc.opts...); !bytes.Equal(got, want) {
				t.Error("sliced frame differs from the full-screen frame")
			}
		})
	}
}

func TestDraw_SliceCount(t *testing.T) {
	fb := memfb.New(240, 100, pixel.RGB888, memfb.WithCapacity(240*30))
	e, err := fbui.New(fb.Device())
	if err != nil {
		t.Fatal(err)
	}
	e.Refresh()
	if got := fb.Flushes(); got != 4 {
		t.Errorf("flushes = %d, want 4 (30+30+30+10 rows)", got)
	}

	// A narrow dirty area fits more rows per slice.
	r, _ := widget.NewRect(e, e.Active().ID())
	e.Tree().SetRect(r.ID(), geom.Rect(0, 0, 60, 100))
	e.Refresh()
	before := fb.Flushes()
	e.Tree().Invalidate(r.ID())
	e.Refresh()
	if got := fb.Flushes() - before; got != 1 {
		t.Errorf("flushes = %d, want 1", got)
	}
}

// TestScenario_RoundedBorder renders the 240×284 bordered card and checks
// its interior.
func TestScenario_RoundedBorder(t *testing.T) {
	fb := memfb.New(240, 284, pixel.RGB565, memfb.WithCapacity(240*10))
	e, err := fbui.New(fb.Device())
	if err != nil {
		t.Fatal(err)
	}
	d := e.Depth()
	r, err := widget.NewRect(e, e.Active().ID())
	if err != nil {
		t.Fatal(err)
	}
	rect := geom.Rect(53, 120, 132, 180)
	e.Tree().SetRect(r.ID(), rect)
	r.SetRadius(20)
	r.SetBorder(3, d.White())
	r.SetColor(d.Black())

	if !e.Refresh() {
		t.Fatal("Refresh drew nothing")
	}
	if dmg := e.Tree().Damage(); !dmg.Empty() {
		t.Errorf("damage after pass = %+v, want empty", dmg)
	}

	const rad, bw = 20, 3
	checked := 0
	for y := int(rect.Y1) + bw; y <= int(rect.Y2)-bw && y < fb.Height(); y++ {
		for x := int(rect.X1) + bw; x <= int(rect.X2)-bw; x++ {
			nearX := x < int(rect.X1)+rad || x > int(rect.X2)-rad
			nearY := y < int(rect.Y1)+rad || y > int(rect.Y2)-rad
			if nearX && nearY {
				continue
			}
			if got := fb.At(x, y); got != d.Black() {
				t.Fatalf("interior (%d,%d) = %#x, want black", x, y, got)
			}
			checked++
		}
	}
	if checked == 0 {
		t.Fatal("no interior pixel checked")
	}
	// Border band on the straight left edge.
	for x := int(rect.X1); x < int(rect.X1)+bw; x++ {
		if got := fb.At(x, 200); got != d.White() {
			t.Errorf("border (%d,200) = %#x, want white", x, got)
		}
	}
}

func TestScenario_Hide(t *testing.T) {
	fb := memfb.New(240, 284, pixel.ARGB8888, memfb.WithCapacity(240*16))
	e, err := fbui.New(fb.Device())
	if err != nil {
		t.Fatal(err)
	}
	d := e.Depth()
	r, _ := widget.NewRect(e, e.Active().ID())
	rect := geom.Rect(30, 40, 50, 60)
	e.Tree().SetRect(r.ID(), rect)
	e.Refresh()
	if fb.At(40, 50) != d.Black() {
		t.Fatal("rect not drawn")
	}

	e.Tree().SetHidden(r.ID(), true)
	if got := e.Tree().Damage(); got != rect {
		t.Errorf("damage after hide = %+v, want %+v", got, rect)
	}
	before := fb.Flushes()
	if !e.Refresh() {
		t.Fatal("hide did not trigger a pass")
	}
	if got := fb.Flushes() - before; got != 1 {
		t.Errorf("slices = %d, want 1", got)
	}
	page := e.Active().Color()
	for y := int(rect.Y1); y <= int(rect.Y2); y++ {
		for x := int(rect.X1); x <= int(rect.X2); x++ {
			if got := fb.At(x, y); got != page {
				t.Fatalf("(%d,%d) = %#x, want page colour %#x", x, y, got, page)
			}
		}
	}
}

// asyncDevice flushes into a frame copy and releases buffers from another
// goroutine.
type asyncDevice struct {
	frame []byte
	bufs  [][]byte
	done  chan int
	wg    sync.WaitGroup
}

func newAsyncDevice(e **fbui.Engine, w, h, capacity int) (*asyncDevice, fbui.Device) {
	a := &asyncDevice{
		frame: make([]byte, w*h*2),
		bufs:  [][]byte{make([]byte, capacity*2), make([]byte, capacity*2)},
		done:  make(chan int, 2),
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for i := range a.done {
			(*e).FlushReady(i)
		}
	}()
	dev := fbui.Device{
		Buffers:    a.bufs,
		Capacity:   capacity,
		XRes:       w,
		YRes:       h,
		Depth:      pixel.RGB565,
		AsyncFlush: true,
		Flush: func(x, y, fw, fh int, pix []byte) {
			for row := 0; row < fh; row++ {
				copy(a.frame[((y+row)*w+x)*2:], pix[row*fw*2:(row+1)*fw*2])
			}
			for i, b := range a.bufs {
				if &b[0] == &pix[0] {
					a.done <- i
				}
			}
		},
	}
	return a, dev
}

func TestDraw_AsyncFlush(t *testing.T) {
	var e *fbui.Engine
	a, dev := newAsyncDevice(&e, 240, 180, 240*9)
	var err error
	e, err = fbui.New(dev)
	if err != nil {
		t.Fatal(err)
	}
	buildScene(t, e)
	e.Refresh()
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	close(a.done)
	a.wg.Wait()

	fb := memfb.New(240, 180, pixel.RGB565)
	ref, _ := fbui.New(fb.Device())
	buildScene(t, ref)
	ref.Refresh()
	if !bytes.Equal(a.frame, fb.Pixmap().Pix) {
		t.Error("async frame differs from the synchronous frame")
	}
}

func TestPages(t *testing.T) {
	fb := memfb.New(20, 20, pixel.RGB332)
	e, err := fbui.New(fb.Device(), fbui.WithPageColor(pixel.RGB332.RGB(0xFF, 0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	first := e.Active()
	id, err := e.Create(scene.None, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, ok := e.Page(id)
	if !ok || e.Active() != first {
		t.Fatal("second page must not become active")
	}
	second.SetColor(pixel.RGB332.RGB(0, 0, 0xFF))

	e.Refresh()
	if got := fb.At(5, 5); got != 0xE0 {
		t.Errorf("first page pixel = %#x, want red", got)
	}
	if err := e.Load(id); err != nil {
		t.Fatal(err)
	}
	e.Refresh()
	if got := fb.At(5, 5); got != 0x03 {
		t.Errorf("second page pixel = %#x, want blue", got)
	}

	child, _ := widget.NewRect(e, first.ID())
	if err := e.Load(child.ID()); !errors.Is(err, fbui.ErrNotPage) {
		t.Errorf("Load(non-page) = %v, want ErrNotPage", err)
	}
	e.Delete(first.ID())
	if e.Tree().Valid(first.ID()) || e.Tree().Valid(child.ID()) {
		t.Error("deleting an inactive page must free it")
	}
}

func TestDelete_ActivePageClearsChildren(t *testing.T) {
	fb := memfb.New(20, 20, pixel.RGB565)
	e, _ := fbui.New(fb.Device())
	r, _ := widget.NewRect(e, e.Active().ID())
	e.Refresh()
	e.Delete(scene.None)
	if e.Tree().Valid(r.ID()) || !e.Tree().Valid(e.Active().ID()) {
		t.Fatal("active page delete must keep the page and drop its children")
	}
	e.Refresh()
	if got := fb.At(0, 0); got != e.Active().Color() {
		t.Errorf("pixel = %#x, want page colour", got)
	}
}

func TestCreate_NodeLimit(t *testing.T) {
	fb := memfb.New(20, 20, pixel.RGB565)
	e, _ := fbui.New(fb.Device(), fbui.WithMaxNodes(2))
	if _, err := widget.NewRect(e, e.Active().ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := widget.NewRect(e, e.Active().ID()); !errors.Is(err, scene.ErrAllocFailed) {
		t.Errorf("err = %v, want ErrAllocFailed", err)
	}
}

func BenchmarkRefresh(b *testing.B) {
	fb := memfb.New(240, 284, pixel.RGB565, memfb.WithCapacity(240*20))
	e, _ := fbui.New(fb.Device())
	buildScene(b, e)
	root := e.Active().ID()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Tree().Invalidate(root)
		e.Refresh()
	}
}
