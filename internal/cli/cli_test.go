package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/font"
)

const testScene = `
[display]
width = 32
height = 24
capacity = 96

[[pages]]
name = "a"
color = "#ff0000"

[[pages]]
name = "b"
color = "#0000ff"
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { fbui.SetLogger(nil) })
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRender(t *testing.T) {
	scene := writeScene(t)
	tests := []struct {
		name string
		page string
		want [3]uint8
	}{
		{"active", "", [3]uint8{0xFF, 0, 0}},
		{"page b", "b", [3]uint8{0, 0, 0xFF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.png")
			args := []string{"render", scene, "-o", out}
			if tt.page != "" {
				args = append(args, "-p", tt.page)
			}
			if _, err := run(t, args...); err != nil {
				t.Fatal(err)
			}
			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
				t.Errorf("size = %v", b)
			}
			r, g, b, _ := img.At(5, 5).RGBA()
			if got := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}; got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRender_DefaultOutput(t *testing.T) {
	scene := writeScene(t)
	if _, err := run(t, "render", scene); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(strings.TrimSuffix(scene, ".toml") + ".png"); err != nil {
		t.Error(err)
	}
}

func TestRender_Errors(t *testing.T) {
	scene := writeScene(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown page", []string{"render", scene, "-p", "zzz"}, "no page named"},
		{"missing scene", []string{"render", filepath.Join(t.TempDir(), "none.toml")}, "no such file"},
		{"no args", []string{"render"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestFontConv(t *testing.T) {
	out := filepath.Join(t.TempDir(), "digits.fnt")
	if _, err := run(t, "fontconv", "goregular", "--size", "12", "--bpp", "2",
		"--charset", "0x30-0x39", "--compress", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	f, err := font.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if f.BPP != 2 || !f.Compressed {
		t.Errorf("font = bpp %d compressed %v", f.BPP, f.Compressed)
	}
	if _, ok := f.Index('7'); !ok {
		t.Error("'7' missing from the converted font")
	}
	if _, ok := f.Index('A'); ok {
		t.Error("'A' outside the charset was converted")
	}
}

func TestVerboseLogsEngine(t *testing.T) {
	scene := writeScene(t)
	out, err := run(t, "-v", "render", scene, "-o", filepath.Join(t.TempDir(), "x.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "fbui: frame drawn") {
		t.Errorf("verbose output lacks engine diagnostics:\n%s", out)
	}
}

func TestWatchFile(t *testing.T) {
	path := writeScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 4)
	done := make(chan error, 1)
	logger := newLogger(&bytes.Buffer{}, log.InfoLevel)
	go func() {
		done <- watchFile(ctx, logger, path, 20*time.Millisecond, func() { fired <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(testScene+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after the scene changed")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchFile = %v", err)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"debug at info", log.InfoLevel, false},
		{"debug at debug", log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newLogger(&buf, tt.level).Debug("x")
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context did not fall back to log.Default")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("attached logger not returned")
	}
}
