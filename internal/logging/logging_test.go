package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup did not return nopHandler")
	}
}

func TestSetNilRestoresSilent(t *testing.T) {
	orig := Get()
	t.Cleanup(func() { Set(orig) })

	Set(slog.Default())
	Set(nil)
	if Get().Enabled(context.Background(), slog.LevelError) {
		t.Error("Set(nil) should produce a disabled logger")
	}
}

func TestSinkHandler(t *testing.T) {
	var lines []string
	l := slog.New(NewSinkHandler(func(s string) { lines = append(lines, s) }, slog.LevelWarn))

	l.Info("dropped")
	l.Warn("glyph missing", "rune", "U+4E2D")
	l.With("page", 1).WithGroup("node").Error("alloc failed", "limit", 64)

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	if lines[0] != "[WARN] glyph missing rune=U+4E2D\n" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[ERROR] alloc failed page=1") || !strings.Contains(lines[1], "node.limit=64") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestConcurrentAccess(t *testing.T) {
	orig := Get()
	t.Cleanup(func() { Set(orig) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Get().Debug("read")
		}()
		go func() {
			defer wg.Done()
			Set(slog.Default())
			Set(nil)
		}()
	}
	wg.Wait()
}
