// Package logging holds the process-wide logger shared by fbui and its
// sub-packages. The root package exposes it as fbui.SetLogger and
// fbui.Logger; sub-packages read it here to avoid an import cycle.
package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that silently discards all output.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(Nop())
}

// Set installs l as the shared logger. nil restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = Nop()
	}
	loggerPtr.Store(l)
}

// Get returns the shared logger. It is never nil.
func Get() *slog.Logger {
	return loggerPtr.Load()
}

// SinkHandler is a slog.Handler that formats each record as a single line
// and hands it to a bare output function, the shape of a board's UART
// "puts" routine. Records below Level are dropped.
type SinkHandler struct {
	mu    *sync.Mutex
	puts  func(string)
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewSinkHandler returns a handler writing through puts. A nil level means
// slog.LevelInfo.
func NewSinkHandler(puts func(string), level slog.Leveler) *SinkHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &SinkHandler{mu: &sync.Mutex{}, puts: puts, level: level}
}

// Enabled implements slog.Handler.
func (h *SinkHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

// Handle implements slog.Handler. The line has the form
// "[LEVEL] message key=value ...".
func (h *SinkHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(r.Level.String())
	b.WriteString("] ")
	b.WriteString(r.Message)
	write := func(a slog.Attr) {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value.Resolve().String())
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if !a.Equal(slog.Attr{}) {
			write(h.qualify(a))
		}
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	h.puts(b.String())
	return nil
}

// WithAttrs implements slog.Handler.
func (h *SinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		c.attrs = append(c.attrs, h.qualify(a))
	}
	return &c
}

// qualify prefixes the attribute key with the open group path.
func (h *SinkHandler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + "." + a.Key
	}
	return a
}

// WithGroup implements slog.Handler.
func (h *SinkHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	if c.group != "" {
		c.group += "." + name
	} else {
		c.group = name
	}
	return &c
}
