package fbui

import (
	"log/slog"

	"github.com/gogpu/fbui/internal/logging"
)

// SetLogger configures the logger for fbui and all its sub-packages.
// By default, fbui produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by fbui:
//   - [slog.LevelDebug]: per-frame diagnostics (dirty area, slice count)
//   - [slog.LevelWarn]: missing glyphs, invalid align types
//   - [slog.LevelError]: node allocation failures, rejected devices
//
// Example:
//
//	// Enable warnings on stderr:
//	fbui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelWarn,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by fbui.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Get()
}

// SinkLogger returns a logger that formats each record as one line and
// passes it to puts, such as a UART write routine. Records below
// slog.LevelWarn are dropped.
//
// Example:
//
//	fbui.SetLogger(fbui.SinkLogger(uart.Puts))
func SinkLogger(puts func(string)) *slog.Logger {
	return slog.New(logging.NewSinkHandler(puts, slog.LevelWarn))
}
