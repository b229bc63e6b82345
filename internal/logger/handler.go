package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ConsoleHandler is a slog.Handler that renders compact, colorized lines
// for terminal consumption
type ConsoleHandler struct {
	opts  *slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ConsoleHandler{
		opts: opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelWarn
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	// Timestamps only matter when tracing retries and backoff
	if h.opts.AddSource && !r.Time.IsZero() {
		buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05.000")))
		buf.WriteString(" ")
	}

	buf.WriteString(levelBadge(r.Level))
	buf.WriteString(" ")
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		buf.WriteString(" ")
		buf.WriteString(h.renderAttr(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(" ")
		buf.WriteString(h.renderAttr(a))
		return true
	})

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			buf.WriteString(" ")
			buf.WriteString(color.HiBlackString("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}

	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &ConsoleHandler{
		opts:  h.opts,
		mu:    h.mu,
		w:     h.w,
		attrs: merged,
		group: h.group,
	}
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	prefix := name
	if h.group != "" {
		prefix = h.group + "." + name
	}
	return &ConsoleHandler{
		opts:  h.opts,
		mu:    h.mu,
		w:     h.w,
		attrs: h.attrs,
		group: prefix,
	}
}

func levelBadge(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return color.HiBlackString("debug:")
	case slog.LevelInfo:
		return color.CyanString("info:")
	case slog.LevelWarn:
		return color.YellowString("warn:")
	case slog.LevelError:
		return color.RedString("error:")
	default:
		return fmt.Sprintf("%s:", strings.ToLower(level.String()))
	}
}

func (h *ConsoleHandler) renderAttr(a slog.Attr) string {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	val := a.Value.String()

	switch a.Key {
	case "error", "err":
		return color.RedString("%s=%q", key, val)
	case "attempt", "retry_in", "duration_ms":
		return color.MagentaString("%s=%s", key, val)
	case "files", "lines", "added", "removed", "complexity":
		return color.GreenString("%s=%s", key, val)
	default:
		return color.HiBlackString("%s=%s", key, val)
	}
}
