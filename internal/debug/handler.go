package debug

import (
	"context"
	"log/slog"
)

// componentHandler resolves the global handler on every call so loggers
// created before Init still honour it.
type componentHandler struct {
	component string
	ops       []func(slog.Handler) slog.Handler
}

func (h *componentHandler) current() slog.Handler {
	hd := Logger().Handler().WithAttrs([]slog.Attr{slog.String("component", h.component)})
	for _, op := range h.ops {
		hd = op(hd)
	}
	return hd
}

func (h *componentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return Logger().Handler().Enabled(ctx, level)
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.current().Handle(ctx, r)
}

func (h *componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(hd slog.Handler) slog.Handler { return hd.WithAttrs(attrs) })
}

func (h *componentHandler) WithGroup(name string) slog.Handler {
	return h.with(func(hd slog.Handler) slog.Handler { return hd.WithGroup(name) })
}

func (h *componentHandler) with(op func(slog.Handler) slog.Handler) slog.Handler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	return &componentHandler{component: h.component, ops: append(ops, op)}
}
