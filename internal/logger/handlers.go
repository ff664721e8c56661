package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type poster interface {
	Post(tag string, message interface{}) error
}

// fluentHandler ships records to Fluent Bit, tagged by level.
type fluentHandler struct {
	client poster
	level  slog.Leveler
	attrs  map[string]any
	prefix string
}

func newFluentHandler(client poster, level slog.Leveler) *fluentHandler {
	return &fluentHandler{client: client, level: level, attrs: map[string]any{}}
}

func (h *fluentHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *fluentHandler) Handle(_ context.Context, r slog.Record) error {
	level := strings.ToLower(r.Level.String())
	data := make(map[string]any, len(h.attrs)+r.NumAttrs()+3)
	for k, v := range h.attrs {
		data[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		flatten(data, h.prefix, a)
		return true
	})
	data["level"] = level
	data["message"] = r.Message
	data["timestamp"] = r.Time.UTC().Format(time.RFC3339Nano)
	return h.client.Post(level, data)
}

func (h *fluentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &fluentHandler{client: h.client, level: h.level, prefix: h.prefix, attrs: make(map[string]any, len(h.attrs)+len(attrs))}
	for k, v := range h.attrs {
		next.attrs[k] = v
	}
	for _, a := range attrs {
		flatten(next.attrs, h.prefix, a)
	}
	return next
}

func (h *fluentHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &fluentHandler{client: h.client, level: h.level, attrs: h.attrs, prefix: h.prefix + name + "."}
}

func flatten(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range v.Group() {
			flatten(dst, p, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	switch v.Kind() {
	case slog.KindString, slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindBool:
		dst[prefix+a.Key] = v.Any()
	case slog.KindTime:
		dst[prefix+a.Key] = v.Time().UTC().Format(time.RFC3339Nano)
	case slog.KindDuration:
		dst[prefix+a.Key] = v.Duration().String()
	default:
		if err, ok := v.Any().(error); ok {
			dst[prefix+a.Key] = err.Error()
			return
		}
		dst[prefix+a.Key] = fmt.Sprint(v.Any())
	}
}

// fanout sends every record to all handlers that accept its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
