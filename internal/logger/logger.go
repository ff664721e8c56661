package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"
)

// Config describes where and how the service logs.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Format is "text" (colored, via tint) or "json".
	Format string
	// Writer defaults to os.Stdout.
	Writer io.Writer
	AppName string
	// FluentHost enables shipping to Fluent Bit when set.
	FluentHost string
	FluentPort int
}

// New builds the root logger. The returned close func flushes the Fluent Bit
// client, if any.
func New(cfg Config) (*slog.Logger, func() error, error) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	level := ParseLevel(cfg.Level)

	var console slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		console = slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{Level: level})
	} else {
		console = tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      level,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}

	closeFn := func() error { return nil }
	handler := console

	if cfg.FluentHost != "" {
		if cfg.AppName == "" {
			return nil, nil, fmt.Errorf("fluent tag prefix (app name) is required")
		}
		client, err := fluent.New(fluent.Config{
			FluentHost: cfg.FluentHost,
			FluentPort: cfg.FluentPort,
			TagPrefix:  cfg.AppName,
			Async:      true,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create fluent logger: %w", err)
		}
		handler = fanout{console, newFluentHandler(client, level)}
		closeFn = client.Close
	}

	l := slog.New(handler)
	if cfg.AppName != "" {
		l = l.With("service_name", cfg.AppName)
	}
	return l, closeFn, nil
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type ctxKey struct{}

// WithContext stores l in ctx for the request-scoped code below the router.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request logger, or slog.Default when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}
