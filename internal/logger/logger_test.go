package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn, err := New(Config{Level: "info", Format: "json", Writer: &buf, AppName: "listing-search"})
	require.NoError(t, err)
	defer closeFn()

	l.Debug("hidden")
	l.Info("search executed", "total", 4)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "search executed", entry["msg"])
	assert.Equal(t, "listing-search", entry["service_name"])
	assert.EqualValues(t, 4, entry["total"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := New(Config{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	l.Debug("cache hit", "key", "active:abc")
	assert.Contains(t, buf.String(), "cache hit")
	assert.Contains(t, buf.String(), "active:abc")
}

func TestNew_FluentRequiresAppName(t *testing.T) {
	_, _, err := New(Config{FluentHost: "localhost", FluentPort: 24224})
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
}

type post struct {
	tag  string
	data map[string]any
}

type fakePoster struct {
	posts []post
	err   error
}

func (f *fakePoster) Post(tag string, message interface{}) error {
	f.posts = append(f.posts, post{tag: tag, data: message.(map[string]any)})
	return f.err
}

func TestFluentHandler(t *testing.T) {
	p := &fakePoster{}
	l := slog.New(newFluentHandler(p, slog.LevelInfo)).With("component", "search")

	l.Debug("dropped")
	l.WithGroup("req").Warn("slow query",
		"elapsed", 1500*time.Millisecond,
		"error", errors.New("timeout"),
		slog.Group("page", "number", 2, "size", 12),
	)

	require.Len(t, p.posts, 1)
	got := p.posts[0]
	assert.Equal(t, "warn", got.tag)
	assert.Equal(t, "slow query", got.data["message"])
	assert.Equal(t, "warn", got.data["level"])
	assert.Equal(t, "search", got.data["component"])
	assert.Equal(t, "1.5s", got.data["req.elapsed"])
	assert.Equal(t, "timeout", got.data["req.error"])
	assert.EqualValues(t, 2, got.data["req.page.number"])
	assert.EqualValues(t, 12, got.data["req.page.size"])
	assert.NotEmpty(t, got.data["timestamp"])
}

func TestFanout(t *testing.T) {
	var buf bytes.Buffer
	p := &fakePoster{err: errors.New("fluent unavailable")}
	h := fanout{
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		newFluentHandler(p, slog.LevelWarn),
	}

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))

	l := slog.New(h)
	l.Info("info only reaches the console")
	assert.Empty(t, p.posts)
	assert.Contains(t, buf.String(), "info only reaches the console")

	r := slog.NewRecord(time.Now(), slog.LevelError, "both", 0)
	err := h.WithAttrs([]slog.Attr{slog.String("archive", "sold")}).Handle(context.Background(), r)
	assert.ErrorContains(t, err, "fluent unavailable")
	require.Len(t, p.posts, 1)
	assert.Equal(t, "sold", p.posts[0].data["archive"])
}
