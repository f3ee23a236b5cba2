// Package slogsink adapts log/slog to the gesture event sink port.
package slogsink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/example/tabdeck/internal/ctxutil"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// Sink writes each event as one slog record at Info level.
// Failure phases are logged at Warn.
type Sink struct {
	logger *slog.Logger
}

// New creates a Sink over logger.
func New(logger *slog.Logger) *Sink {
	return &Sink{logger: logger}
}

// NewLogger builds a logger for w. format is "text" or "json"; level is one of
// debug, info, warn, error.
func NewLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
}

// Record implements secondary.EventSink.
func (s *Sink) Record(ctx context.Context, phase string, data map[string]any) {
	attrs := make([]slog.Attr, 0, len(data)+1)
	if id := ctxutil.GestureFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("gesture", id))
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, data[k]))
	}
	s.logger.LogAttrs(ctx, levelFor(phase), phase, attrs...)
}

func levelFor(phase string) slog.Level {
	switch {
	case strings.HasSuffix(phase, "failed"), strings.HasSuffix(phase, ".resync"):
		return slog.LevelWarn
	case strings.HasSuffix(phase, ".start"):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Multi fans every event out to several sinks in order.
type Multi []secondary.EventSink

// Record implements secondary.EventSink.
func (m Multi) Record(ctx context.Context, phase string, data map[string]any) {
	for _, s := range m {
		s.Record(ctx, phase, data)
	}
}

// Nop discards events.
type Nop struct{}

// Record implements secondary.EventSink.
func (Nop) Record(context.Context, string, map[string]any) {}

var (
	_ secondary.EventSink = (*Sink)(nil)
	_ secondary.EventSink = Multi(nil)
	_ secondary.EventSink = Nop{}
)
