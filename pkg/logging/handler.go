package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// switchHandler forwards records to the handler most recently installed by
// Init. controller-runtime only accepts its logger once, so the logger handed
// to it must follow later re-initialization.
type switchHandler struct {
	current *atomic.Pointer[slog.Handler]

	// ops replays WithAttrs and WithGroup calls onto the current handler.
	ops []func(slog.Handler) slog.Handler
}

func newSwitchHandler() *switchHandler {
	return &switchHandler{current: &atomic.Pointer[slog.Handler]{}}
}

func (s *switchHandler) set(h slog.Handler) {
	s.current.Store(&h)
}

func (s *switchHandler) resolve() slog.Handler {
	p := s.current.Load()
	if p == nil {
		return nil
	}
	h := *p
	for _, op := range s.ops {
		h = op(h)
	}
	return h
}

func (s *switchHandler) Enabled(ctx context.Context, level slog.Level) bool {
	p := s.current.Load()
	if p == nil {
		return false
	}
	return (*p).Enabled(ctx, level)
}

func (s *switchHandler) Handle(ctx context.Context, r slog.Record) error {
	h := s.resolve()
	if h == nil {
		return nil
	}
	return h.Handle(ctx, r)
}

func (s *switchHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s *switchHandler) WithGroup(name string) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (s *switchHandler) with(op func(slog.Handler) slog.Handler) *switchHandler {
	ops := make([]func(slog.Handler) slog.Handler, len(s.ops), len(s.ops)+1)
	copy(ops, s.ops)
	return &switchHandler{current: s.current, ops: append(ops, op)}
}
