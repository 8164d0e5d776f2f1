package logging

import (
	"context"
	"log/slog"
)

// fanoutHandler forwards each record to every target that accepts its
// level. The first target error aborts the fan-out.
type fanoutHandler struct {
	targets []slog.Handler
}

// NewMultiHandler combines handlers into one, so the console stream and
// the Postgres sink see the same records.
func NewMultiHandler(targets ...slog.Handler) slog.Handler {
	return &fanoutHandler{targets: targets}
}

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range f.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, t := range f.targets {
		if !t.Enabled(ctx, record.Level) {
			continue
		}
		if err := t.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.targets))
	for i, t := range f.targets {
		next[i] = t.WithAttrs(attrs)
	}
	return &fanoutHandler{targets: next}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.targets))
	for i, t := range f.targets {
		next[i] = t.WithGroup(name)
	}
	return &fanoutHandler{targets: next}
}
