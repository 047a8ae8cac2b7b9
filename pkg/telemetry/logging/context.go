package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// CycleIDKey is the context key for scan cycle ids.
	CycleIDKey contextKey = "cycle_id"

	// PatternKey is the context key for the policy pattern being processed.
	PatternKey contextKey = "pattern"
)

// WithCycleID adds a scan cycle id to the context.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, CycleIDKey, cycleID)
}

// GetCycleID retrieves the scan cycle id from the context.
func GetCycleID(ctx context.Context) string {
	if id, ok := ctx.Value(CycleIDKey).(string); ok {
		return id
	}
	return ""
}

// WithPattern adds the pattern being processed to the context.
func WithPattern(ctx context.Context, pattern string) context.Context {
	return context.WithValue(ctx, PatternKey, pattern)
}

// GetPattern retrieves the pattern from the context.
func GetPattern(ctx context.Context) string {
	if pattern, ok := ctx.Value(PatternKey).(string); ok {
		return pattern
	}
	return ""
}

// extractContextFields returns the log attributes stored in ctx.
func extractContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr
	if id := GetCycleID(ctx); id != "" {
		attrs = append(attrs, slog.String(string(CycleIDKey), id))
	}
	if pattern := GetPattern(ctx); pattern != "" {
		attrs = append(attrs, slog.String(string(PatternKey), pattern))
	}
	return attrs
}

// contextHandler adds context fields to every record.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := extractContextFields(ctx); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
