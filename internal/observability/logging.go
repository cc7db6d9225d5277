// Package observability attaches build-scoped attributes to log records.
//
// A build stores its ID on the context and each stage adds its name; the
// *Context helpers prepend both to every record logged through them.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

type scope struct {
	buildID string
	stage   string
}

type scopeKey struct{}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// WithBuildID returns ctx tagged with a build ID.
func WithBuildID(ctx context.Context, id string) context.Context {
	s := scopeOf(ctx)
	s.buildID = id
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithStage returns ctx tagged with a stage name, replacing any earlier one.
func WithStage(ctx context.Context, stage string) context.Context {
	s := scopeOf(ctx)
	s.stage = stage
	return context.WithValue(ctx, scopeKey{}, s)
}

// BuildID returns the build ID on ctx, or "".
func BuildID(ctx context.Context) string { return scopeOf(ctx).buildID }

// Stage returns the stage name on ctx, or "".
func Stage(ctx context.Context) string { return scopeOf(ctx).stage }

func log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	logger := slog.Default()
	if !logger.Enabled(ctx, level) {
		return
	}
	s := scopeOf(ctx)
	all := make([]slog.Attr, 0, len(attrs)+2)
	if s.buildID != "" {
		all = append(all, logfields.BuildID(s.buildID))
	}
	if s.stage != "" {
		all = append(all, logfields.Stage(s.stage))
	}
	logger.LogAttrs(ctx, level, msg, append(all, attrs...)...)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelInfo, msg, attrs)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelWarn, msg, attrs)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelError, msg, attrs)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelDebug, msg, attrs)
}
