package build

import (
	"log/slog"
	"time"
)

// Report summarizes a build.
type Report struct {
	Folders      int
	Documents    int
	MathDisplay  int
	MathInline   int
	IndexWritten bool
	LinksChecked int
	BrokenLinks  int
	Duration     time.Duration
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("folders", r.Folders),
		slog.Int("documents", r.Documents),
		slog.Int("math_display", r.MathDisplay),
		slog.Int("math_inline", r.MathInline),
		slog.Bool("index", r.IndexWritten),
		slog.Int("links_checked", r.LinksChecked),
		slog.Int("broken_links", r.BrokenLinks),
		slog.Float64("duration_ms", float64(r.Duration.Microseconds())/1000),
	)
}
