// Package transform renders a scanned content tree into a mirrored output
// tree of HTML documents.
package transform

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/observability"
	"git.home.luguber.info/inful/sitegen/internal/sitetree"
)

// OutputExt replaces the extension of every rendered document.
const OutputExt = ".html"

// Result summarizes one Transform call.
type Result struct {
	Folders   int
	Documents int
	Math      markdown.RewriteStats
}

// Transformer walks a content tree and writes one HTML file per document.
type Transformer struct {
	renderer *markdown.Renderer
	recorder metrics.Recorder
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithRecorder sets the metrics recorder. The default records nothing.
func WithRecorder(r metrics.Recorder) Option {
	return func(t *Transformer) {
		if r != nil {
			t.recorder = r
		}
	}
}

// New returns a Transformer that renders documents with r.
func New(r *markdown.Renderer, opts ...Option) *Transformer {
	t := &Transformer{renderer: r, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform mirrors root under outputRoot. Folders become directories and
// files become rendered documents whose path relative to inputRoot is kept,
// with the extension replaced by OutputExt. The walk is depth-first
// pre-order and stops at the first error.
func (t *Transformer) Transform(ctx context.Context, root sitetree.Node, inputRoot, outputRoot string) (*Result, error) {
	res := &Result{}
	err := sitetree.Walk(root, func(n sitetree.Node, _ int) error {
		rel, err := RelPath(inputRoot, n.Path())
		if err != nil {
			return err
		}

		switch node := n.(type) {
		case *sitetree.Folder:
			if err := EnsureDir(filepath.Join(outputRoot, rel)); err != nil {
				return err
			}
			res.Folders++
		case *sitetree.File:
			target := filepath.Join(outputRoot, OutputPath(rel))
			stats, err := t.renderFile(ctx, node, target)
			if err != nil {
				return err
			}
			res.Documents++
			res.Math.Display += stats.Display
			res.Math.Inline += stats.Inline
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Transformer) renderFile(ctx context.Context, file *sitetree.File, target string) (markdown.RewriteStats, error) {
	start := time.Now()
	out, stats, err := t.renderer.Convert([]byte(file.Data()))
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return stats, classified.WithContext("path", file.Path())
		}
		return stats, errors.RenderError(err, "failed to render document").WithPath(file.Path()).Build()
	}

	// #nosec G306 -- rendered pages are public content
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return stats, errors.IOError(err, "failed to write document", target).Build()
	}

	t.recorder.IncDocumentsRendered()
	t.recorder.AddMathRewrites(metrics.MathDisplay, stats.Display)
	t.recorder.AddMathRewrites(metrics.MathInline, stats.Inline)
	observability.DebugContext(ctx, "Rendered document",
		logfields.Path(file.Path()),
		logfields.Output(target),
		logfields.Count(stats.Total()),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return stats, nil
}

// RelPath returns path relative to root. A path outside root cannot be
// mirrored and is an IO error.
func RelPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", errors.IOError(err, "failed to relativize path", path).
			WithContext("root", root).
			Build()
	}
	if !sitetree.Within(root, path) {
		return "", errors.NewError(errors.CategoryIO, "path is outside the input root").
			WithPath(path).
			WithContext("root", root).
			Build()
	}
	return rel, nil
}

// EnsureDir creates dir and any missing parents. An existing directory is
// not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.IOError(err, "failed to create directory", dir).Build()
	}
	return nil
}

// OutputPath replaces the final extension of rel with OutputExt, or appends
// it when there is none. A leading dot alone does not start an extension,
// so ".bashrc" becomes ".bashrc.html".
func OutputPath(rel string) string {
	dir, base := filepath.Split(rel)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return dir + stem + OutputExt
}
