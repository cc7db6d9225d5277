// Package watch rebuilds the site whenever the content tree changes.
//
// Every change triggers a full rebuild through build.BuildService; nothing
// is tracked between runs. Bursts of events are debounced and a single
// worker runs the builds, so two builds never overlap.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitegen/internal/build"
	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/sitetree"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher runs an initial build and then one rebuild per burst of changes.
type Watcher struct {
	cfg      *config.Config
	svc      build.BuildService
	debounce time.Duration
	onBuild  func(*build.BuildResult, error)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithBuildHook registers fn to be called after every build.
func WithBuildHook(fn func(*build.BuildResult, error)) Option {
	return func(w *Watcher) { w.onBuild = fn }
}

// New returns a Watcher for a resolved configuration.
func New(cfg *config.Config, svc build.BuildService, opts ...Option) *Watcher {
	w := &Watcher{cfg: cfg, svc: svc, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is canceled. A failing build is logged and the
// watcher keeps going. Run waits for an in-flight build before returning.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to create filesystem watcher").Build()
	}
	defer func() { _ = fsw.Close() }()
	w.addDirsRecursive(fsw, w.cfg.InputDir)

	return w.loop(ctx, fsw.Events, fsw.Errors, func(ev fsnotify.Event, trigger func()) {
		w.handleEvent(fsw, ev, trigger)
	})
}

// loop runs the build worker and feeds it debounced change events until ctx
// is canceled or either event channel closes. The worker is stopped and
// drained before loop returns.
func (w *Watcher) loop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	handle func(fsnotify.Event, func()),
) error {
	d := newDebouncer(w.debounce)
	defer d.Stop()

	workerCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go w.worker(workerCtx, d.C(), done)
	defer func() {
		cancel()
		<-done
	}()
	d.fire()

	slog.Info("Watching for changes", logfields.Path(w.cfg.InputDir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			handle(ev, d.Trigger)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) worker(ctx context.Context, req <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			res, err := w.svc.Run(ctx, build.BuildRequest{Config: w.cfg})
			if err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err))
			} else {
				slog.Info("Site rebuilt",
					logfields.Output(res.OutputPath),
					logfields.Count(res.Report.Documents))
			}
			if w.onBuild != nil {
				w.onBuild(res, err)
			}
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.ignored(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != w.cfg.InputDir && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// ignored reports whether a change at path cannot affect the output: editor
// droppings, anything under the output directory and directories the
// scanner skips at the root.
func (w *Watcher) ignored(path string) bool {
	if shouldIgnoreEvent(path) {
		return true
	}
	if sitetree.Within(w.cfg.OutputDir, path) {
		return true
	}
	rel, err := filepath.Rel(w.cfg.InputDir, path)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return slices.Contains(sitetree.ExcludedRootDirs, first)
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Hidden files, including .#lock files
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}
