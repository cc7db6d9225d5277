package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/build"
	"git.home.luguber.info/inful/sitegen/internal/config"
)

type countingService struct {
	runs atomic.Int32
}

func (s *countingService) Run(_ context.Context, req build.BuildRequest) (*build.BuildResult, error) {
	s.runs.Add(1)
	return &build.BuildResult{Status: build.BuildStatusSuccess, OutputPath: req.Config.OutputDir}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	input, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	cfg := config.Default()
	cfg.InputDir = input
	cfg.OutputDir = filepath.Join(input, "site")
	return cfg
}

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/n/notes/intro.md", false},
		{"/n/notes/.intro.md.swp", true},
		{"/n/notes/intro.md~", true},
		{"/n/notes/#intro.md#", true},
		{"/n/notes/.#intro.md", true},
		{"/n/notes/4913.tmp", true},
		{"/n/notes/.DS_Store", true},
		{"/n/notes/Thumbs.db", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, shouldIgnoreEvent(filepath.FromSlash(tt.path)))
		})
	}
}

func TestWatcher_Ignored(t *testing.T) {
	cfg := testConfig(t)
	w := New(cfg, &countingService{})

	require.True(t, w.ignored(filepath.Join(cfg.OutputDir, "notes", "a.html")))
	require.True(t, w.ignored(filepath.Join(cfg.InputDir, "templates", "page.html")))
	require.True(t, w.ignored(filepath.Join(cfg.InputDir, "src")))
	require.False(t, w.ignored(filepath.Join(cfg.InputDir, "notes", "templates", "a.md")))
	require.False(t, w.ignored(filepath.Join(cfg.InputDir, "notes", "a.md")))
}

func TestDebouncer_Coalesces(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.Stop()

	for range 5 {
		d.Trigger()
	}

	select {
	case <-d.C():
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}

	select {
	case <-d.C():
		t.Fatal("burst produced more than one signal")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	cfg := testConfig(t)
	notes := filepath.Join(cfg.InputDir, "notes")
	require.NoError(t, os.MkdirAll(notes, 0o750))

	svc := &countingService{}
	built := make(chan struct{}, 8)
	w := New(cfg, svc,
		WithDebounce(20*time.Millisecond),
		WithBuildHook(func(*build.BuildResult, error) { built <- struct{}{} }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	select {
	case <-built:
	case <-time.After(5 * time.Second):
		t.Fatal("initial build did not run")
	}

	require.NoError(t, os.WriteFile(filepath.Join(notes, "a.md"), []byte("# A\n"), 0o600))

	select {
	case <-built:
	case <-time.After(5 * time.Second):
		t.Fatal("change did not trigger a rebuild")
	}

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	require.GreaterOrEqual(t, svc.runs.Load(), int32(2))
}

type blockingService struct {
	started  chan struct{}
	finished atomic.Bool
}

func (s *blockingService) Run(ctx context.Context, _ build.BuildRequest) (*build.BuildResult, error) {
	close(s.started)
	<-ctx.Done()
	s.finished.Store(true)
	return nil, ctx.Err()
}

func TestWatcher_ClosedEventsStopsWorker(t *testing.T) {
	svc := &blockingService{started: make(chan struct{})}
	w := New(testConfig(t), svc, WithDebounce(20*time.Millisecond))

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.loop(context.Background(), events, errs, func(fsnotify.Event, func()) {})
	}()

	select {
	case <-svc.started:
	case <-time.After(5 * time.Second):
		t.Fatal("initial build did not start")
	}

	close(events)
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after its event channel closed")
	}
	require.True(t, svc.finished.Load(), "in-flight build must finish before the watcher returns")
}
