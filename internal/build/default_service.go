package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/linkcheck"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/observability"
	"git.home.luguber.info/inful/sitegen/internal/sitetree"
	"git.home.luguber.info/inful/sitegen/internal/transform"
)

// Stage names used in logs and metrics.
const (
	StagePrepare   = "prepare"
	StageScan      = "scan"
	StageTransform = "transform"
	StageIndex     = "index"
	StageLinks     = "links"
)

// textfileWriter is implemented by recorders that can export to a file.
type textfileWriter interface {
	WriteTextfile(path string) error
}

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	recorder metrics.Recorder
}

// NewBuildService creates a DefaultBuildService that records no metrics.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder. When the configuration names a
// metrics file and the recorder can export, it is written after every run.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Run executes the complete build pipeline. Any stage error aborts the run.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := time.Now()
	buildID := uuid.NewString()
	ctx = observability.WithBuildID(ctx, buildID)

	result := &BuildResult{
		BuildID:   buildID,
		StartTime: startTime,
	}

	cfg := req.Config
	if cfg == nil {
		return s.finish(ctx, result, "", errors.ConfigError("config required").Build())
	}
	result.OutputPath = cfg.OutputDir

	if sitetree.Within(cfg.InputDir, cfg.OutputDir) && !excludedOutput(cfg.InputDir, cfg.OutputDir) {
		observability.WarnContext(ctx, "Output directory lies inside the input directory and will be scanned as content",
			logfields.Output(cfg.OutputDir))
	}

	err := s.stage(ctx, StagePrepare, func(context.Context) error {
		return PrepareOutput(cfg.OutputDir, cfg.InputDir)
	})
	if err != nil {
		return s.finish(ctx, result, cfg.MetricsFile, err)
	}

	var site *sitetree.SiteData
	err = s.stage(ctx, StageScan, func(ctx context.Context) error {
		var scanErr error
		site, scanErr = sitetree.Load(cfg.InputDir)
		if scanErr == nil {
			folders, files := sitetree.Stats(site.Root)
			observability.InfoContext(ctx, "Scanned content tree",
				logfields.Path(cfg.InputDir),
				slog.Int("folders", folders),
				slog.Int("files", files))
		}
		return scanErr
	})
	if err != nil {
		return s.finish(ctx, result, cfg.MetricsFile, err)
	}

	err = s.stage(ctx, StageTransform, func(ctx context.Context) error {
		t := transform.New(markdown.New(cfg.Markdown), transform.WithRecorder(s.recorder))
		res, tErr := t.Transform(ctx, site.Root, cfg.InputDir, cfg.OutputDir)
		if tErr != nil {
			return tErr
		}
		result.Report.Folders = res.Folders
		result.Report.Documents = res.Documents
		result.Report.MathDisplay = res.Math.Display
		result.Report.MathInline = res.Math.Inline
		return nil
	})
	if err != nil {
		return s.finish(ctx, result, cfg.MetricsFile, err)
	}

	if cfg.Index {
		err = s.stage(ctx, StageIndex, func(context.Context) error {
			return WriteIndex(site.Root, cfg.InputDir, cfg.OutputDir, cfg.SiteName)
		})
		if err != nil {
			return s.finish(ctx, result, cfg.MetricsFile, err)
		}
		result.Report.IndexWritten = true
	}

	if cfg.CheckLinks {
		err = s.stage(ctx, StageLinks, func(ctx context.Context) error {
			res, lErr := linkcheck.Check(ctx, cfg.OutputDir)
			if lErr != nil {
				return lErr
			}
			for _, b := range res.Broken {
				observability.WarnContext(ctx, "Broken link",
					logfields.File(b.Page),
					slog.String("href", b.Link.URL))
			}
			result.Report.LinksChecked = res.Links
			result.Report.BrokenLinks = len(res.Broken)
			return nil
		})
		if err != nil {
			return s.finish(ctx, result, cfg.MetricsFile, err)
		}
	}

	result.Status = BuildStatusSuccess
	return s.finish(ctx, result, cfg.MetricsFile, nil)
}

// stage runs fn under a stage-scoped context, recording its duration and
// outcome.
func (s *DefaultBuildService) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	ctx = observability.WithStage(ctx, name)

	err := fn(ctx)
	elapsed := time.Since(start)
	s.recorder.ObserveStageDuration(name, elapsed)
	if err != nil {
		s.recorder.IncStageResult(name, metrics.ResultFailed)
		observability.ErrorContext(ctx, "Stage failed", logfields.Error(err))
		return err
	}
	s.recorder.IncStageResult(name, metrics.ResultSuccess)
	observability.DebugContext(ctx, "Stage complete", logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return nil
}

func (s *DefaultBuildService) finish(ctx context.Context, result *BuildResult, metricsFile string, err error) (*BuildResult, error) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	result.Report.Duration = result.Duration

	if err != nil {
		result.Status = BuildStatusFailed
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	} else {
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		observability.InfoContext(ctx, "Build complete",
			logfields.Output(result.OutputPath),
			slog.Any("report", result.Report))
	}
	s.recorder.ObserveBuildDuration(result.Duration)
	s.exportMetrics(ctx, metricsFile)
	return result, err
}

func (s *DefaultBuildService) exportMetrics(ctx context.Context, path string) {
	w, ok := s.recorder.(textfileWriter)
	if !ok || path == "" {
		return
	}
	if err := w.WriteTextfile(path); err != nil {
		observability.WarnContext(ctx, "Failed to write metrics file", logfields.Error(err))
	}
}

// excludedOutput reports whether output sits directly under input with a
// name the scanner skips.
func excludedOutput(input, output string) bool {
	return filepath.Dir(output) == input && slices.Contains(sitetree.ExcludedRootDirs, filepath.Base(output))
}
