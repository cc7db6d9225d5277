package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// BuildService is the canonical interface for executing site builds.
type BuildService interface {
	// Run executes a complete build: prepare, scan, transform, then the
	// optional index and link check stages.
	// The result is returned even when err is non-nil.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is a resolved configuration (see config.Config.Resolve).
	Config *config.Config
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	Status BuildStatus

	// BuildID identifies the run in logs.
	BuildID string

	// Report holds the counts gathered by the stages that completed.
	Report Report

	// OutputPath is the generated site root.
	OutputPath string

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed successfully.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusFailed indicates the build aborted on an error.
	BuildStatusFailed BuildStatus = "failed"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
