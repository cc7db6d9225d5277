package config

import (
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/sitetree"
)

// Resolve canonicalizes the input directory, makes the output directory and
// metrics file absolute, derives a missing site name and validates the
// result.
func (c *Config) Resolve() error {
	input, err := sitetree.Canonicalize(c.InputDir)
	if err != nil {
		return err
	}
	c.InputDir = input

	output, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return errors.IOError(err, "failed to resolve output directory", c.OutputDir).Build()
	}
	// Resolve symlinks in the existing part so the comparison with the
	// canonical input directory is meaningful.
	if resolved, err := filepath.EvalSymlinks(output); err == nil {
		output = resolved
	}
	c.OutputDir = output

	if c.MetricsFile != "" {
		metricsFile, err := filepath.Abs(c.MetricsFile)
		if err != nil {
			return errors.IOError(err, "failed to resolve metrics file", c.MetricsFile).Build()
		}
		c.MetricsFile = metricsFile
	}

	if c.SiteName == "" {
		c.SiteName = filepath.Base(c.InputDir)
	}
	return c.Validate()
}

// Validate checks a resolved configuration.
func (c *Config) Validate() error {
	if c.OutputDir == c.InputDir {
		return errors.ValidationError("output directory must differ from the input directory").
			WithPath(c.OutputDir).
			Build()
	}
	if IsAncestor(c.OutputDir, c.InputDir) {
		return errors.ValidationError("output directory must not contain the input directory").
			WithPath(c.OutputDir).
			WithContext("input_dir", c.InputDir).
			Build()
	}
	if c.Markdown.FrontMatterDelimiter != "" && strings.ContainsAny(c.Markdown.FrontMatterDelimiter, "\r\n") {
		return errors.ValidationError("front matter delimiter must be a single line").Build()
	}
	if info, err := os.Stat(c.InputDir); err != nil || !info.IsDir() {
		return errors.ValidationError("input directory is not a directory").
			WithPath(c.InputDir).
			Build()
	}
	return nil
}

// IsAncestor reports whether dir is a proper ancestor of path. Both must be
// absolute and clean.
func IsAncestor(dir, path string) bool {
	return dir != path && sitetree.Within(dir, path)
}
