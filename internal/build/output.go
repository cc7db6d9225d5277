package build

import (
	"os"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/transform"
)

// PrepareOutput removes outputDir and recreates it empty. It refuses to wipe
// inputDir or any directory containing it.
func PrepareOutput(outputDir, inputDir string) error {
	if outputDir == inputDir || config.IsAncestor(outputDir, inputDir) {
		return errors.ValidationError("refusing to wipe a directory that holds the input").
			WithPath(outputDir).
			WithContext("input_dir", inputDir).
			Build()
	}
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.IOError(err, "failed to remove output directory", outputDir).Build()
	}
	return transform.EnsureDir(outputDir)
}
