package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

var keyComments = map[string]string{
	"output_dir":   "# Wiped and regenerated on every build.",
	"index":        "# Write index.html listing every rendered page.",
	"check_links":  "# Warn about relative links to pages that were not generated.",
	"metrics_file": "# Prometheus textfile written after each build (optional).",
	"markdown":     "# Parser and renderer options.",
}

// Init writes an example configuration file. An existing file is only
// replaced when force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithPath(configPath).
			Build()
	}

	example := Default()
	example.SiteName = "My Notes"
	example.InputDir = "."
	example.MetricsFile = "sitegen.prom"

	var doc yaml.Node
	if err := doc.Encode(example); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if c, ok := keyComments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = c
		}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	// #nosec G306 -- configuration is not secret
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.IOError(err, "failed to write config file", configPath).Build()
	}
	return nil
}
