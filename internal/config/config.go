// Package config loads, defaults, resolves and validates sitegen.yaml.
package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "sitegen.yaml"

// Config is the process configuration. After Resolve it is treated as
// immutable.
type Config struct {
	// SiteName is the index page title. Defaults to the input directory name.
	SiteName string `yaml:"site_name,omitempty"`
	// InputDir is the content root. Defaults to the working directory.
	InputDir  string `yaml:"input_dir,omitempty"`
	OutputDir string `yaml:"output_dir"`
	// Index writes index.html listing every rendered document.
	Index bool `yaml:"index"`
	// CheckLinks reports relative links in generated pages whose target is
	// missing from the output tree.
	CheckLinks bool `yaml:"check_links"`
	// MetricsFile, when set, receives a Prometheus textfile after each build.
	MetricsFile string           `yaml:"metrics_file,omitempty"`
	Markdown    markdown.Options `yaml:"markdown"`
}

// Load reads configPath. Keys absent from the file keep their defaults and
// unknown keys are rejected.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithPath(configPath).
			Build()
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			WithPath(configPath).
			Build()
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := Default()
		if err := applyDefaults(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(configPath)
}

// Overrides are command line values that take precedence over the file.
// Empty fields leave the configuration unchanged.
type Overrides struct {
	SiteName  string
	InputDir  string
	OutputDir string
	// CheckLinks can only switch the check on.
	CheckLinks bool
}

// Apply copies the non-empty overrides into cfg.
func (o Overrides) Apply(cfg *Config) {
	if o.SiteName != "" {
		cfg.SiteName = o.SiteName
	}
	if o.InputDir != "" {
		cfg.InputDir = o.InputDir
	}
	if o.OutputDir != "" {
		cfg.OutputDir = o.OutputDir
	}
	if o.CheckLinks {
		cfg.CheckLinks = true
	}
}
