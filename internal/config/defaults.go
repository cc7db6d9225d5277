package config

import (
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/markdown"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		InputDir:  ".",
		OutputDir: "./site",
		Index:     true,
		Markdown:  markdown.DefaultOptions(),
	}
}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// PathsDefaultApplier restores input and output directories cleared by the file.
type PathsDefaultApplier struct{}

func (PathsDefaultApplier) Domain() string { return "paths" }

func (PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.InputDir == "" {
		cfg.InputDir = "."
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./site"
	}
	return nil
}

// MarkdownDefaultApplier keeps heading ids and front matter delimiters free
// of surrounding whitespace.
type MarkdownDefaultApplier struct{}

func (MarkdownDefaultApplier) Domain() string { return "markdown" }

func (MarkdownDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Markdown.FrontMatterDelimiter = strings.TrimSpace(cfg.Markdown.FrontMatterDelimiter)
	cfg.Markdown.HeaderIDs = strings.TrimSpace(cfg.Markdown.HeaderIDs)
	return nil
}

func applyDefaults(cfg *Config) error {
	for _, a := range []DefaultApplier{PathsDefaultApplier{}, MarkdownDefaultApplier{}} {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
