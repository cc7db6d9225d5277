package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
site_name: Field Notes
output_dir: public
markdown:
  tables: false
  wikilinks: false
  header_ids: "h-"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Field Notes", cfg.SiteName)
	require.Equal(t, "public", cfg.OutputDir)
	require.Equal(t, ".", cfg.InputDir)
	require.True(t, cfg.Index)
	require.False(t, cfg.Markdown.Tables)
	require.True(t, cfg.Markdown.MathDollars)
	require.False(t, cfg.Markdown.Wikilinks)
	require.True(t, cfg.Markdown.Shortcodes)
	require.Equal(t, "h-", cfg.Markdown.HeaderIDs)
	require.Equal(t, "---", cfg.Markdown.FrontMatterDelimiter)
}

func TestLoad_EmptyFileIsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_BlankPathsRestored(t *testing.T) {
	cfg, err := Load(writeConfig(t, "input_dir: \"\"\noutput_dir: \"\"\n"))
	require.NoError(t, err)
	require.Equal(t, ".", cfg.InputDir)
	require.Equal(t, "./site", cfg.OutputDir)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "outputdir: typo\n"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "site_name: [unclosed\n"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := Load(missing)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.Equal(t, missing, errors.PathOf(err))
}

func TestLoadOptional_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	require.Equal(t, markdown.DefaultOptions(), cfg.Markdown)
	require.Equal(t, "./site", cfg.OutputDir)
}

func TestOverrides_Apply(t *testing.T) {
	cfg := Default()
	cfg.SiteName = "From File"
	Overrides{OutputDir: "out"}.Apply(cfg)
	require.Equal(t, "From File", cfg.SiteName)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, ".", cfg.InputDir)

	Overrides{SiteName: "Flag", InputDir: "content"}.Apply(cfg)
	require.Equal(t, "Flag", cfg.SiteName)
	require.Equal(t, "content", cfg.InputDir)

	cfg.CheckLinks = true
	Overrides{}.Apply(cfg)
	require.True(t, cfg.CheckLinks)
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, Init(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Wiped and regenerated on every build.")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "My Notes", cfg.SiteName)
	require.Equal(t, "sitegen.prom", cfg.MetricsFile)
	require.Equal(t, markdown.DefaultOptions(), cfg.Markdown)
}

func TestInit_RefusesOverwriteWithoutForce(t *testing.T) {
	path := writeConfig(t, "site_name: keep\n")

	err := Init(path, false)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "site_name: keep\n", string(data))

	require.NoError(t, Init(path, true))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "My Notes", cfg.SiteName)
}
