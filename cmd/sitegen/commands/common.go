package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/normalization"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

// Global is bound into every command's Run.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing output.
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (optional)" default:"sitegen.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text, json)" default:"text"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"1" help:"Render the content tree into the output directory (default)"`
	Scan  ScanCmd  `cmd:"" help:"Print the scanned content tree without writing output"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
	Watch WatchCmd `cmd:"" help:"Build, then rebuild on every change"`
}

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

var logFormats = normalization.NewNormalizer("log format", map[string]LogFormat{
	"text": LogFormatText,
	"json": LogFormatJSON,
}, LogFormatText)

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	format, err := logFormats.Parse(c.LogFormat)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if format == LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// SiteFlags override the matching configuration file values.
type SiteFlags struct {
	Input      string `short:"i" help:"Content root (default: working directory)"`
	Output     string `short:"o" help:"Output directory, wiped on every build (default: ./site)"`
	SiteName   string `name:"site-name" help:"Title of the generated index page"`
	CheckLinks bool   `name:"check-links" help:"Warn about relative links to pages that were not generated"`
}

// LoadConfig reads the optional configuration file, applies flag overrides
// and resolves the result.
func LoadConfig(root *CLI, flags SiteFlags) (*config.Config, error) {
	cfg, err := config.LoadOptional(root.Config)
	if err != nil {
		return nil, err
	}
	config.Overrides{
		SiteName:   flags.SiteName,
		InputDir:   flags.Input,
		OutputDir:  flags.Output,
		CheckLinks: flags.CheckLinks,
	}.Apply(cfg)
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewRecorder returns a Prometheus recorder when a metrics file is
// configured.
func NewRecorder(cfg *config.Config) metrics.Recorder {
	if cfg.MetricsFile == "" {
		return metrics.NoopRecorder{}
	}
	return metrics.NewPrometheusRecorder(nil)
}

func output(g *Global) io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}
