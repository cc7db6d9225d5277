package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SiteFlags `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root, b.SiteFlags)
	if err != nil {
		return err
	}

	svc := build.NewBuildService().WithRecorder(NewRecorder(cfg))
	result, err := svc.Run(context.Background(), build.BuildRequest{Config: cfg})
	if err != nil {
		return err
	}

	r := result.Report
	out := output(g)
	_, _ = fmt.Fprintf(out, "Built %d documents (%d display, %d inline math) into %s in %s\n",
		r.Documents, r.MathDisplay, r.MathInline, result.OutputPath, result.Duration.Round(time.Millisecond))
	if cfg.CheckLinks {
		_, _ = fmt.Fprintf(out, "Checked %d links, %d broken\n", r.LinksChecked, r.BrokenLinks)
	}
	return nil
}
