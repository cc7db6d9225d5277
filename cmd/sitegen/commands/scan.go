package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/sitetree"
)

// ScanCmd implements the 'scan' command.
type ScanCmd struct {
	Input string `short:"i" help:"Content root (default: working directory)"`
}

func (s *ScanCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root, SiteFlags{Input: s.Input})
	if err != nil {
		return err
	}

	site, err := sitetree.Load(cfg.InputDir)
	if err != nil {
		return err
	}

	out := output(g)
	err = sitetree.Walk(site.Root, func(n sitetree.Node, depth int) error {
		indent := strings.Repeat("  ", depth)
		switch n := n.(type) {
		case *sitetree.Folder:
			_, err := fmt.Fprintf(out, "%s%s/\n", indent, n.Name())
			return err
		case *sitetree.File:
			_, err := fmt.Fprintf(out, "%s%s (%d bytes)\n", indent, n.Name(), len(n.Data()))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	folders, files := sitetree.Stats(site.Root)
	_, _ = fmt.Fprintf(out, "%d folders, %d files\n", folders, files)
	return nil
}
