package linkcheck

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/observability"
)

// Broken is a link whose target does not exist in the output tree.
type Broken struct {
	// Page is the slash-separated page path relative to the output root.
	Page string
	Link Link
}

// Result summarizes a check.
type Result struct {
	Pages  int
	Links  int
	Broken []Broken
}

// Check scans every .html file under outputDir. Links with a scheme or host,
// fragment-only links and query-only links are not checked.
func Check(ctx context.Context, outputDir string) (*Result, error) {
	res := &Result{}
	err := filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.IOError(err, "failed to walk output directory", p).Build()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		return checkPage(ctx, res, outputDir, p)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func checkPage(ctx context.Context, res *Result, root, page string) error {
	f, err := os.Open(filepath.Clean(page))
	if err != nil {
		return errors.IOError(err, "failed to open page", page).Build()
	}
	defer func() { _ = f.Close() }()

	links, err := Extract(f)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return ce.WithContext("path", page)
		}
		return err
	}

	rel, err := filepath.Rel(root, page)
	if err != nil {
		return errors.IOError(err, "failed to relativize page", page).Build()
	}
	rel = filepath.ToSlash(rel)

	res.Pages++
	for _, l := range links {
		target, ok := localTarget(rel, l.URL)
		if !ok {
			continue
		}
		res.Links++
		if exists(root, target) {
			continue
		}
		res.Broken = append(res.Broken, Broken{Page: rel, Link: l})
		observability.DebugContext(ctx, "Broken link",
			logfields.Path(rel), logfields.Name(l.URL))
	}
	return nil
}

// localTarget resolves raw against the page's directory. It returns the
// slash-separated target relative to the output root, and false for links
// that leave the site.
func localTarget(page, raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" || u.Path == "" {
		return "", false
	}
	var target string
	if strings.HasPrefix(u.Path, "/") {
		target = path.Clean(strings.TrimPrefix(u.Path, "/"))
	} else {
		target = path.Join(path.Dir(page), u.Path)
	}
	if target == ".." || strings.HasPrefix(target, "../") {
		return "", false
	}
	return target, true
}

func exists(root, target string) bool {
	p := filepath.Join(root, filepath.FromSlash(target))
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(p, "index.html"))
		return err == nil
	}
	return true
}
