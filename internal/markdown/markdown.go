// Package markdown parses Markdown documents with goldmark, rewrites math
// nodes into raw HTML and serializes the result.
package markdown

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/wikilink"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
)

// Document is a parsed Markdown body. Source is the body the node segments
// point into, with any front matter removed.
type Document struct {
	Root   gmast.Node
	Source []byte
}

// Renderer parses and serializes documents with one fixed Options bundle.
// It is safe for sequential reuse across documents.
type Renderer struct {
	opts Options
	md   goldmark.Markdown
}

// New builds a Renderer for opts.
func New(opts Options) *Renderer {
	var exts []goldmark.Extender
	if opts.Strikethrough {
		exts = append(exts, extension.Strikethrough)
	}
	if opts.Tables {
		exts = append(exts, extension.Table)
	}
	if opts.Autolink {
		exts = append(exts, extension.Linkify)
	}
	if opts.TaskList {
		exts = append(exts, extension.TaskList)
	}
	if opts.Footnotes {
		exts = append(exts, extension.Footnote)
	}
	if opts.DescriptionLists {
		exts = append(exts, extension.DefinitionList)
	}
	if opts.Smart {
		exts = append(exts, extension.Typographer)
	}
	if opts.MathDollars || opts.MathCode {
		exts = append(exts, &mathExtension{dollars: opts.MathDollars, code: opts.MathCode})
	}
	if opts.MathCode {
		exts = append(exts, mathFenceExtension{})
	}
	if opts.Shortcodes {
		exts = append(exts, emoji.New(emoji.WithRenderingMethod(emoji.Unicode)))
	}
	if opts.Wikilinks {
		exts = append(exts, &wikilink.Extender{Resolver: pageResolver{}})
		if opts.WikilinkTitleBeforePipe {
			exts = append(exts, titleBeforePipeExtension{})
		}
	}
	if opts.Alerts {
		exts = append(exts, alertExtension{})
	}
	exts = append(exts, rawHTMLExtension{})

	var parserOpts []parser.Option
	if opts.HeaderIDs != "" {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}

	var rendererOpts []renderer.Option
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	if opts.HardBreaks {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}

	return &Renderer{
		opts: opts,
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parserOpts...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

// Options returns the bundle the renderer was built with.
func (r *Renderer) Options() Options {
	return r.opts
}

// Parse strips front matter from source and parses the remaining body.
func (r *Renderer) Parse(source []byte) (*Document, error) {
	_, body, _ := frontmatter.Split(source, r.opts.FrontMatterDelimiter)

	ctx := parser.NewContext()
	if r.opts.HeaderIDs != "" {
		ctx = parser.NewContext(parser.WithIDs(newHeadingIDs(r.opts.HeaderIDs)))
	}
	root := r.md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))
	return &Document{Root: root, Source: body}, nil
}

// Render writes doc as HTML.
func (r *Renderer) Render(w io.Writer, doc *Document) error {
	if err := r.md.Renderer().Render(w, doc.Source, doc.Root); err != nil {
		return errors.RenderError(err, "failed to render document").Build()
	}
	return nil
}

// Convert parses source, rewrites its math nodes and renders it.
func (r *Renderer) Convert(source []byte) ([]byte, RewriteStats, error) {
	doc, err := r.Parse(source)
	if err != nil {
		return nil, RewriteStats{}, err
	}
	stats := RewriteMath(doc.Root)

	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}
