package markdown

import (
	"bytes"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/wikilink"
)

// pageResolver points a wikilink at the page the transformer writes for its
// target: the last extension is replaced with .html, or .html is appended.
type pageResolver struct{}

// ResolveWikilink implements wikilink.Resolver.
func (pageResolver) ResolveWikilink(n *wikilink.Node) ([]byte, error) {
	var dest []byte
	if len(n.Target) > 0 {
		target := string(n.Target)
		dest = append(dest, strings.TrimSuffix(target, path.Ext(target))+".html"...)
	}
	if len(n.Fragment) > 0 {
		dest = append(dest, '#')
		dest = append(dest, n.Fragment...)
	}
	return dest, nil
}

// titleBeforePipe swaps target and label of every wikilink so that
// [[Title|notes/intro]] links to notes/intro with the text "Title".
type titleBeforePipe struct{}

// Transform implements parser.ASTTransformer.
func (titleBeforePipe) Transform(doc *gmast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var links []*wikilink.Node
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if l, ok := n.(*wikilink.Node); ok && entering {
			links = append(links, l)
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	for _, l := range links {
		raw := append([]byte(nil), l.Target...)
		if len(l.Fragment) > 0 {
			raw = append(raw, '#')
			raw = append(raw, l.Fragment...)
		}
		label := inlineText(l, source)
		if bytes.Equal(label, raw) || bytes.Equal(label, l.Target) {
			continue
		}

		target, fragment, _ := bytes.Cut(label, []byte{'#'})
		l.Target = target
		l.Fragment = fragment
		l.RemoveChildren(l)
		l.AppendChild(l, gmast.NewString(raw))
	}
}

// inlineText concatenates the text of n's inline children.
func inlineText(n gmast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
		case *gmast.String:
			buf.Write(t.Value)
		default:
			buf.Write(inlineText(c, source))
		}
	}
	return buf.Bytes()
}

type titleBeforePipeExtension struct{}

// Extend implements goldmark.Extender.
func (titleBeforePipeExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(titleBeforePipe{}, 100),
	))
}
