// Package linkcheck finds relative links in generated pages that point at
// files missing from the output tree.
package linkcheck

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Link is a URL-bearing attribute found in a page.
type Link struct {
	URL       string
	Tag       string
	Attribute string
	Text      string
}

// linkAttrs lists the attribute carrying a URL for each element checked.
var linkAttrs = map[atom.Atom]string{
	atom.A:      "href",
	atom.Img:    "src",
	atom.Link:   "href",
	atom.Script: "src",
	atom.Source: "src",
	atom.Video:  "src",
	atom.Audio:  "src",
}

// Extract parses r as HTML and returns its links in document order.
func Extract(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.ParseError(err, "failed to parse HTML").Build()
	}

	var links []Link
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		key, ok := linkAttrs[n.DataAtom]
		if !ok {
			continue
		}
		val := strings.TrimSpace(attr(n, key))
		if val == "" {
			continue
		}
		links = append(links, Link{
			URL:       val,
			Tag:       n.Data,
			Attribute: key,
			Text:      strings.TrimSpace(text(n)),
		})
	}
	return links, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	for c := range n.Descendants() {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
