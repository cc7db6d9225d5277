package build

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/sitetree"
	"git.home.luguber.info/inful/sitegen/internal/transform"
)

// IndexFile is written at the output root.
const IndexFile = "index.html"

// DisplayTitle turns a name into a heading: '-' and '_' become spaces and
// words are title-cased.
func DisplayTitle(name string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	if len(words) == 0 {
		return name
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// WriteIndex writes outputDir/index.html listing every document under root
// as a nested list mirroring the folders. Entries are sorted by name; folders
// without documents are left out.
func WriteIndex(root *sitetree.Folder, inputDir, outputDir, siteName string) error {
	doc, err := buildIndex(root, inputDir, siteName)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return errors.RenderError(err, "failed to render site index").Build()
	}
	buf.WriteByte('\n')

	target := filepath.Join(outputDir, IndexFile)
	// #nosec G306 -- the index is public content
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return errors.IOError(err, "failed to write site index", target).Build()
	}
	return nil
}

// documentTitle is DisplayTitle without the file extension.
func documentTitle(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}
	return DisplayTitle(stem)
}

func buildIndex(root *sitetree.Folder, inputDir, siteName string) (*html.Node, error) {
	title := element(atom.Title)
	title.AppendChild(text(siteName))

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(title)

	heading := element(atom.H1)
	heading.AppendChild(text(siteName))

	body := element(atom.Body)
	body.AppendChild(heading)
	list, err := folderList(root, inputDir)
	if err != nil {
		return nil, err
	}
	if list != nil {
		nav := element(atom.Nav)
		nav.AppendChild(list)
		body.AppendChild(nav)
	}

	page := element(atom.Html, html.Attribute{Key: "lang", Val: "en"})
	page.AppendChild(head)
	page.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(page)
	return doc, nil
}

// folderList returns the <ul> for folder, or nil when it holds no documents.
func folderList(folder *sitetree.Folder, inputDir string) (*html.Node, error) {
	children := append([]sitetree.Node(nil), folder.Children()...)
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Name() < children[j].Name()
	})

	ul := element(atom.Ul)
	for _, child := range children {
		li := element(atom.Li)
		switch n := child.(type) {
		case *sitetree.Folder:
			sub, err := folderList(n, inputDir)
			if err != nil {
				return nil, err
			}
			if sub == nil {
				continue
			}
			label := element(atom.Span)
			label.AppendChild(text(DisplayTitle(n.Name())))
			li.AppendChild(label)
			li.AppendChild(sub)
		case *sitetree.File:
			rel, err := transform.RelPath(inputDir, n.Path())
			if err != nil {
				return nil, err
			}
			href := (&url.URL{Path: filepath.ToSlash(transform.OutputPath(rel))}).String()
			a := element(atom.A, html.Attribute{Key: "href", Val: href})
			a.AppendChild(text(documentTitle(n.Name())))
			li.AppendChild(a)
		}
		ul.AppendChild(li)
	}
	if ul.FirstChild == nil {
		return nil, nil
	}
	return ul, nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
