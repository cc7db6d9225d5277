package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindAlert is the node kind of Alert.
var KindAlert = gmast.NewNodeKind("Alert")

// Alert is a GitHub-style alert: a blockquote whose first line is a marker
// such as [!NOTE].
type Alert struct {
	gmast.BaseBlock
	AlertType string
}

// Kind implements ast.Node.Kind.
func (n *Alert) Kind() gmast.NodeKind {
	return KindAlert
}

// Dump implements ast.Node.Dump.
func (n *Alert) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{"AlertType": n.AlertType}, nil)
}

var alertTitles = map[string]string{
	"note":      "Note",
	"tip":       "Tip",
	"important": "Important",
	"warning":   "Warning",
	"caution":   "Caution",
}

func alertType(marker []byte) (string, bool) {
	if !bytes.HasPrefix(marker, []byte("[!")) || !bytes.HasSuffix(marker, []byte("]")) {
		return "", false
	}
	name := string(bytes.ToLower(marker[2 : len(marker)-1]))
	if _, ok := alertTitles[name]; !ok {
		return "", false
	}
	return name, true
}

type alertTransformer struct{}

// Transform implements parser.ASTTransformer.
func (alertTransformer) Transform(doc *gmast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	var quotes []*gmast.Blockquote
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if bq, ok := n.(*gmast.Blockquote); ok {
				quotes = append(quotes, bq)
			}
		}
		return gmast.WalkContinue, nil
	})
	for _, bq := range quotes {
		convertAlert(bq, source)
	}
}

func convertAlert(bq *gmast.Blockquote, source []byte) {
	para, ok := bq.FirstChild().(*gmast.Paragraph)
	if !ok || para.Lines().Len() == 0 {
		return
	}
	first := para.Lines().At(0)
	kind, ok := alertType(bytes.TrimSpace(first.Value(source)))
	if !ok {
		return
	}

	// Drop the inline text produced by the marker line.
	for c := para.FirstChild(); c != nil; {
		next := c.NextSibling()
		t, isText := c.(*gmast.Text)
		if !isText || t.Segment.Start >= first.Stop {
			break
		}
		para.RemoveChild(para, c)
		c = next
	}
	if !para.HasChildren() {
		bq.RemoveChild(bq, para)
	}

	alert := &Alert{AlertType: kind}
	for c := bq.FirstChild(); c != nil; {
		next := c.NextSibling()
		alert.AppendChild(alert, c)
		c = next
	}
	parent := bq.Parent()
	parent.ReplaceChild(parent, bq, alert)
}

type alertRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r alertRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAlert, r.renderAlert)
}

func (alertRenderer) renderAlert(w util.BufWriter, _ []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return gmast.WalkContinue, nil
	}
	n := node.(*Alert)
	_, _ = fmt.Fprintf(w, "<div class=\"markdown-alert markdown-alert-%s\">\n", n.AlertType)
	_, _ = fmt.Fprintf(w, "<p class=\"markdown-alert-title\">%s</p>\n", alertTitles[n.AlertType])
	return gmast.WalkContinue, nil
}

type alertExtension struct{}

// Extend implements goldmark.Extender.
func (alertExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(alertTransformer{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(alertRenderer{}, 500),
	))
}
