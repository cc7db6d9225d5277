package markdown

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var (
	// KindRawHTMLBlock is the node kind of RawHTMLBlock.
	KindRawHTMLBlock = gmast.NewNodeKind("RawHTMLBlock")
	// KindRawHTMLInline is the node kind of RawHTMLInline.
	KindRawHTMLInline = gmast.NewNodeKind("RawHTMLInline")
)

// RawHTMLBlock is block-level HTML emitted verbatim.
type RawHTMLBlock struct {
	gmast.BaseBlock
	Literal []byte
}

// NewRawHTMLBlock returns a raw HTML block node.
func NewRawHTMLBlock(literal []byte) *RawHTMLBlock {
	return &RawHTMLBlock{Literal: literal}
}

// Kind implements ast.Node.Kind.
func (n *RawHTMLBlock) Kind() gmast.NodeKind {
	return KindRawHTMLBlock
}

// Dump implements ast.Node.Dump.
func (n *RawHTMLBlock) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{"Literal": string(n.Literal)}, nil)
}

// RawHTMLInline is inline HTML emitted verbatim.
type RawHTMLInline struct {
	gmast.BaseInline
	Literal []byte
}

// NewRawHTMLInline returns a raw HTML inline node.
func NewRawHTMLInline(literal []byte) *RawHTMLInline {
	return &RawHTMLInline{Literal: literal}
}

// Kind implements ast.Node.Kind.
func (n *RawHTMLInline) Kind() gmast.NodeKind {
	return KindRawHTMLInline
}

// Dump implements ast.Node.Dump.
func (n *RawHTMLInline) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{"Literal": string(n.Literal)}, nil)
}

// rawHTMLRenderer honors html.WithUnsafe the same way goldmark's own raw
// HTML renderers do.
type rawHTMLRenderer struct {
	html.Config
}

func newRawHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &rawHTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *rawHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindRawHTMLBlock, r.renderBlock)
	reg.Register(KindRawHTMLInline, r.renderInline)
}

func (r *rawHTMLRenderer) renderBlock(w util.BufWriter, _ []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}
	if !r.Unsafe {
		_, _ = w.WriteString("<!-- raw HTML omitted -->\n")
		return gmast.WalkSkipChildren, nil
	}
	n := node.(*RawHTMLBlock)
	if len(n.Literal) == 0 {
		return gmast.WalkSkipChildren, nil
	}
	_, _ = w.Write(n.Literal)
	if n.Literal[len(n.Literal)-1] != '\n' {
		_ = w.WriteByte('\n')
	}
	return gmast.WalkSkipChildren, nil
}

func (r *rawHTMLRenderer) renderInline(w util.BufWriter, _ []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}
	if !r.Unsafe {
		_, _ = w.WriteString("<!-- raw HTML omitted -->")
		return gmast.WalkSkipChildren, nil
	}
	_, _ = w.Write(node.(*RawHTMLInline).Literal)
	return gmast.WalkSkipChildren, nil
}

type rawHTMLExtension struct{}

// Extend implements goldmark.Extender.
func (rawHTMLExtension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(newRawHTMLRenderer(), 500),
	))
}
