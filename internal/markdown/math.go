package markdown

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMath is the node kind of Math.
var KindMath = gmast.NewNodeKind("Math")

// Math is a mathematical expression. DisplayMath distinguishes $$...$$
// (display) from $...$ and $`...`$ (inline). Literal is the raw source
// between the delimiters.
type Math struct {
	gmast.BaseInline
	DisplayMath bool
	Literal     []byte
}

// NewMath returns a math node.
func NewMath(display bool, literal []byte) *Math {
	return &Math{DisplayMath: display, Literal: literal}
}

// Kind implements ast.Node.Kind.
func (n *Math) Kind() gmast.NodeKind {
	return KindMath
}

// Dump implements ast.Node.Dump.
func (n *Math) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"DisplayMath": strconv.FormatBool(n.DisplayMath),
		"Literal":     string(n.Literal),
	}, nil)
}

var (
	displayDelim = []byte("$$")
	codeCloser   = []byte("`$")
)

type mathParser struct {
	dollars bool
	code    bool
}

func (p *mathParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathParser) Parse(_ gmast.Node, block text.Reader, _ parser.Context) gmast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 {
		return nil
	}

	if p.code && line[1] == '`' {
		if n := parseCodeMath(block, line); n != nil {
			return n
		}
	}
	if !p.dollars {
		return nil
	}
	if line[1] == '$' {
		return parseDisplayMath(block, line)
	}
	return parseInlineMath(block, line)
}

// parseCodeMath handles $`...`$ on a single line.
func parseCodeMath(block text.Reader, line []byte) gmast.Node {
	idx := bytes.Index(line[2:], codeCloser)
	if idx < 0 {
		return nil
	}
	literal := append([]byte(nil), line[2:2+idx]...)
	block.Advance(2 + idx + len(codeCloser))
	return NewMath(false, literal)
}

// parseInlineMath handles $...$, which may span lines of a paragraph. The
// opener must not be followed by whitespace and the closer must not be
// preceded by whitespace or followed by a digit, so prices like
// "$5 and $10" stay text.
func parseInlineMath(block text.Reader, line []byte) gmast.Node {
	if util.IsSpace(line[1]) {
		return nil
	}
	savedLine, savedPos := block.Position()

	var literal []byte
	rest, start := line, 1
	prev := line[0]
	for {
		for i := start; i < len(rest); i++ {
			c := rest[i]
			switch {
			case c == '\\' && i+1 < len(rest):
				i++
				c = rest[i]
			case c == '$' && !util.IsSpace(prev) && (i+1 >= len(rest) || !isDigit(rest[i+1])):
				literal = append(literal, rest[start:i]...)
				block.Advance(i + 1)
				return NewMath(false, literal)
			}
			prev = c
		}
		literal = append(literal, rest[start:]...)
		block.AdvanceLine()
		rest, _ = block.PeekLine()
		if rest == nil {
			block.SetPosition(savedLine, savedPos)
			return nil
		}
		start = 0
	}
}

// parseDisplayMath handles $$...$$, which may span lines of a paragraph.
func parseDisplayMath(block text.Reader, line []byte) gmast.Node {
	savedLine, savedPos := block.Position()

	var literal []byte
	rest := line[len(displayDelim):]
	consumed := len(displayDelim)
	for {
		if idx := bytes.Index(rest, displayDelim); idx >= 0 {
			literal = append(literal, rest[:idx]...)
			block.Advance(consumed + idx + len(displayDelim))
			return NewMath(true, literal)
		}
		literal = append(literal, rest...)
		block.AdvanceLine()
		rest, _ = block.PeekLine()
		if rest == nil {
			block.SetPosition(savedLine, savedPos)
			return nil
		}
		consumed = 0
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

type mathExtension struct {
	dollars bool
	code    bool
}

// Extend implements goldmark.Extender.
func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&mathParser{dollars: e.dollars, code: e.code}, 150),
	))
}

var mathLanguage = []byte("math")

// mathFenceRenderer renders fenced code blocks, tagging ```math fences with
// data-math-style="display" so client-side typesetters pick them up.
type mathFenceRenderer struct {
	html.Config
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *mathFenceRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gmast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *mathFenceRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return gmast.WalkContinue, nil
	}
	n := node.(*gmast.FencedCodeBlock)
	_, _ = w.WriteString("<pre><code")
	if language := n.Language(source); language != nil {
		_, _ = w.WriteString(` class="language-`)
		r.Writer.Write(w, language)
		_ = w.WriteByte('"')
		if bytes.Equal(language, mathLanguage) {
			_, _ = w.WriteString(` data-math-style="display"`)
		}
	}
	_ = w.WriteByte('>')
	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		r.Writer.RawWrite(w, line.Value(source))
	}
	return gmast.WalkContinue, nil
}

type mathFenceExtension struct{}

// Extend implements goldmark.Extender.
func (mathFenceExtension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathFenceRenderer{Config: html.NewConfig()}, 500),
	))
}
