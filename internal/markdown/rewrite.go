package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
)

// RewriteStats counts the math nodes replaced by RewriteMath.
type RewriteStats struct {
	Display int
	Inline  int
}

// Total returns the number of rewritten nodes.
func (s RewriteStats) Total() int {
	return s.Display + s.Inline
}

// RewriteMath replaces every math node under root with a raw HTML node
// carrying the same literal, so the HTML renderer passes the expression
// through untouched. Display math becomes a RawHTMLBlock, inline math a
// RawHTMLInline. Document order and all other nodes are preserved. The
// literal is moved out of the math node rather than copied.
func RewriteMath(root gmast.Node) RewriteStats {
	var found []*Math
	// Replacing during the walk would break sibling traversal.
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if m, ok := n.(*Math); ok {
				found = append(found, m)
			}
		}
		return gmast.WalkContinue, nil
	})

	var stats RewriteStats
	for _, m := range found {
		parent := m.Parent()
		if parent == nil {
			continue
		}
		literal := m.Literal
		m.Literal = nil

		var replacement gmast.Node
		if m.DisplayMath {
			replacement = NewRawHTMLBlock(literal)
			stats.Display++
		} else {
			replacement = NewRawHTMLInline(literal)
			stats.Inline++
		}
		parent.ReplaceChild(parent, m, replacement)
	}
	return stats
}
