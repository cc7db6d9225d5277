package markdown

import (
	"fmt"
	"strings"
	"unicode"

	gmast "github.com/yuin/goldmark/ast"
)

// headingIDs implements parser.IDs with a fixed prefix. Repeated headings
// get -1, -2, ... suffixes.
type headingIDs struct {
	prefix string
	seen   map[string]bool
}

func newHeadingIDs(prefix string) *headingIDs {
	return &headingIDs{prefix: prefix, seen: make(map[string]bool)}
}

func (s *headingIDs) Generate(value []byte, _ gmast.NodeKind) []byte {
	base := s.prefix + slugify(string(value))
	id := base
	for i := 1; s.seen[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	s.seen[id] = true
	return []byte(id)
}

func (s *headingIDs) Put(value []byte) {
	s.seen[string(value)] = true
}

// slugify lowercases text, turns spaces into hyphens and drops everything
// that is not a letter, digit, hyphen or underscore.
func slugify(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}
