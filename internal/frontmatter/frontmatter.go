package frontmatter

import "bytes"

// DefaultDelimiter opens and closes a front matter block.
const DefaultDelimiter = "---"

// Split separates a delimited front matter block from the document body.
//
// The block must start on the first line with a line consisting solely of
// delimiter and end at the next such line. Content without an opening line, or
// with an opening line that is never closed, has no front matter and body is
// the full input. An empty delimiter disables detection. Both \n and \r\n line
// endings are recognized.
func Split(content []byte, delimiter string) (frontmatter []byte, body []byte, had bool) {
	if delimiter == "" {
		return nil, content, false
	}

	first, rest, ok := cutLine(content)
	if !ok || string(first) != delimiter {
		return nil, content, false
	}

	offset := len(content) - len(rest)
	for remaining := rest; len(remaining) > 0; {
		line, next, _ := cutLine(remaining)
		if string(line) == delimiter {
			start := len(content) - len(remaining)
			return content[offset:start], next, true
		}
		remaining = next
	}

	return nil, content, false
}

// cutLine returns the first line of b without its terminator and everything
// after the terminator. terminated reports whether a newline was found.
func cutLine(b []byte) (line, rest []byte, terminated bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return bytes.TrimSuffix(b, []byte("\r")), nil, false
	}
	return bytes.TrimSuffix(b[:i], []byte("\r")), b[i+1:], true
}
