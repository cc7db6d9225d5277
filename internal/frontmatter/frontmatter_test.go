package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		delimiter string
		fm        string
		body      string
		had       bool
	}{
		{name: "no block", input: "# Title\n\nHello\n", body: "# Title\n\nHello\n"},
		{name: "yaml block", input: "---\nkey: value\n---\n# Title\n", fm: "key: value\n", body: "# Title\n", had: true},
		{name: "crlf", input: "---\r\nkey: value\r\n---\r\n# Title\r\n", fm: "key: value\r\n", body: "# Title\r\n", had: true},
		{name: "empty block", input: "---\n---\n# Title\n", body: "# Title\n", had: true},
		{name: "closer at eof", input: "---\ntitle: x\n---", fm: "title: x\n", had: true},
		{name: "never closed", input: "---\nkey: value\n# Title\n", body: "---\nkey: value\n# Title\n"},
		{name: "opener not first line", input: "\n---\na\n---\n", body: "\n---\na\n---\n"},
		{name: "longer rule is not a delimiter", input: "----\na\n----\nbody\n", body: "----\na\n----\nbody\n"},
		{name: "custom delimiter", input: "+++\ntitle = 1\n+++\nbody\n", delimiter: "+++", fm: "title = 1\n", body: "body\n", had: true},
		{name: "other delimiter ignored", input: "+++\ntitle = 1\n+++\nbody\n", body: "+++\ntitle = 1\n+++\nbody\n"},
		{name: "single dash delimiter", input: "---\na: b\n---\nbody\n", delimiter: "-", body: "---\na: b\n---\nbody\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delim := tt.delimiter
			if delim == "" {
				delim = DefaultDelimiter
			}
			fm, body, had := Split([]byte(tt.input), delim)
			require.Equal(t, tt.had, had)
			require.Equal(t, tt.fm, string(fm))
			require.Equal(t, tt.body, string(body))
		})
	}
}

func TestSplit_EmptyDelimiterDisables(t *testing.T) {
	input := []byte("---\na: b\n---\nbody\n")
	fm, body, had := Split(input, "")
	require.False(t, had)
	require.Nil(t, fm)
	require.Equal(t, input, body)
}
