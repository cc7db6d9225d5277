package linkcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	links, err := Extract(strings.NewReader(`<p><a href="a.html">A <em>page</em></a>
<img src="pic.png" alt="x"><a>no href</a><a href="  ">blank</a>
<script src="app.js"></script></p>`))
	require.NoError(t, err)
	require.Equal(t, []Link{
		{URL: "a.html", Tag: "a", Attribute: "href", Text: "A page"},
		{URL: "pic.png", Tag: "img", Attribute: "src"},
		{URL: "app.js", Tag: "script", Attribute: "src"},
	}, links)
}

func TestLocalTarget(t *testing.T) {
	tests := []struct {
		page, raw string
		want      string
		ok        bool
	}{
		{"notes/intro.html", "other.html", "notes/other.html", true},
		{"notes/intro.html", "../index.html", "index.html", true},
		{"notes/intro.html", "/notes/a.html#x", "notes/a.html", true},
		{"index.html", "my%20notes/a.html", "my notes/a.html", true},
		{"index.html", "../outside.html", "", false},
		{"index.html", "https://example.com/a.html", "", false},
		{"index.html", "//example.com/a.html", "", false},
		{"index.html", "mailto:me@example.com", "", false},
		{"index.html", "#top", "", false},
		{"index.html", "?q=1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := localTarget(tt.page, tt.raw)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCheck(t *testing.T) {
	out := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(out, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	write("index.html", `<a href="notes/intro.html">Intro</a><a href="notes/">Notes</a>`)
	write("notes/index.html", `<a href="../index.html">Home</a>`)
	write("notes/intro.html", `<a href="other.md">Other</a><a href="https://example.com">x</a><a href="#s">s</a>`)
	write("notes/style.css", `a { }`)

	res, err := Check(t.Context(), out)
	require.NoError(t, err)
	require.Equal(t, 3, res.Pages)
	require.Equal(t, 4, res.Links)
	require.Equal(t, []Broken{{
		Page: "notes/intro.html",
		Link: Link{URL: "other.md", Tag: "a", Attribute: "href", Text: "Other"},
	}}, res.Broken)
}

func TestCheck_MissingRoot(t *testing.T) {
	_, err := Check(t.Context(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
