package sitetree

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// writeTree creates files (relative path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func canonicalTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// relPaths returns the slash-separated paths of every node below root, sorted.
func relPaths(t *testing.T, root *Folder) []string {
	t.Helper()
	var out []string
	require.NoError(t, Walk(root, func(n Node, depth int) error {
		if depth == 0 {
			return nil
		}
		rel, err := filepath.Rel(root.Path(), n.Path())
		require.NoError(t, err)
		if _, ok := n.(*Folder); ok {
			rel += "/"
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	}))
	sort.Strings(out)
	return out
}

func TestScan_EmptyDirectoryYieldsEmptyFolder(t *testing.T) {
	dir := canonicalTempDir(t)

	root, err := Scan(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Base(dir), root.Name())
	require.Equal(t, dir, root.Path())
	require.Empty(t, root.Children())
}

func TestScan_RootOnlyExclusion(t *testing.T) {
	dir := canonicalTempDir(t)
	files := map[string]string{
		"notes/intro.md":            "# Intro",
		"notes/templates/layout.md": "nested templates dir is content",
		"notes/src/snippet.md":      "nested src dir is content",
		"docs/site/page.md":         "nested site dir is content",
		"README.md":                 "root file is never content",
		"config.toml":               "root file is never content",
	}
	for _, excluded := range ExcludedRootDirs {
		files[excluded+"/ignored.md"] = "excluded at root"
	}
	writeTree(t, dir, files)

	root, err := Scan(dir)
	require.NoError(t, err)

	require.Equal(t, []string{
		"docs/",
		"docs/site/",
		"docs/site/page.md",
		"notes/",
		"notes/intro.md",
		"notes/src/",
		"notes/src/snippet.md",
		"notes/templates/",
		"notes/templates/layout.md",
	}, relPaths(t, root))
}

func TestScan_ExclusionIsExactName(t *testing.T) {
	dir := canonicalTempDir(t)
	writeTree(t, dir, map[string]string{
		"sites/a.md":     "kept",
		"Templates/b.md": "kept",
		"src2/c.md":      "kept",
	})

	root, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, root.Children(), 3)
}

func TestScan_FileDataRoundTrip(t *testing.T) {
	dir := canonicalTempDir(t)
	content := "# Title\r\n\n$x^2$ ünïcödé\n\n  trailing spaces  \n"
	writeTree(t, dir, map[string]string{"notes/intro.md": content})

	root, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, root.Children(), 1)

	notes, ok := root.Children()[0].(*Folder)
	require.True(t, ok)
	require.Equal(t, "notes", notes.Name())
	require.Len(t, notes.Children(), 1)

	file, ok := notes.Children()[0].(*File)
	require.True(t, ok)
	require.Equal(t, "intro.md", file.Name())
	require.Equal(t, filepath.Join(dir, "notes", "intro.md"), file.Path())
	require.Equal(t, content, file.Data())
}

func TestScan_InvalidUTF8AbortsScan(t *testing.T) {
	dir := canonicalTempDir(t)
	writeTree(t, dir, map[string]string{"notes/ok.md": "fine"})
	bad := filepath.Join(dir, "notes", "bad.md")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 0x00, 'x'}, 0o644))

	root, err := Scan(dir)
	require.Nil(t, root)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryDecode))
	require.Equal(t, bad, errors.PathOf(err))
}

func TestScan_InvalidUTF8AtRootIsIgnored(t *testing.T) {
	dir := canonicalTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0xff, 0xfe}, 0o644))

	root, err := Scan(dir)
	require.NoError(t, err)
	require.Empty(t, root.Children())
}

func TestScan_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := Scan(missing)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryIO))
}

func TestScan_RootIsFile(t *testing.T) {
	dir := canonicalTempDir(t)
	file := filepath.Join(dir, "plain.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := Scan(file)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryIO))
	require.Equal(t, file, errors.PathOf(err))
}

func TestScan_RelativeRootIsCanonicalized(t *testing.T) {
	dir := canonicalTempDir(t)
	writeTree(t, dir, map[string]string{"notes/a.md": "a"})
	t.Chdir(dir)

	root, err := Scan(".")
	require.NoError(t, err)
	require.Equal(t, dir, root.Path())
	require.True(t, filepath.IsAbs(root.Children()[0].Path()))
}

func TestScan_FollowsDirectorySymlink(t *testing.T) {
	root := canonicalTempDir(t)
	shared := canonicalTempDir(t)
	writeTree(t, shared, map[string]string{"linked.md": "linked\n"})
	writeTree(t, root, map[string]string{"notes/own.md": "own\n"})
	require.NoError(t, os.Symlink(shared, filepath.Join(root, "notes", "shared")))

	folder, err := Scan(root)
	require.NoError(t, err)

	var found *File
	require.NoError(t, Walk(folder, func(n Node, _ int) error {
		if f, ok := n.(*File); ok && f.Name() == "linked.md" {
			found = f
		}
		return nil
	}))
	require.NotNil(t, found)
	require.Equal(t, "linked\n", found.Data())
}

func TestScan_SymlinkCycleFails(t *testing.T) {
	root := canonicalTempDir(t)
	writeTree(t, root, map[string]string{"notes/a.md": "a\n"})
	loop := filepath.Join(root, "notes", "loop")
	require.NoError(t, os.Symlink(filepath.Join(root, "notes"), loop))

	_, err := Scan(root)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryIO))
	require.Equal(t, loop, errors.PathOf(err))
}

func TestLoad_WrapsRoot(t *testing.T) {
	dir := canonicalTempDir(t)
	writeTree(t, dir, map[string]string{"a/b/c.md": "c"})

	site, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, site.Root)

	folders, files := Stats(site.Root)
	require.Equal(t, 3, folders)
	require.Equal(t, 1, files)
}

func TestWalk_PreOrderAndDepth(t *testing.T) {
	tree := NewFolder("root", "/r",
		NewFolder("a", "/r/a",
			NewFile("x.md", "/r/a/x.md", "x"),
		),
		NewFile("y.md", "/r/y.md", "y"),
	)

	var visited []string
	var depths []int
	require.NoError(t, Walk(tree, func(n Node, depth int) error {
		visited = append(visited, n.Name())
		depths = append(depths, depth)
		return nil
	}))
	require.Equal(t, []string{"root", "a", "x.md", "y.md"}, visited)
	require.Equal(t, []int{0, 1, 2, 1}, depths)
}

func TestWalk_StopsOnError(t *testing.T) {
	tree := NewFolder("root", "/r", NewFile("a", "/r/a", ""), NewFile("b", "/r/b", ""))
	stop := os.ErrClosed

	var seen int
	err := Walk(tree, func(n Node, _ int) error {
		seen++
		if n.Name() == "a" {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 2, seen)
}
