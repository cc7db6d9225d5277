package sitetree

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// ExcludedRootDirs are skipped when they appear directly under the scanned
// root. The same names deeper in the tree are ordinary content.
var ExcludedRootDirs = []string{".git", ".vscode", "site", "src", "target", "templates"}

// Load scans inputDir and wraps the result for a single build.
func Load(inputDir string) (*SiteData, error) {
	root, err := Scan(inputDir)
	if err != nil {
		return nil, err
	}
	return &SiteData{Root: root}, nil
}

// Scan walks root recursively and returns its content tree. The returned node
// is always a folder, even when nothing under root is admissible. Any I/O or
// decode failure aborts the scan.
func Scan(root string) (*Folder, error) {
	abs, err := Canonicalize(root)
	if err != nil {
		return nil, err
	}
	return scanDir(abs, true, []string{abs})
}

// Canonicalize resolves path to an absolute path with symlinks evaluated.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.IOError(err, "failed to resolve absolute path", path).Build()
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.IOError(err, "failed to canonicalize path", abs).Build()
	}
	return resolved, nil
}

// Within reports whether path is root itself or lies below it. Both paths
// must be absolute and clean.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// scanDir lists dir and builds its folder node. filtered is true only for the
// scan root. ancestors holds the canonical paths of dir and the folders above
// it, so a symlink back up the tree is reported instead of followed forever.
func scanDir(dir string, filtered bool, ancestors []string) (*Folder, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.IOError(err, "failed to list directory", dir).Build()
	}

	children := make([]Node, 0, len(entries))
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())

		canonical, err := filepath.EvalSymlinks(entryPath)
		if err != nil {
			return nil, errors.IOError(err, "failed to canonicalize path", entryPath).Build()
		}
		name := filepath.Base(canonical)

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(canonical)
			if err != nil {
				return nil, errors.IOError(err, "failed to stat symlink target", entryPath).Build()
			}
			isDir = info.IsDir()
		}

		if isDir {
			if filtered && slices.Contains(ExcludedRootDirs, name) {
				slog.Debug("Skipping excluded root directory", logfields.Path(entryPath))
				continue
			}
			if slices.Contains(ancestors, canonical) {
				return nil, errors.NewError(errors.CategoryIO, "symlink cycle").
					WithPath(entryPath).
					WithContext("target", canonical).
					Build()
			}
			child, err := scanDir(entryPath, false, append(slices.Clip(ancestors), canonical))
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			continue
		}

		if filtered {
			// Files directly under the root are never content.
			slog.Debug("Skipping root-level file", logfields.Path(entryPath))
			continue
		}

		data, err := readText(entryPath)
		if err != nil {
			return nil, err
		}
		children = append(children, NewFile(name, entryPath, data))
		slog.Debug("Discovered file", logfields.File(name), logfields.Path(entryPath))
	}

	return NewFolder(filepath.Base(dir), dir, children...), nil
}

func readText(path string) (string, error) {
	// #nosec G304 -- path comes from listing the configured input directory.
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.IOError(err, "failed to read file", path).Build()
	}
	if !utf8.Valid(content) {
		return "", errors.DecodeError("file is not valid UTF-8 text", path).Build()
	}
	return string(content), nil
}
