package sitetree

// Node is either a *Folder or a *File.
type Node interface {
	// Name is the final path component of the entry.
	Name() string
	// Path is the absolute path of the entry at scan time.
	Path() string

	node()
}

// Folder is a directory in the content tree.
type Folder struct {
	name     string
	path     string
	children []Node
}

// File is a content file in the content tree.
type File struct {
	name string
	path string
	data string
}

// NewFolder builds a folder node owning children.
func NewFolder(name, path string, children ...Node) *Folder {
	return &Folder{name: name, path: path, children: children}
}

// NewFile builds a file node.
func NewFile(name, path, data string) *File {
	return &File{name: name, path: path, data: data}
}

func (f *Folder) Name() string { return f.name }
func (f *Folder) Path() string { return f.path }

// Children returns the folder's children in listing order. Callers must not
// rely on any particular ordering.
func (f *Folder) Children() []Node { return f.children }

func (f *File) Name() string { return f.name }
func (f *File) Path() string { return f.path }

// Data returns the file's text content exactly as read.
func (f *File) Data() string { return f.data }

func (*Folder) node() {}
func (*File) node()   {}

// SiteData is the complete scanned state for one build.
type SiteData struct {
	Root *Folder
}

// WalkFunc is called for every node in pre-order. depth is 0 for the root.
type WalkFunc func(n Node, depth int) error

// Walk visits n and its descendants depth-first in pre-order, stopping at the
// first error.
func Walk(n Node, fn WalkFunc) error {
	return walk(n, 0, fn)
}

func walk(n Node, depth int, fn WalkFunc) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	folder, ok := n.(*Folder)
	if !ok {
		return nil
	}
	for _, child := range folder.children {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Stats counts folders (including root) and files under n.
func Stats(n Node) (folders, files int) {
	_ = Walk(n, func(node Node, _ int) error {
		switch node.(type) {
		case *Folder:
			folders++
		case *File:
			files++
		}
		return nil
	})
	return folders, files
}
